package helper

import (
	"errors"

	"playground_store/model"

	"gorm.io/gorm"
)

var ErrInsufficientStock = errors.New("insufficient stock")

// ReserveStock decrements equipment stock by quantity with a conditional
// update, so two concurrent orders can never both take the last units: the
// check and the decrement are a single statement. When stock hits zero the
// item is flagged unavailable. Call inside the order-creation transaction;
// on failure the caller rolls the whole order back.
func ReserveStock(tx *gorm.DB, equipmentId uint, quantity int) error {
	res := tx.Model(&model.Equipment{}).
		Where("id = ? AND is_available = ? AND stock >= ?", equipmentId, true, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}

	return tx.Model(&model.Equipment{}).
		Where("id = ? AND stock = 0", equipmentId).
		UpdateColumn("is_available", false).Error
}

// RestoreStock returns quantity to the shelf and puts the item back on sale.
// Called once per line item when an order transitions into cancelled; the
// caller guards against cancelling twice.
func RestoreStock(tx *gorm.DB, equipmentId uint, quantity int) error {
	return tx.Model(&model.Equipment{}).
		Where("id = ?", equipmentId).
		UpdateColumns(map[string]interface{}{
			"stock":        gorm.Expr("stock + ?", quantity),
			"is_available": true,
		}).Error
}
