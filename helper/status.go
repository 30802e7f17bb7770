package helper

import (
	"playground_store/constants"
	"playground_store/model"

	"gorm.io/gorm"
)

// Every status write for orders and installations funnels through the two
// Change*Status helpers, so a history row accompanies each transition no
// matter which handler triggered it. Installation transitions mirror into
// the linked order here rather than from the installation handlers, keeping
// the two state machines decoupled.

func ChangeOrderStatus(tx *gorm.DB, order *model.Order, status, note string, updatedBy uint) error {
	now := Clock.Now()

	if err := tx.Model(order).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}).Error; err != nil {
		return err
	}
	order.Status = status

	return tx.Create(&model.OrderStatusLog{
		OrderId:   order.ID,
		Status:    status,
		Note:      note,
		At:        now,
		UpdatedBy: updatedBy,
	}).Error
}

func ChangeInstallationStatus(tx *gorm.DB, installation *model.Installation, status, note string, updatedBy uint) error {
	now := Clock.Now()

	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if status == constants.INSTALLATION_IN_PROGRESS && installation.StartTime == nil {
		updates["start_time"] = now
		installation.StartTime = &now
	}
	if status == constants.INSTALLATION_COMPLETED {
		updates["completed_date"] = now
		installation.CompletedDate = &now
	}

	if err := tx.Model(installation).Updates(updates).Error; err != nil {
		return err
	}
	installation.Status = status

	if err := tx.Create(&model.InstallationStatusLog{
		InstallationId: installation.ID,
		Status:         status,
		Note:           note,
		At:             now,
		UpdatedBy:      updatedBy,
	}).Error; err != nil {
		return err
	}

	return mirrorOrderStatus(tx, installation.OrderId, status, updatedBy)
}

// mirrorOrderStatus reflects installation progress onto the originating
// order. Only in_progress and completed have an order-side analogue.
func mirrorOrderStatus(tx *gorm.DB, orderId uint, installationStatus string, updatedBy uint) error {
	var orderStatus string
	switch installationStatus {
	case constants.INSTALLATION_IN_PROGRESS:
		orderStatus = constants.ORDER_INSTALLATION_IN_PROGRESS
	case constants.INSTALLATION_COMPLETED:
		orderStatus = constants.ORDER_COMPLETED
	default:
		return nil
	}

	var order model.Order
	if err := tx.First(&order, orderId).Error; err != nil {
		return err
	}
	return ChangeOrderStatus(tx, &order, orderStatus, "installation "+installationStatus, updatedBy)
}

// CompleteIfAllInstalled recomputes the installation status after a per-item
// update: once every equipment entry is completed the installation is forced
// to completed (stamping the completion date and mirroring the order). This
// recompute is the only item-driven path into completed.
func CompleteIfAllInstalled(tx *gorm.DB, installation *model.Installation, updatedBy uint) (bool, error) {
	var remaining int64
	if err := tx.Model(&model.InstallationEquipment{}).
		Where("installation_id = ? AND installation_status <> ?", installation.ID, constants.EQUIPMENT_ITEM_COMPLETED).
		Count(&remaining).Error; err != nil {
		return false, err
	}

	if remaining > 0 || installation.Status == constants.INSTALLATION_COMPLETED {
		return false, nil
	}

	if err := ChangeInstallationStatus(tx, installation, constants.INSTALLATION_COMPLETED, "all equipment installed", updatedBy); err != nil {
		return false, err
	}
	return true, nil
}
