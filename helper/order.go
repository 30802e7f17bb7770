package helper

import (
	"fmt"
	"math/rand"

	"playground_store/model"

	"gorm.io/gorm"
)

const (
	TaxRate               = 0.18
	ShippingFlatFee       = 2000.0
	FreeShippingThreshold = 50000.0
)

// CalculateOrderAmounts derives tax, shipping and grand total from the item
// total. Tax is 18% GST on the item total; shipping is waived only strictly
// above the threshold. The result is frozen onto the order at creation.
func CalculateOrderAmounts(totalAmount float64) (taxAmount, shippingAmount, grandTotal float64) {
	taxAmount = totalAmount * TaxRate
	shippingAmount = ShippingFlatFee
	if totalAmount > FreeShippingThreshold {
		shippingAmount = 0
	}
	grandTotal = totalAmount + taxAmount + shippingAmount
	return taxAmount, shippingAmount, grandTotal
}

// GenerateOrderNumber produces PG<yy><mm><4 random digits>, retrying on the
// rare collision with an existing order.
func GenerateOrderNumber(tx *gorm.DB) string {
	prefix := "PG" + Clock.Now().Format("0601")
	for {
		candidate := fmt.Sprintf("%s%04d", prefix, rand.Intn(10000))

		var count int64
		tx.Model(&model.Order{}).
			Where("order_number = ?", candidate).
			Count(&count)

		if count == 0 {
			return candidate
		}
	}
}
