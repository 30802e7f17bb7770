package handler

import (
	"errors"

	"playground_store/constants"
	"playground_store/database"
	"playground_store/helper"
	"playground_store/model"
	"playground_store/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateOrder reserves stock for every line item and writes the order in one
// transaction. If any item cannot be reserved the whole transaction rolls
// back, so partial reservations never survive.
func CreateOrder(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateOrderInput)

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	tx := database.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var (
		items       []model.OrderItem
		totalAmount float64
	)
	for _, item := range input.Items {
		var equipment model.Equipment
		if err := tx.First(&equipment, item.EquipmentId).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.ErrorResponse(c, fiber.StatusNotFound, constants.EQUIPMENT_NOT_FOUND, err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		if err := helper.ReserveStock(tx, equipment.ID, item.Quantity); err != nil {
			tx.Rollback()
			if errors.Is(err, helper.ErrInsufficientStock) {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, "Insufficient stock for "+equipment.Name, err)
			}
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}

		items = append(items, model.OrderItem{
			EquipmentId: equipment.ID,
			Name:        equipment.Name,
			Price:       equipment.Price,
			Image:       equipment.Image,
			Quantity:    item.Quantity,
		})
		totalAmount += equipment.Price * float64(item.Quantity)
	}

	taxAmount, shippingAmount, grandTotal := helper.CalculateOrderAmounts(totalAmount)

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = constants.PAYMENT_METHOD_COD
	}

	newOrder := model.Order{
		OrderNumber:    helper.GenerateOrderNumber(tx),
		UserId:         currentUser.ID,
		Items:          items,
		TotalAmount:    totalAmount,
		TaxAmount:      taxAmount,
		ShippingAmount: shippingAmount,
		GrandTotal:     grandTotal,
		ShippingAddress: model.Address{
			Name:    input.ShippingAddress.Name,
			Phone:   input.ShippingAddress.Phone,
			Street:  input.ShippingAddress.Street,
			City:    input.ShippingAddress.City,
			State:   input.ShippingAddress.State,
			ZipCode: input.ShippingAddress.ZipCode,
			Country: input.ShippingAddress.Country,
		},
		Status:               constants.ORDER_PENDING,
		PaymentStatus:        constants.PAYMENT_PENDING,
		PaymentMethod:        paymentMethod,
		Notes:                input.Notes,
		InstallationLocation: input.InstallationLocation,
		LayoutImage:          input.LayoutImage,
		LayoutNotes:          input.LayoutNotes,
	}

	if err := tx.Create(&newOrder).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Create(&model.OrderStatusLog{
		OrderId:   newOrder.ID,
		Status:    constants.ORDER_PENDING,
		Note:      "order placed",
		At:        helper.Clock.Now(),
		UpdatedBy: currentUser.ID,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendOrderConfirmationEmail(currentUser.Email, orderEmailData(&newOrder, currentUser.Name))

	return utils.SuccessMessageResponse(c, fiber.StatusCreated, "Order placed", newOrder)
}

// GetOrders lists orders for the caller's role: admins see everything,
// customers only their own.
func GetOrders(c *fiber.Ctx) error {
	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	query := database.DB.Model(&model.Order{})
	if currentUser.Role != constants.ROLE_ADMIN {
		query = query.Where("user_id = ?", currentUser.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if paymentStatus := c.Query("paymentStatus"); paymentStatus != "" {
		query = query.Where("payment_status = ?", paymentStatus)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	var orders model.Orders
	if err := utils.ApplyPagination(query, limit, page).
		Preload("Items").
		Preload("User").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, orders, page, limit, count)
}

func GetMyOrders(c *fiber.Ctx) error {
	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	query := database.DB.Model(&model.Order{}).Where("user_id = ?", currentUser.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	var orders model.Orders
	if err := utils.ApplyPagination(query, limit, page).
		Preload("Items").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.ListResponse(c, orders, page, limit, count)
}

func GetOrder(c *fiber.Ctx) error {
	orderId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	var order model.Order
	if err := database.DB.
		Preload("Items").
		Preload("User").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("at asc") }).
		First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if currentUser.Role == constants.ROLE_CUSTOMER && order.UserId != currentUser.ID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
	}

	// Field crews scan this at the site to pull up the order.
	qrCode := utils.QRCodeDataURL(order.OrderNumber, 256)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"order":  order,
		"qrCode": qrCode,
	})
}

func UpdateOrderStatus(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateOrderStatusInput)
	orderId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	tx := database.DB.Begin()

	var order model.Order
	if err := tx.First(&order, orderId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.ChangeOrderStatus(tx, &order, input.Status, input.Note, currentUser.ID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Order status updated", order)
}

func UpdatePaymentStatus(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdatePaymentStatusInput)
	orderId := uint(c.Locals("inputId").(int))

	db := database.DB

	var order model.Order
	if err := db.First(&order, orderId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	order.PaymentStatus = input.PaymentStatus
	if err := db.Model(&order).Update("payment_status", input.PaymentStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Payment status updated", order)
}

// CancelOrder releases every reserved unit back to stock. Only pending and
// confirmed orders may be cancelled; later stages already have goods or crews
// in motion.
func CancelOrder(c *fiber.Ctx) error {
	orderId := uint(c.Locals("inputId").(int))

	currentUser, err := helper.CurrentUser(c)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Unauthorized", err)
	}

	tx := database.DB.Begin()

	var order model.Order
	if err := tx.Preload("Items").First(&order, orderId).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if currentUser.Role != constants.ROLE_ADMIN && order.UserId != currentUser.ID {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Access denied", nil)
	}

	if order.Status != constants.ORDER_PENDING && order.Status != constants.ORDER_CONFIRMED {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Order cannot be cancelled at this stage", nil)
	}

	for _, item := range order.Items {
		if err := helper.RestoreStock(tx, item.EquipmentId, item.Quantity); err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := helper.ChangeOrderStatus(tx, &order, constants.ORDER_CANCELLED, "cancelled by "+currentUser.Role, currentUser.ID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if order.PaymentStatus == constants.PAYMENT_PAID {
		order.PaymentStatus = constants.PAYMENT_REFUNDED
		if err := tx.Model(&order).Update("payment_status", constants.PAYMENT_REFUNDED).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	emailData := orderEmailData(&order, order.ShippingAddress.Name)
	if order.PaymentStatus == constants.PAYMENT_REFUNDED {
		emailData.RefundNote = "Your payment will be refunded within 5-7 business days."
	}
	utils.SendOrderCancelledEmail(currentUser.Email, emailData)

	return utils.SuccessMessageResponse(c, fiber.StatusOK, "Order cancelled", order)
}

// GetOrderStats aggregates counts and revenue for the admin dashboard.
func GetOrderStats(c *fiber.Ctx) error {
	db := database.DB

	var totalOrders int64
	if err := db.Model(&model.Order{}).Count(&totalOrders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	if err := db.Model(&model.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&byStatus).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	statusCounts := make(map[string]int64, len(byStatus))
	for _, row := range byStatus {
		statusCounts[row.Status] = row.Count
	}

	var revenue float64
	if err := db.Model(&model.Order{}).
		Where("payment_status = ?", constants.PAYMENT_PAID).
		Select("coalesce(sum(grand_total), 0)").
		Scan(&revenue).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalOrders":  totalOrders,
		"statusCounts": statusCounts,
		"totalRevenue": revenue,
	})
}

func orderEmailData(order *model.Order, customerName string) utils.OrderEmailData {
	items := make([]utils.OrderEmailItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, utils.OrderEmailItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return utils.OrderEmailData{
		OrderNumber:    order.OrderNumber,
		CustomerName:   customerName,
		Items:          items,
		TotalAmount:    order.TotalAmount,
		TaxAmount:      order.TaxAmount,
		ShippingAmount: order.ShippingAmount,
		GrandTotal:     order.GrandTotal,
		PaymentMethod:  order.PaymentMethod,
	}
}
