package handler_test

import (
	"fmt"
	"testing"

	"playground_store/constants"
	"playground_store/database"
	"playground_store/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderComputesTotalsAndReservesStock(t *testing.T) {
	app, _ := setupTestApp(t)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	token := tokenFor(t, customer)

	swing := createEquipment(t, "Double Bay Swing", "double-bay-swing", 10000, 3)
	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 1)

	data := placeOrder(t, app, token, []map[string]interface{}{
		{"equipmentId": swing.ID, "quantity": 2},
		{"equipmentId": slide.ID, "quantity": 1},
	})

	assert.InDelta(t, 25000.0, data["totalAmount"], 0.001)
	assert.InDelta(t, 4500.0, data["taxAmount"], 0.001)
	assert.InDelta(t, 2000.0, data["shippingAmount"], 0.001)
	assert.InDelta(t, 31500.0, data["grandTotal"], 0.001)
	assert.Equal(t, constants.ORDER_PENDING, data["status"])
	assert.Regexp(t, `^PG\d{8}$`, data["orderNumber"])

	var reloadedSwing, reloadedSlide model.Equipment
	require.NoError(t, database.DB.First(&reloadedSwing, swing.ID).Error)
	require.NoError(t, database.DB.First(&reloadedSlide, slide.ID).Error)
	assert.Equal(t, 1, reloadedSwing.Stock)
	assert.True(t, reloadedSwing.IsAvailable)
	assert.Equal(t, 0, reloadedSlide.Stock)
	assert.False(t, reloadedSlide.IsAvailable)
}

func TestCreateOrderFreeShippingAboveThreshold(t *testing.T) {
	app, _ := setupTestApp(t)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	token := tokenFor(t, customer)

	tower := createEquipment(t, "Play Tower", "play-tower", 60000, 2)

	data := placeOrder(t, app, token, []map[string]interface{}{
		{"equipmentId": tower.ID, "quantity": 1},
	})

	assert.InDelta(t, 0.0, data["shippingAmount"], 0.001)
	assert.InDelta(t, 70800.0, data["grandTotal"], 0.001)
}

func TestCreateOrderRollsBackWhenAnyItemShort(t *testing.T) {
	app, _ := setupTestApp(t)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	token := tokenFor(t, customer)

	swing := createEquipment(t, "Double Bay Swing", "double-bay-swing", 10000, 5)
	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 1)

	resp, body := doRequest(t, app, fiber.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{
			{"equipmentId": swing.ID, "quantity": 2},
			{"equipmentId": slide.ID, "quantity": 3},
		},
		"shippingAddress": shippingAddressBody(),
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	// The first item's reservation must not survive the failed order.
	var reloadedSwing model.Equipment
	require.NoError(t, database.DB.First(&reloadedSwing, swing.ID).Error)
	assert.Equal(t, 5, reloadedSwing.Stock)

	var orderCount int64
	require.NoError(t, database.DB.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestCreateOrderRejectsEmptyItems(t *testing.T) {
	app, _ := setupTestApp(t)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	token := tokenFor(t, customer)

	resp, body := doRequest(t, app, fiber.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items":           []map[string]interface{}{},
		"shippingAddress": shippingAddressBody(),
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No items in order", body["message"])
}

func TestCancelOrderRestoresStock(t *testing.T) {
	app, _ := setupTestApp(t)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	token := tokenFor(t, customer)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 1)

	data := placeOrder(t, app, token, []map[string]interface{}{
		{"equipmentId": slide.ID, "quantity": 1},
	})
	orderId := uint(data["id"].(float64))

	resp, body := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/v1/orders/%d/cancel", orderId), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	var reloadedSlide model.Equipment
	require.NoError(t, database.DB.First(&reloadedSlide, slide.ID).Error)
	assert.Equal(t, 1, reloadedSlide.Stock)
	assert.True(t, reloadedSlide.IsAvailable)

	var order model.Order
	require.NoError(t, database.DB.Preload("StatusHistory").First(&order, orderId).Error)
	assert.Equal(t, constants.ORDER_CANCELLED, order.Status)
	require.Len(t, order.StatusHistory, 2)
	assert.Equal(t, constants.ORDER_CANCELLED, order.StatusHistory[1].Status)
}

func TestCancelOrderRejectedAfterShipping(t *testing.T) {
	app, _ := setupTestApp(t)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	token := tokenFor(t, customer)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 2)

	data := placeOrder(t, app, token, []map[string]interface{}{
		{"equipmentId": slide.ID, "quantity": 1},
	})
	orderId := uint(data["id"].(float64))

	require.NoError(t, database.DB.Model(&model.Order{}).
		Where("id = ?", orderId).
		Update("status", constants.ORDER_SHIPPED).Error)

	resp, _ := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/v1/orders/%d/cancel", orderId), token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Stock stays reserved.
	var reloadedSlide model.Equipment
	require.NoError(t, database.DB.First(&reloadedSlide, slide.ID).Error)
	assert.Equal(t, 1, reloadedSlide.Stock)
}

func TestCancelOrderForbiddenForOtherCustomer(t *testing.T) {
	app, _ := setupTestApp(t)
	owner := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	stranger := createUser(t, "Ravi", "ravi@example.com", constants.ROLE_CUSTOMER)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 2)

	data := placeOrder(t, app, tokenFor(t, owner), []map[string]interface{}{
		{"equipmentId": slide.ID, "quantity": 1},
	})
	orderId := uint(data["id"].(float64))

	resp, _ := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/v1/orders/%d/cancel", orderId), tokenFor(t, stranger), nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUpdateOrderStatusAppendsHistory(t *testing.T) {
	app, _ := setupTestApp(t)
	admin := createUser(t, "Admin", "admin@example.com", constants.ROLE_ADMIN)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	adminToken := tokenFor(t, admin)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 2)
	data := placeOrder(t, app, tokenFor(t, customer), []map[string]interface{}{
		{"equipmentId": slide.ID, "quantity": 1},
	})
	orderId := uint(data["id"].(float64))

	for _, status := range []string{constants.ORDER_CONFIRMED, constants.ORDER_PROCESSING} {
		resp, _ := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/v1/orders/%d/status", orderId), adminToken, map[string]interface{}{
			"status": status,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	var order model.Order
	require.NoError(t, database.DB.Preload("StatusHistory").First(&order, orderId).Error)
	assert.Equal(t, constants.ORDER_PROCESSING, order.Status)
	assert.Len(t, order.StatusHistory, 3) // pending, confirmed, processing
}

func TestUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	app, _ := setupTestApp(t)
	admin := createUser(t, "Admin", "admin@example.com", constants.ROLE_ADMIN)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 2)
	data := placeOrder(t, app, tokenFor(t, customer), []map[string]interface{}{
		{"equipmentId": slide.ID, "quantity": 1},
	})
	orderId := uint(data["id"].(float64))

	resp, _ := doRequest(t, app, fiber.MethodPut, fmt.Sprintf("/api/v1/orders/%d/status", orderId), tokenFor(t, admin), map[string]interface{}{
		"status": "teleported",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetOrdersScopedToCustomer(t *testing.T) {
	app, _ := setupTestApp(t)
	asha := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	ravi := createUser(t, "Ravi", "ravi@example.com", constants.ROLE_CUSTOMER)
	admin := createUser(t, "Admin", "admin@example.com", constants.ROLE_ADMIN)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 10)
	placeOrder(t, app, tokenFor(t, asha), []map[string]interface{}{{"equipmentId": slide.ID, "quantity": 1}})
	placeOrder(t, app, tokenFor(t, ravi), []map[string]interface{}{{"equipmentId": slide.ID, "quantity": 1}})

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/orders", tokenFor(t, asha), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 1)

	resp, body = doRequest(t, app, fiber.MethodGet, "/api/v1/orders", tokenFor(t, admin), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["data"].([]interface{}), 2)
}

func TestGetMyOrders(t *testing.T) {
	app, _ := setupTestApp(t)
	asha := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	ravi := createUser(t, "Ravi", "ravi@example.com", constants.ROLE_CUSTOMER)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 10)
	placeOrder(t, app, tokenFor(t, asha), []map[string]interface{}{{"equipmentId": slide.ID, "quantity": 1}})
	placeOrder(t, app, tokenFor(t, ravi), []map[string]interface{}{{"equipmentId": slide.ID, "quantity": 2}})

	resp, body := doRequest(t, app, fiber.MethodGet, "/api/v1/orders/my-orders", tokenFor(t, ravi), nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	orders := body["data"].([]interface{})
	require.Len(t, orders, 1)
	items := orders[0].(map[string]interface{})["items"].([]interface{})
	require.Len(t, items, 1)
	assert.EqualValues(t, 2, items[0].(map[string]interface{})["quantity"])
}

func TestGetOrderReturnsQRCode(t *testing.T) {
	app, _ := setupTestApp(t)
	customer := createUser(t, "Asha", "asha@example.com", constants.ROLE_CUSTOMER)
	token := tokenFor(t, customer)

	slide := createEquipment(t, "Spiral Slide", "spiral-slide", 5000, 2)
	data := placeOrder(t, app, token, []map[string]interface{}{
		{"equipmentId": slide.ID, "quantity": 1},
	})
	orderId := uint(data["id"].(float64))

	resp, body := doRequest(t, app, fiber.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderId), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	payload := body["data"].(map[string]interface{})
	assert.Contains(t, payload["qrCode"], "data:image/png;base64,")
}
