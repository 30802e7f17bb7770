package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"playground_store/constants"
	"playground_store/database"
	"playground_store/helper"
	"playground_store/model"
	"playground_store/router"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	helper.JwtSecret = []byte("test-secret")
	os.Exit(m.Run())
}

func setupTestApp(t *testing.T) (*fiber.App, *clockwork.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	database.Migrate(db)
	database.DB = db

	fake := clockwork.NewFakeClockAt(time.Date(2026, time.May, 10, 9, 0, 0, 0, time.UTC))
	restore := helper.Clock
	helper.Clock = fake
	t.Cleanup(func() { helper.Clock = restore })

	app := fiber.New()
	router.SetupRoutes(app)
	return app, fake
}

func createUser(t *testing.T, name, email, role string) *model.User {
	t.Helper()

	hash, err := helper.HashPassword("changeme123")
	require.NoError(t, err)

	user := model.User{
		Name:     name,
		Email:    email,
		Phone:    "9876543210",
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return &user
}

func tokenFor(t *testing.T, user *model.User) string {
	t.Helper()

	token, err := helper.GenerateAccessToken(model.TokenClaim{
		UserId: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	require.NoError(t, err)
	return token
}

func deactivate(userId uint) error {
	return database.DB.Model(&model.User{}).Where("id = ?", userId).Update("is_active", false).Error
}

func createEquipment(t *testing.T, name, slug string, price float64, stock int) *model.Equipment {
	t.Helper()

	equipment := model.Equipment{
		Name:        name,
		Slug:        slug,
		Category:    "Swings",
		Price:       price,
		Stock:       stock,
		IsAvailable: stock > 0,
	}
	require.NoError(t, database.DB.Create(&equipment).Error)
	return &equipment
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func shippingAddressBody() map[string]interface{} {
	return map[string]interface{}{
		"name":    "Asha Verma",
		"phone":   "9876501234",
		"street":  "14 Lake View Road",
		"city":    "Pune",
		"state":   "Maharashtra",
		"zipCode": "411001",
		"country": "India",
	}
}

func placeOrder(t *testing.T, app *fiber.App, token string, items []map[string]interface{}) map[string]interface{} {
	t.Helper()

	resp, body := doRequest(t, app, fiber.MethodPost, "/api/v1/orders", token, map[string]interface{}{
		"items":           items,
		"shippingAddress": shippingAddressBody(),
		"paymentMethod":   constants.PAYMENT_METHOD_COD,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return body["data"].(map[string]interface{})
}
