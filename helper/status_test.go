package helper

import (
	"testing"
	"time"

	"playground_store/constants"
	"playground_store/database"
	"playground_store/model"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStatusDB(t *testing.T) (*gorm.DB, *clockwork.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	database.Migrate(db)

	fake := clockwork.NewFakeClockAt(time.Date(2026, time.April, 1, 9, 0, 0, 0, time.UTC))
	restore := Clock
	Clock = fake
	t.Cleanup(func() { Clock = restore })

	return db, fake
}

func seedOrderWithInstallation(t *testing.T, db *gorm.DB) (*model.Order, *model.Installation) {
	t.Helper()

	order := model.Order{
		OrderNumber: "PG26040001",
		UserId:      1,
		TotalAmount: 10000,
		GrandTotal:  13800,
		Status:      constants.ORDER_DELIVERED,
	}
	require.NoError(t, db.Create(&order).Error)

	installation := model.Installation{
		PublicCode:    "INS-TEST0001",
		OrderId:       order.ID,
		TeamId:        2,
		CustomerId:    1,
		ScheduledDate: Clock.Now().AddDate(0, 0, 3),
		Status:        constants.INSTALLATION_SCHEDULED,
		EquipmentList: []model.InstallationEquipment{
			{EquipmentId: 1, Name: "Spiral Slide", Quantity: 1, InstallationStatus: constants.EQUIPMENT_ITEM_PENDING},
			{EquipmentId: 2, Name: "Toddler Swing", Quantity: 2, InstallationStatus: constants.EQUIPMENT_ITEM_PENDING},
		},
	}
	require.NoError(t, db.Create(&installation).Error)

	return &order, &installation
}

func TestChangeOrderStatusAppendsHistory(t *testing.T) {
	db, _ := setupStatusDB(t)
	order, _ := seedOrderWithInstallation(t, db)

	require.NoError(t, ChangeOrderStatus(db, order, constants.ORDER_CONFIRMED, "payment received", 9))
	require.NoError(t, ChangeOrderStatus(db, order, constants.ORDER_PROCESSING, "", 9))

	var logs []model.OrderStatusLog
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id asc").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, constants.ORDER_CONFIRMED, logs[0].Status)
	assert.Equal(t, "payment received", logs[0].Note)
	assert.Equal(t, constants.ORDER_PROCESSING, logs[1].Status)
	assert.Equal(t, uint(9), logs[1].UpdatedBy)
}

func TestChangeInstallationStatusStampsStartTime(t *testing.T) {
	db, fake := setupStatusDB(t)
	_, installation := seedOrderWithInstallation(t, db)

	require.NoError(t, ChangeInstallationStatus(db, installation, constants.INSTALLATION_IN_PROGRESS, "crew on site", 2))

	require.NotNil(t, installation.StartTime)
	assert.Equal(t, fake.Now().Unix(), installation.StartTime.Unix())

	// Going on hold and back must not reset the original start time.
	started := *installation.StartTime
	fake.Advance(2 * time.Hour)
	require.NoError(t, ChangeInstallationStatus(db, installation, constants.INSTALLATION_ON_HOLD, "waiting for parts", 2))
	require.NoError(t, ChangeInstallationStatus(db, installation, constants.INSTALLATION_IN_PROGRESS, "resumed", 2))

	var reloaded model.Installation
	require.NoError(t, db.First(&reloaded, installation.ID).Error)
	assert.Equal(t, started.Unix(), reloaded.StartTime.Unix())
}

func TestInstallationStatusMirrorsOrder(t *testing.T) {
	db, _ := setupStatusDB(t)
	order, installation := seedOrderWithInstallation(t, db)

	require.NoError(t, ChangeInstallationStatus(db, installation, constants.INSTALLATION_IN_PROGRESS, "", 2))

	var reloadedOrder model.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, constants.ORDER_INSTALLATION_IN_PROGRESS, reloadedOrder.Status)

	require.NoError(t, ChangeInstallationStatus(db, installation, constants.INSTALLATION_COMPLETED, "", 2))

	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, constants.ORDER_COMPLETED, reloadedOrder.Status)
	assert.NotNil(t, installation.CompletedDate)
}

func TestOnHoldDoesNotTouchOrder(t *testing.T) {
	db, _ := setupStatusDB(t)
	order, installation := seedOrderWithInstallation(t, db)

	require.NoError(t, ChangeInstallationStatus(db, installation, constants.INSTALLATION_ON_HOLD, "rain", 2))

	var reloadedOrder model.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, constants.ORDER_DELIVERED, reloadedOrder.Status)
}

func TestCompleteIfAllInstalled(t *testing.T) {
	db, _ := setupStatusDB(t)
	order, installation := seedOrderWithInstallation(t, db)

	var entries []model.InstallationEquipment
	require.NoError(t, db.Where("installation_id = ?", installation.ID).Find(&entries).Error)
	require.Len(t, entries, 2)

	// One entry done: not complete yet.
	require.NoError(t, db.Model(&entries[0]).Update("installation_status", constants.EQUIPMENT_ITEM_COMPLETED).Error)
	done, err := CompleteIfAllInstalled(db, installation, 2)
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, constants.INSTALLATION_SCHEDULED, installation.Status)

	// Second entry done: installation and order roll to completed.
	require.NoError(t, db.Model(&entries[1]).Update("installation_status", constants.EQUIPMENT_ITEM_COMPLETED).Error)
	done, err = CompleteIfAllInstalled(db, installation, 2)
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, constants.INSTALLATION_COMPLETED, installation.Status)
	assert.NotNil(t, installation.CompletedDate)

	var reloadedOrder model.Order
	require.NoError(t, db.First(&reloadedOrder, order.ID).Error)
	assert.Equal(t, constants.ORDER_COMPLETED, reloadedOrder.Status)

	// Idempotent: calling again reports nothing to do.
	done, err = CompleteIfAllInstalled(db, installation, 2)
	require.NoError(t, err)
	assert.False(t, done)
}
