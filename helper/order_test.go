package helper

import (
	"regexp"
	"testing"
	"time"

	"playground_store/database"
	"playground_store/model"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCalculateOrderAmounts(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		wantTax      float64
		wantShipping float64
		wantGrand    float64
	}{
		{"standard order", 25000, 4500, 2000, 31500},
		{"exactly at threshold still pays shipping", 50000, 9000, 2000, 61000},
		{"above threshold ships free", 50001, 9000.18, 0, 59001.18},
		{"large order", 100000, 18000, 0, 118000},
		{"zero total", 0, 0, 2000, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tax, shipping, grand := CalculateOrderAmounts(tt.total)
			assert.InDelta(t, tt.wantTax, tax, 0.001)
			assert.InDelta(t, tt.wantShipping, shipping, 0.001)
			assert.InDelta(t, tt.wantGrand, grand, 0.001)
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	database.Migrate(db)

	restore := Clock
	Clock = clockwork.NewFakeClockAt(time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC))
	defer func() { Clock = restore }()

	number := GenerateOrderNumber(db)
	assert.Regexp(t, regexp.MustCompile(`^PG2603\d{4}$`), number)
}

func TestGenerateOrderNumberSkipsCollisions(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	database.Migrate(db)

	first := GenerateOrderNumber(db)
	require.NoError(t, db.Create(&model.Order{
		OrderNumber: first,
		UserId:      1,
		TotalAmount: 100,
		GrandTotal:  100,
	}).Error)

	second := GenerateOrderNumber(db)
	assert.NotEqual(t, first, second)
}
