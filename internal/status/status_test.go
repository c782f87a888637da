package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

var now = time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

func itemExpiring(daysFromNow int, qty float64) domain.InventoryItem {
	exp := now.AddDate(0, 0, daysFromNow)
	return domain.InventoryItem{Name: "test", Quantity: qty, ExpirationDate: &exp}
}

func TestIsExpired(t *testing.T) {
	assert.True(t, IsExpired(itemExpiring(-1, 1), now))
	assert.False(t, IsExpired(itemExpiring(0, 1), now), "expiring today is not expired")
	assert.False(t, IsExpired(itemExpiring(1, 1), now))
	assert.False(t, IsExpired(domain.InventoryItem{Quantity: 1}, now), "no expiration never expires")
}

func TestIsExpired_IgnoresTimeOfDay(t *testing.T) {
	// Expiration earlier today at 00:01, checked at 15:30 — same calendar
	// day, so not expired.
	exp := time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC)
	item := domain.InventoryItem{Quantity: 1, ExpirationDate: &exp}
	assert.False(t, IsExpired(item, now))
	assert.True(t, IsExpiringSoon(item, now, DefaultThresholdDays))
}

func TestIsExpiringSoon(t *testing.T) {
	assert.True(t, IsExpiringSoon(itemExpiring(0, 1), now, 3))
	assert.True(t, IsExpiringSoon(itemExpiring(3, 1), now, 3))
	assert.False(t, IsExpiringSoon(itemExpiring(4, 1), now, 3))
	assert.False(t, IsExpiringSoon(itemExpiring(-1, 1), now, 3), "already expired is not expiring soon")
	assert.False(t, IsExpiringSoon(domain.InventoryItem{Quantity: 1}, now, 3))
}

func TestStockPrecedence(t *testing.T) {
	// Quantity <= 0 wins over everything, including being expired.
	assert.Equal(t, domain.StockOutOfStock, Stock(itemExpiring(-5, 0), now, 3))
	assert.Equal(t, domain.StockOutOfStock, Stock(domain.InventoryItem{Quantity: -1}, now, 3))

	assert.Equal(t, domain.StockExpired, Stock(itemExpiring(-5, 2), now, 3))
	assert.Equal(t, domain.StockExpiringSoon, Stock(itemExpiring(2, 2), now, 3))
}

func TestStockRunningLow(t *testing.T) {
	// 7 uses/week = 1/day; quantity below that is running low.
	item := domain.InventoryItem{Quantity: 0.5, UsageFrequency: 7}
	assert.Equal(t, domain.StockRunningLow, Stock(item, now, 3))

	item.Quantity = 1
	assert.Equal(t, domain.StockInStock, Stock(item, now, 3))

	// No usage data means never running low.
	item = domain.InventoryItem{Quantity: 0.1}
	assert.Equal(t, domain.StockInStock, Stock(item, now, 3))
}

func TestStockScenario(t *testing.T) {
	milk := itemExpiring(2, 1)
	milk.Name = "Milk"
	eggs := itemExpiring(10, 0)
	eggs.Name = "Eggs"
	bread := domain.InventoryItem{Name: "Bread", Quantity: 5}

	assert.Equal(t, domain.StockExpiringSoon, Stock(milk, now, 3))
	assert.Equal(t, domain.StockOutOfStock, Stock(eggs, now, 3))
	assert.Equal(t, domain.StockInStock, Stock(bread, now, 3))
}

func TestDaysUntilExpiration(t *testing.T) {
	days, ok := DaysUntilExpiration(itemExpiring(5, 1), now)
	assert.True(t, ok)
	assert.Equal(t, 5, days)

	_, ok = DaysUntilExpiration(domain.InventoryItem{}, now)
	assert.False(t, ok)
}
