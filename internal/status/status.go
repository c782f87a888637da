// Package status derives expiration and stock classifications from item
// fields and the current time. Everything here is pure: callers re-evaluate
// on each read because "now" moves.
package status

import (
	"time"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

// DefaultThresholdDays is the expiring-soon window when callers don't
// configure one.
const DefaultThresholdDays = 3

// startOfDay truncates t to its own calendar date. Comparisons are
// day-granular and time-zone-agnostic: only the date components matter.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntilExpiration returns the whole days from now's date to the item's
// expiration date. ok is false when the item has no expiration. Negative
// means already past.
func DaysUntilExpiration(item domain.InventoryItem, now time.Time) (days int, ok bool) {
	if item.ExpirationDate == nil {
		return 0, false
	}
	d := startOfDay(*item.ExpirationDate).Sub(startOfDay(now))
	return int(d.Hours() / 24), true
}

// IsExpired reports whether the item's expiration date is strictly before
// today. An item expiring today is not yet expired.
func IsExpired(item domain.InventoryItem, now time.Time) bool {
	days, ok := DaysUntilExpiration(item, now)
	return ok && days < 0
}

// IsExpiringSoon reports whether the item expires within thresholdDays days,
// today inclusive.
func IsExpiringSoon(item domain.InventoryItem, now time.Time, thresholdDays int) bool {
	days, ok := DaysUntilExpiration(item, now)
	return ok && days >= 0 && days <= thresholdDays
}

// Stock classifies the item. The precedence is a contract: out-of-stock wins
// over expired, expired over expiring-soon, and so on — an expired item with
// zero quantity reports out_of_stock.
func Stock(item domain.InventoryItem, now time.Time, thresholdDays int) domain.StockStatus {
	switch {
	case item.Quantity <= 0:
		return domain.StockOutOfStock
	case IsExpired(item, now):
		return domain.StockExpired
	case IsExpiringSoon(item, now, thresholdDays):
		return domain.StockExpiringSoon
	case item.UsageFrequency > 0 && item.Quantity < float64(item.UsageFrequency)/7:
		return domain.StockRunningLow
	default:
		return domain.StockInStock
	}
}
