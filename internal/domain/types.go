package domain

import "time"

// StorageLocation is where an item is kept. Stored remotely as its string tag.
type StorageLocation string

const (
	LocationPantry       StorageLocation = "pantry"
	LocationRefrigerator StorageLocation = "refrigerator"
	LocationFreezer      StorageLocation = "freezer"
	LocationCustom       StorageLocation = "custom"
)

// Valid reports whether l is one of the known location tags.
func (l StorageLocation) Valid() bool {
	switch l {
	case LocationPantry, LocationRefrigerator, LocationFreezer, LocationCustom:
		return true
	}
	return false
}

// DefaultExpiryDays is the recommended shelf life for the location, used to
// pre-fill an expiration date when the user doesn't supply one.
func (l StorageLocation) DefaultExpiryDays() int {
	switch l {
	case LocationRefrigerator:
		return 7
	case LocationFreezer:
		return 180
	case LocationCustom:
		return 30
	default:
		return 90
	}
}

// StockStatus classifies an item's availability/urgency. Derived, never stored.
type StockStatus string

const (
	StockOutOfStock   StockStatus = "out_of_stock"
	StockExpired      StockStatus = "expired"
	StockExpiringSoon StockStatus = "expiring_soon"
	StockRunningLow   StockStatus = "running_low"
	StockInStock      StockStatus = "in_stock"
)

// InventoryItem is one tracked good in a user's collection. ID is empty until
// the document store assigns one on first insert.
type InventoryItem struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	Brand          string          `json:"brand,omitempty"`
	Category       string          `json:"category"`
	Quantity       float64         `json:"quantity"`
	Unit           string          `json:"unit"`
	ExpirationDate *time.Time      `json:"expiration_date,omitempty"`
	Location       StorageLocation `json:"location"`
	PurchaseDate   time.Time       `json:"purchase_date"`
	Notes          string          `json:"notes,omitempty"`
	UsageFrequency int             `json:"usage_frequency"` // uses per week
	ImageURL       string          `json:"image_url,omitempty"`
	Price          *float64        `json:"price,omitempty"`
	Barcode        string          `json:"barcode,omitempty"`
	OnShoppingList bool            `json:"on_shopping_list"`
}

// UserProfile identifies the active user and carries the subscription state
// the surrounding app reads. The core only uses ID.
type UserProfile struct {
	ID          string     `json:"id"`
	Email       string     `json:"email,omitempty"`
	DisplayName string     `json:"display_name,omitempty"`
	Premium     bool       `json:"premium"`
	TrialEndsAt *time.Time `json:"trial_ends_at,omitempty"`
}
