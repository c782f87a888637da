// Package query composes location filter, free-text search, and sort order
// into a single derived view over a cache snapshot.
package query

import (
	"sort"
	"strings"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

// SortOrder selects the ordering of a view.
type SortOrder string

const (
	SortNameAsc        SortOrder = "name_asc"
	SortNameDesc       SortOrder = "name_desc"
	SortExpirationAsc  SortOrder = "expiration_asc"
	SortExpirationDesc SortOrder = "expiration_desc"
	SortRecentlyAdded  SortOrder = "recently_added"
)

// ParseSortOrder maps a request parameter to a SortOrder, defaulting to
// name ascending for unknown or empty values.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(s) {
	case SortNameDesc, SortExpirationAsc, SortExpirationDesc, SortRecentlyAdded:
		return SortOrder(s)
	default:
		return SortNameAsc
	}
}

// Filter describes a view: optional exact location match, case-insensitive
// substring search over name/brand/category, and a sort order. Location and
// search compose by AND; sort applies last, stably.
type Filter struct {
	Location *domain.StorageLocation
	Search   string
	Sort     SortOrder
}

// View returns the filtered, sorted sequence. The input slice is not
// modified.
func View(items []domain.InventoryItem, f Filter) []domain.InventoryItem {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if f.Location != nil && item.Location != *f.Location {
			continue
		}
		if needle != "" && !matches(item, needle) {
			continue
		}
		out = append(out, item)
	}

	sortItems(out, f.Sort)
	return out
}

func matches(item domain.InventoryItem, needle string) bool {
	return strings.Contains(strings.ToLower(item.Name), needle) ||
		strings.Contains(strings.ToLower(item.Brand), needle) ||
		strings.Contains(strings.ToLower(item.Category), needle)
}

func sortItems(items []domain.InventoryItem, order SortOrder) {
	switch order {
	case SortNameDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) > strings.ToLower(items[j].Name)
		})
	case SortExpirationAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return expirationLess(items[i], items[j], false)
		})
	case SortExpirationDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return expirationLess(items[i], items[j], true)
		})
	case SortRecentlyAdded:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].PurchaseDate.After(items[j].PurchaseDate)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
}

// expirationLess orders by expiration date. Items without an expiration sort
// after all dated items in both directions; the rule is deliberately the
// same for ascending and descending.
func expirationLess(a, b domain.InventoryItem, desc bool) bool {
	switch {
	case a.ExpirationDate == nil && b.ExpirationDate == nil:
		return false
	case a.ExpirationDate == nil:
		return false
	case b.ExpirationDate == nil:
		return true
	case desc:
		return a.ExpirationDate.After(*b.ExpirationDate)
	default:
		return a.ExpirationDate.Before(*b.ExpirationDate)
	}
}
