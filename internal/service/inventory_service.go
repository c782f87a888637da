// Package service coordinates the remote document and blob stores with the
// local cache: load, add, update, delete, and the session binding that keys
// the cache to the signed-in user.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GrandCart/PantryPlus2/internal/blobstore"
	"github.com/GrandCart/PantryPlus2/internal/cache"
	"github.com/GrandCart/PantryPlus2/internal/domain"
	"github.com/GrandCart/PantryPlus2/internal/query"
	"github.com/GrandCart/PantryPlus2/internal/status"
	"github.com/GrandCart/PantryPlus2/internal/store"
)

// documentStore is the subset of store.ItemStore that InventoryService
// requires.
type documentStore interface {
	GetAll(ctx context.Context, userID string) ([]domain.InventoryItem, error)
	Insert(ctx context.Context, userID string, item domain.InventoryItem) (string, error)
	Update(ctx context.Context, userID string, item domain.InventoryItem) error
	Delete(ctx context.Context, userID, id string) error
}

// InventoryService sequences remote mutations and reconciles their results
// into the cache. The cache is only touched on the success path, except
// where the contract says otherwise (post-delete removal survives an image
// delete failure). Writes to a single item must be serialized by the caller;
// operations on different items may run concurrently.
type InventoryService struct {
	docs          documentStore
	blobs         blobstore.BlobStore
	cache         *cache.Cache
	thresholdDays int
	logger        *slog.Logger
}

func NewInventoryService(
	docs documentStore,
	blobs blobstore.BlobStore,
	c *cache.Cache,
	thresholdDays int,
	logger *slog.Logger,
) *InventoryService {
	if thresholdDays <= 0 {
		thresholdDays = status.DefaultThresholdDays
	}
	return &InventoryService{
		docs:          docs,
		blobs:         blobs,
		cache:         c,
		thresholdDays: thresholdDays,
		logger:        logger,
	}
}

// Load replaces the cache wholesale with the user's remote collection. On
// remote failure the cache is left untouched. Full refresh, not incremental:
// collections run tens to low hundreds of items.
func (s *InventoryService) Load(ctx context.Context, userID string) error {
	return s.loadAt(ctx, userID, s.cache.Epoch())
}

// loadAt is Load keyed to a cache epoch: if the session changed after the
// epoch was taken, the fetched result is discarded instead of committed.
func (s *InventoryService) loadAt(ctx context.Context, userID string, epoch uint64) error {
	if userID == "" {
		return ErrNotAuthenticated
	}

	items, err := s.docs.GetAll(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrDecode) {
			return fmt.Errorf("failed to load items: %w", err)
		}
		return fmt.Errorf("failed to load items: %w: %w", ErrRemoteRead, err)
	}

	if !s.cache.ReplaceAllAt(epoch, items) {
		s.logger.Info("discarded stale load", "user_id", userID, "items", len(items))
		return nil
	}

	s.logger.Info("inventory loaded", "user_id", userID, "items", len(items))
	return nil
}

// Add uploads the image first (when supplied), then writes the item document
// with the returned URL embedded, then upserts the item into the cache with
// its remote-assigned identifier. If the document write fails after a
// successful upload, the blob is orphaned: surfaced and logged, never rolled
// back or retried here.
func (s *InventoryService) Add(ctx context.Context, userID string, item domain.InventoryItem, image []byte, imageType string) (*domain.InventoryItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	uploaded := false
	if len(image) > 0 {
		url, err := s.blobs.Upload(ctx, userID, item.Category, imageType, bytes.NewReader(image))
		if err != nil {
			return nil, fmt.Errorf("failed to add %q: %w: %w", item.Name, ErrImageUpload, err)
		}
		item.ImageURL = url
		uploaded = true
	}

	id, err := s.docs.Insert(ctx, userID, item)
	if err != nil {
		if uploaded {
			s.logger.Warn("image orphaned after failed insert", "user_id", userID, "url", item.ImageURL)
		}
		return nil, fmt.Errorf("failed to add %q: %w: %w", item.Name, ErrRemoteWrite, err)
	}

	item.ID = id
	s.cache.Upsert(item)
	s.logger.Info("item added", "user_id", userID, "item_id", id, "name", item.Name)
	return &item, nil
}

// Update rewrites an existing document with the same upload-then-write
// ordering as Add. Without new image bytes, the item's existing image
// reference is left unchanged. The item must already carry an identifier.
func (s *InventoryService) Update(ctx context.Context, userID string, item domain.InventoryItem, image []byte, imageType string) (*domain.InventoryItem, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	if item.ID == "" {
		return nil, fmt.Errorf("cannot update %q: %w", item.Name, ErrMissingIdentifier)
	}

	uploaded := false
	if len(image) > 0 {
		url, err := s.blobs.Upload(ctx, userID, item.Category, imageType, bytes.NewReader(image))
		if err != nil {
			return nil, fmt.Errorf("failed to update %q: %w: %w", item.ID, ErrImageUpload, err)
		}
		// The replaced blob is left in place; only item deletion removes
		// images.
		item.ImageURL = url
		uploaded = true
	}

	if err := s.docs.Update(ctx, userID, item); err != nil {
		if uploaded {
			s.logger.Warn("image orphaned after failed update", "user_id", userID, "url", item.ImageURL)
		}
		return nil, fmt.Errorf("failed to update %q: %w: %w", item.ID, ErrRemoteWrite, err)
	}

	s.cache.Upsert(item)
	s.logger.Info("item updated", "user_id", userID, "item_id", item.ID)
	return &item, nil
}

// Delete removes the remote document first; if that fails, nothing local
// changes and the cache keeps matching remote state. On success the item's
// image (if any) is deleted and the item is removed from the cache. An image
// delete failure does not restore the item — the document is gone, which is
// authoritative — but it is reported as ErrImageDelete.
func (s *InventoryService) Delete(ctx context.Context, userID string, item domain.InventoryItem) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if item.ID == "" {
		return fmt.Errorf("cannot delete %q: %w", item.Name, ErrMissingIdentifier)
	}

	if err := s.docs.Delete(ctx, userID, item.ID); err != nil {
		return fmt.Errorf("failed to delete %q: %w: %w", item.ID, ErrRemoteWrite, err)
	}

	var imageErr error
	if item.ImageURL != "" {
		if err := s.blobs.Delete(ctx, item.ImageURL); err != nil {
			s.logger.Warn("image orphaned after delete", "user_id", userID, "item_id", item.ID, "url", item.ImageURL, "error", err)
			imageErr = fmt.Errorf("deleted %q but %w: %w", item.ID, ErrImageDelete, err)
		}
	}

	s.cache.Remove(item.ID)
	s.logger.Info("item deleted", "user_id", userID, "item_id", item.ID)
	return imageErr
}

// Items returns the cached collection in insertion order.
func (s *InventoryService) Items() []domain.InventoryItem {
	return s.cache.All()
}

// Item returns one cached item by identifier.
func (s *InventoryService) Item(id string) (domain.InventoryItem, bool) {
	return s.cache.ByID(id)
}

// View returns the filtered, sorted read view over the current cache
// snapshot.
func (s *InventoryService) View(f query.Filter) []domain.InventoryItem {
	return query.View(s.cache.All(), f)
}

// ExpiringSoon returns unexpired cached items within the expiring threshold
// of now.
func (s *InventoryService) ExpiringSoon() []domain.InventoryItem {
	now := time.Now()
	var out []domain.InventoryItem
	for _, item := range s.cache.All() {
		if status.IsExpiringSoon(item, now, s.thresholdDays) {
			out = append(out, item)
		}
	}
	return out
}

// Expired returns cached items whose expiration date has passed.
func (s *InventoryService) Expired() []domain.InventoryItem {
	now := time.Now()
	var out []domain.InventoryItem
	for _, item := range s.cache.All() {
		if status.IsExpired(item, now) {
			out = append(out, item)
		}
	}
	return out
}

// Stock re-derives the item's stock status at the current time.
func (s *InventoryService) Stock(item domain.InventoryItem) domain.StockStatus {
	return status.Stock(item, time.Now(), s.thresholdDays)
}
