package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/GrandCart/PantryPlus2/internal/cache"
	"github.com/GrandCart/PantryPlus2/internal/identity"
)

// SessionBinding keys the cache to the active identity. It consumes exactly
// one identity change stream: sign-in triggers a load for the new user,
// sign-out clears the cache with no remote call. The cache is always cleared
// before a load starts, and each load is keyed to the epoch of that clear,
// so a load left over from a previous session can never land — rapid
// in/out/in sequences included.
type SessionBinding struct {
	changes <-chan identity.Change
	svc     *InventoryService
	cache   *cache.Cache
	logger  *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSessionBinding(provider identity.Provider, svc *InventoryService, c *cache.Cache, logger *slog.Logger) *SessionBinding {
	return &SessionBinding{
		changes: provider.Changes(),
		svc:     svc,
		cache:   c,
		logger:  logger,
	}
}

// Run consumes identity changes until ctx is cancelled or the stream closes.
// Events are handled on this goroutine; only loads run concurrently.
func (b *SessionBinding) Run(ctx context.Context) {
	defer func() {
		if b.cancel != nil {
			b.cancel()
		}
		b.wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-b.changes:
			if !ok {
				return
			}
			b.handle(ctx, change)
		}
	}
}

func (b *SessionBinding) handle(ctx context.Context, change identity.Change) {
	// Cancel any in-flight load, then clear. The returned epoch keys the
	// next load; the epoch bump also fences stubborn in-flight fetches that
	// ignore cancellation.
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	epoch := b.cache.Clear()

	if change.Next == nil {
		b.logger.Info("signed out, cache cleared")
		return
	}

	userID := change.Next.ID
	b.logger.Info("signed in, loading inventory", "user_id", userID)

	loadCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.svc.loadAt(loadCtx, userID, epoch); err != nil {
			b.logger.Error("failed to load inventory", "user_id", userID, "error", err)
		}
	}()
}
