package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrandCart/PantryPlus2/internal/cache"
	"github.com/GrandCart/PantryPlus2/internal/domain"
	"github.com/GrandCart/PantryPlus2/internal/identity"
)

// gatedDocStore blocks each GetAll until the test releases that user's gate,
// so sign-in races can be staged deterministically. It deliberately ignores
// context cancellation: the epoch fence alone must keep stale loads out.
type gatedDocStore struct {
	itemsByUser map[string][]domain.InventoryItem
	started     chan string
	gates       map[string]chan struct{}
}

func newGatedDocStore(users ...string) *gatedDocStore {
	g := &gatedDocStore{
		itemsByUser: make(map[string][]domain.InventoryItem),
		started:     make(chan string),
		gates:       make(map[string]chan struct{}),
	}
	for _, u := range users {
		g.gates[u] = make(chan struct{})
		g.itemsByUser[u] = []domain.InventoryItem{{ID: u + "-item", Name: "Item of " + u}}
	}
	return g
}

func (g *gatedDocStore) GetAll(_ context.Context, userID string) ([]domain.InventoryItem, error) {
	g.started <- userID
	<-g.gates[userID]
	return g.itemsByUser[userID], nil
}

func (g *gatedDocStore) Insert(_ context.Context, _ string, _ domain.InventoryItem) (string, error) {
	panic("not expected")
}

func (g *gatedDocStore) Update(_ context.Context, _ string, _ domain.InventoryItem) error {
	panic("not expected")
}

func (g *gatedDocStore) Delete(_ context.Context, _, _ string) error {
	panic("not expected")
}

func startBinding(t *testing.T, docs documentStore) (*identity.LocalProvider, *cache.Cache, func()) {
	t.Helper()
	provider := identity.NewLocalProvider()
	c := cache.New()
	svc := NewInventoryService(docs, &stubBlobStore{}, c, 3, testLogger())
	b := NewSessionBinding(provider, svc, c, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	stop := func() {
		cancel()
		<-done
	}
	return provider, c, stop
}

func TestSignInLoadsInventory(t *testing.T) {
	docs := newGatedDocStore("user1")
	provider, c, stop := startBinding(t, docs)

	provider.SignIn(domain.UserProfile{ID: "user1"})
	assert.Equal(t, "user1", <-docs.started)
	close(docs.gates["user1"])

	require.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 5*time.Millisecond)
	got, ok := c.ByID("user1-item")
	require.True(t, ok)
	assert.Equal(t, "Item of user1", got.Name)

	stop()
}

func TestSignOutClearsCacheWithoutRemoteCall(t *testing.T) {
	docs := newGatedDocStore("user1")
	provider, c, stop := startBinding(t, docs)

	provider.SignIn(domain.UserProfile{ID: "user1"})
	<-docs.started
	close(docs.gates["user1"])
	require.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 5*time.Millisecond)

	provider.SignOut()
	require.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 5*time.Millisecond)

	// No further remote fetch was triggered by the sign-out.
	select {
	case u := <-docs.started:
		t.Fatalf("unexpected load for %q", u)
	default:
	}

	stop()
}

func TestStaleLoadDiscardedOnUserSwitch(t *testing.T) {
	docs := newGatedDocStore("user1", "user2")
	provider, c, stop := startBinding(t, docs)

	// user1's load starts and stalls.
	provider.SignIn(domain.UserProfile{ID: "user1"})
	assert.Equal(t, "user1", <-docs.started)

	// user2 signs in before user1's load resolves.
	provider.SignIn(domain.UserProfile{ID: "user2"})
	assert.Equal(t, "user2", <-docs.started)

	// Let the stale user1 load finish first, then user2's.
	close(docs.gates["user1"])
	close(docs.gates["user2"])

	require.Eventually(t, func() bool {
		_, ok := c.ByID("user2-item")
		return ok
	}, time.Second, 5*time.Millisecond)

	// stop waits for all in-flight loads, so the stale result had every
	// chance to land before we assert it didn't.
	stop()

	_, ok := c.ByID("user1-item")
	assert.False(t, ok, "stale user1 load must be discarded")
	assert.Equal(t, 1, c.Len())
}

func TestSignOutBeforeLoadResolves(t *testing.T) {
	docs := newGatedDocStore("user1")
	provider, c, stop := startBinding(t, docs)

	provider.SignIn(domain.UserProfile{ID: "user1"})
	<-docs.started
	provider.SignOut()
	close(docs.gates["user1"])

	stop()
	assert.Equal(t, 0, c.Len(), "load resolving after sign-out must not populate the cache")
}
