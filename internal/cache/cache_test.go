package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

func item(id, name string) domain.InventoryItem {
	return domain.InventoryItem{ID: id, Name: name, Quantity: 1}
}

func TestUpsertAndByID(t *testing.T) {
	c := New()
	c.Upsert(item("a", "Milk"))
	c.Upsert(item("b", "Eggs"))

	got, ok := c.ByID("a")
	require.True(t, ok)
	assert.Equal(t, "Milk", got.Name)

	// Replacement keeps position.
	c.Upsert(item("a", "Whole Milk"))
	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Whole Milk", all[0].Name)
	assert.Equal(t, "Eggs", all[1].Name)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Upsert(item("a", "Milk"))
	c.Upsert(item("b", "Eggs"))
	c.Upsert(item("c", "Bread"))

	c.Remove("b")
	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Milk", all[0].Name)
	assert.Equal(t, "Bread", all[1].Name)

	// Index stays consistent after the shift.
	got, ok := c.ByID("c")
	require.True(t, ok)
	assert.Equal(t, "Bread", got.Name)

	c.Remove("missing") // no-op
	assert.Equal(t, 2, c.Len())
}

func TestReplaceAll(t *testing.T) {
	c := New()
	c.Upsert(item("a", "Old"))

	c.ReplaceAll([]domain.InventoryItem{item("x", "New1"), item("y", "New2")})

	_, ok := c.ByID("a")
	assert.False(t, ok, "full replace drops items absent from the new set")
	assert.Equal(t, 2, c.Len())
	for _, it := range c.All() {
		_, ok := c.ByID(it.ID)
		assert.True(t, ok)
	}
}

func TestAllReturnsSnapshot(t *testing.T) {
	c := New()
	c.Upsert(item("a", "Milk"))

	snap := c.All()
	snap[0].Name = "mutated"

	got, _ := c.ByID("a")
	assert.Equal(t, "Milk", got.Name)
}

func TestEpochGuard(t *testing.T) {
	c := New()
	epoch := c.Epoch()

	// A load started at this epoch commits fine.
	assert.True(t, c.ReplaceAllAt(epoch, []domain.InventoryItem{item("a", "Milk")}))
	assert.Equal(t, 1, c.Len())

	// A second load that snapshotted the old epoch is stale and discarded.
	assert.False(t, c.ReplaceAllAt(epoch, []domain.InventoryItem{item("z", "Stale")}))
	_, ok := c.ByID("z")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())
}

func TestClearBumpsEpoch(t *testing.T) {
	c := New()
	c.Upsert(item("a", "Milk"))

	epoch := c.Epoch()
	cleared := c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Greater(t, cleared, epoch)
	assert.False(t, c.ReplaceAllAt(epoch, []domain.InventoryItem{item("a", "Milk")}),
		"load started before the clear must not repopulate")

	// A load keyed to the post-clear epoch commits.
	assert.True(t, c.ReplaceAllAt(cleared, []domain.InventoryItem{item("b", "Eggs")}))
}
