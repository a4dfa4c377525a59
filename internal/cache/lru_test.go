package cache

import (
	"context"
	"fmt"
	"testing"

	"codgate/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func match(name string) *model.CustomerMatch {
	return &model.CustomerMatch{Name: name}
}

func TestLRUCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(2)

	c.Set(ctx, "shop|9876543210", match("Asha"))

	got, found := c.Get(ctx, "shop|9876543210")
	require.True(t, found)
	assert.Equal(t, "Asha", got.Name)

	_, found = c.Get(ctx, "shop|0000000000")
	assert.False(t, found)
}

func TestLRUCache_UpdateExistingKey(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(2)

	c.Set(ctx, "k", match("old"))
	c.Set(ctx, "k", match("new"))

	got, found := c.Get(ctx, "k")
	require.True(t, found)
	assert.Equal(t, "new", got.Name)
}

func TestLRUCache_EvictsOldest(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(2)

	c.Set(ctx, "a", match("a"))
	c.Set(ctx, "b", match("b"))
	// Touch "a" so "b" becomes the eviction candidate.
	_, _ = c.Get(ctx, "a")
	c.Set(ctx, "c", match("c"))

	_, found := c.Get(ctx, "b")
	assert.False(t, found)
	_, found = c.Get(ctx, "a")
	assert.True(t, found)
	_, found = c.Get(ctx, "c")
	assert.True(t, found)
}

func TestLRUCache_Invalidate(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(2)

	c.Set(ctx, "k", match("Asha"))
	c.Invalidate(ctx, "k")

	_, found := c.Get(ctx, "k")
	assert.False(t, found)

	// Invalidating an absent key is a no-op.
	c.Invalidate(ctx, "missing")
}

func TestLRUCache_ZeroCapacity(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(0)

	c.Set(ctx, "k", match("Asha"))

	_, found := c.Get(ctx, "k")
	assert.False(t, found)
}

func TestLRUCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewLRUCache(8)

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%16)
				c.Set(ctx, key, match(key))
				c.Get(ctx, key)
			}
		}(i)
	}
	for i := 0; i < 4; i++ {
		<-done
	}
}
