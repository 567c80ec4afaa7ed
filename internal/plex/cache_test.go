package plex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataCache_SetGet(t *testing.T) {
	c := NewMetadataCache(time.Minute)
	item := &MediaItem{RatingKey: "101", Title: "Pilot"}

	assert.Nil(t, c.Get("101"))

	c.Set("101", item)
	got := c.Get("101")
	require.NotNil(t, got)
	assert.Equal(t, "Pilot", got.Title)
}

func TestMetadataCache_Expiry(t *testing.T) {
	c := NewMetadataCache(10 * time.Millisecond)
	c.Set("101", &MediaItem{RatingKey: "101"})

	require.NotNil(t, c.Get("101"))
	time.Sleep(20 * time.Millisecond)
	assert.Nil(t, c.Get("101"))
}

func TestMetadataCache_Invalidate(t *testing.T) {
	c := NewMetadataCache(time.Minute)
	c.Set("101", &MediaItem{RatingKey: "101"})

	c.Invalidate("101")
	assert.Nil(t, c.Get("101"))

	// Invalidating an absent key is a no-op.
	c.Invalidate("999")
}
