package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryImageStore_WriteAndRemove(t *testing.T) {
	store := NewMemoryImageStore()
	ctx := context.Background()
	frame := testFrame(t)

	require.NoError(t, store.WriteImage(ctx, frame, "b.jpg", 148))
	require.NoError(t, store.WriteImage(ctx, frame, "a.jpg", 148))
	require.Equal(t, []string{"a.jpg", "b.jpg"}, store.Paths())

	img, ok := store.Get("a.jpg")
	require.True(t, ok)
	require.Equal(t, 148, img.DPI)
	require.Same(t, frame, img.Frame)

	require.NoError(t, store.Remove(ctx, "a.jpg"))
	_, ok = store.Get("a.jpg")
	require.False(t, ok)
}
