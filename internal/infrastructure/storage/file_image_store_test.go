package storage

import (
	"context"
	"encoding/binary"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"podoscope/internal/domain/entity"
)

func testFrame(t *testing.T) *entity.Frame {
	t.Helper()
	f, err := entity.NewBlankFrame(16, 8, 3)
	require.NoError(t, err)
	return f
}

func TestFileImageStore_WriteJPEGWithDPI(t *testing.T) {
	store := NewFileImageStore()
	path := filepath.Join(t.TempDir(), "out", "2024-01-02-030405_G.jpg")

	require.NoError(t, store.WriteImage(context.Background(), testFrame(t), path, 148))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, uint16(148), binary.BigEndian.Uint16(data[14:16]))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestFileImageStore_WritePNG(t *testing.T) {
	store := NewFileImageStore()
	path := filepath.Join(t.TempDir(), "composite.png")
	require.NoError(t, store.WriteImage(context.Background(), testFrame(t), path, 300))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
}

func TestFileImageStore_UnsupportedExtension(t *testing.T) {
	store := NewFileImageStore()
	path := filepath.Join(t.TempDir(), "out.bmp")

	require.Error(t, store.WriteImage(context.Background(), testFrame(t), path, 148))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestFileImageStore_Remove(t *testing.T) {
	store := NewFileImageStore()
	path := filepath.Join(t.TempDir(), "x.jpg")
	require.NoError(t, store.WriteImage(context.Background(), testFrame(t), path, 148))

	require.NoError(t, store.Remove(context.Background(), path))
	require.NoError(t, store.Remove(context.Background(), path))
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}

func TestSupportedExtension(t *testing.T) {
	require.True(t, SupportedExtension(".JPG"))
	require.True(t, SupportedExtension(".png"))
	require.False(t, SupportedExtension(".tif"))
}
