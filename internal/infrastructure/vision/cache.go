package vision

import (
	"fmt"
	"sync"

	"podoscope/internal/domain/entity"
)

// MapCache хранит построенные карты по камере и разрешению.
// Карты только читаются, поэтому их можно делить между тиками и горутинами.
type MapCache struct {
	mu     sync.RWMutex
	tables map[string]*RemapTable
	builds int
}

// NewMapCache создаёт пустой кэш
func NewMapCache() *MapCache {
	return &MapCache{
		tables: make(map[string]*RemapTable),
	}
}

// Undistort возвращает карту устранения дисторсии, строит её при первом обращении.
func (c *MapCache) Undistort(model entity.CameraModel, width, height int) (*RemapTable, error) {
	key := fmt.Sprintf("undistort|%s|%dx%d", model.Fingerprint(), width, height)
	return c.get(key, func() (*RemapTable, error) {
		return BuildUndistortMap(model, width, height)
	})
}

// Warp возвращает карту перспективы для опорного четырёхугольника.
func (c *MapCache) Warp(reference entity.ReferenceQuadrilateral, srcWidth, srcHeight, targetWidth, targetHeight int) (*RemapTable, error) {
	key := fmt.Sprintf("warp|%v|%dx%d|%dx%d", reference, srcWidth, srcHeight, targetWidth, targetHeight)
	return c.get(key, func() (*RemapTable, error) {
		h, err := ComputeHomography(reference, targetWidth, targetHeight)
		if err != nil {
			return nil, err
		}
		return BuildWarpMap(h, srcWidth, srcHeight, targetWidth, targetHeight)
	})
}

// Builds число построенных карт.
func (c *MapCache) Builds() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.builds
}

func (c *MapCache) get(key string, build func() (*RemapTable, error)) (*RemapTable, error) {
	c.mu.RLock()
	table, ok := c.tables[key]
	c.mu.RUnlock()
	if ok {
		return table, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if table, ok := c.tables[key]; ok {
		return table, nil
	}
	table, err := build()
	if err != nil {
		return nil, err
	}
	c.tables[key] = table
	c.builds++
	return table, nil
}
