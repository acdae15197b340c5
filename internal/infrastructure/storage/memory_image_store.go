package storage

import (
	"context"
	"sort"
	"sync"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// StoredImage запись in-memory хранилища
type StoredImage struct {
	Frame *entity.Frame
	DPI   int
}

// MemoryImageStore in-memory хранилище изображений
type MemoryImageStore struct {
	mu     sync.RWMutex
	images map[string]StoredImage
}

// NewMemoryImageStore создаёт новое in-memory хранилище
func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{
		images: make(map[string]StoredImage),
	}
}

// WriteImage сохраняет кадр под путём path
func (s *MemoryImageStore) WriteImage(ctx context.Context, frame *entity.Frame, path string, dpi int) error {
	s.mu.Lock()
	s.images[path] = StoredImage{Frame: frame, DPI: dpi}
	s.mu.Unlock()

	return nil
}

// Remove удаляет запись
func (s *MemoryImageStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	delete(s.images, path)
	s.mu.Unlock()

	return nil
}

// Get возвращает запись по пути
func (s *MemoryImageStore) Get(path string) (StoredImage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	img, ok := s.images[path]
	return img, ok
}

// Paths возвращает отсортированный список путей
func (s *MemoryImageStore) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.images))
	for p := range s.images {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Проверка реализации интерфейса
var _ port.ImageStore = (*MemoryImageStore)(nil)
