package port

import (
	"context"

	"podoscope/internal/domain/entity"
)

// ImageStore интерфейс хранилища итоговых изображений
type ImageStore interface {
	// WriteImage записывает кадр с метаданными плотности печати
	WriteImage(ctx context.Context, frame *entity.Frame, path string, dpi int) error

	// Remove удаляет ранее записанное изображение; отсутствие файла не ошибка
	Remove(ctx context.Context, path string) error
}
