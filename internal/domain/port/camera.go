package port

import (
	"context"

	"podoscope/internal/domain/entity"
)

// CameraOpener открывает камеру по идентификатору устройства
type CameraOpener interface {
	// Open захватывает камеру; хэндл принадлежит вызывающему до Close
	Open(ctx context.Context, id int) (Camera, error)
}

// Camera интерфейс открытой камеры
type Camera interface {
	// ReadFrame возвращает очередной кадр или entity.ErrNoFrame
	ReadFrame(ctx context.Context) (*entity.Frame, error)

	// Close освобождает устройство
	Close() error
}
