package vision

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// StillCameraOpener подменяет камеры сохранёнными сырыми снимками.
// Каждое устройство отдаёт один и тот же кадр на каждом тике.
type StillCameraOpener struct {
	paths map[int]string
}

// NewStillCameraOpener сопоставляет идентификаторам устройств пути к файлам.
func NewStillCameraOpener(paths map[int]string) *StillCameraOpener {
	copied := make(map[int]string, len(paths))
	for id, p := range paths {
		copied[id] = p
	}
	return &StillCameraOpener{paths: copied}
}

// Open декодирует файл, привязанный к id.
func (o *StillCameraOpener) Open(ctx context.Context, id int) (port.Camera, error) {
	_ = ctx
	path, ok := o.paths[id]
	if !ok {
		return nil, fmt.Errorf("no image configured for camera %d", id)
	}
	frame, err := LoadFrame(path)
	if err != nil {
		return nil, err
	}
	return &stillCamera{frame: frame}, nil
}

// LoadFrame читает изображение JPEG, PNG, TIFF или WebP.
func LoadFrame(path string) (*entity.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return entity.FrameFromImage(img)
}

type stillCamera struct {
	mu     sync.Mutex
	frame  *entity.Frame
	closed bool
}

func (c *stillCamera) ReadFrame(ctx context.Context) (*entity.Frame, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, entity.ErrNoFrame
	}
	return c.frame, nil
}

func (c *stillCamera) Close() error {
	c.mu.Lock()
	c.closed = true
	c.frame = nil
	c.mu.Unlock()
	return nil
}

var _ port.CameraOpener = (*StillCameraOpener)(nil)
