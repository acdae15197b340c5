//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// GoCVCameraOpener открывает USB-камеры через OpenCV.
type GoCVCameraOpener struct {
	Width  int
	Height int
	FPS    int
}

// NewGoCVCameraOpener создаёт открыватель с параметрами захвата.
func NewGoCVCameraOpener(width, height, fps int) *GoCVCameraOpener {
	return &GoCVCameraOpener{Width: width, Height: height, FPS: fps}
}

// Open открывает устройство и выставляет разрешение и частоту кадров.
func (o *GoCVCameraOpener) Open(ctx context.Context, id int) (port.Camera, error) {
	_ = ctx
	capture, err := gocv.VideoCaptureDevice(id)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", id, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open camera %d: device is not opened", id)
	}

	if o.Width > 0 && o.Height > 0 {
		capture.Set(gocv.VideoCaptureFrameWidth, float64(o.Width))
		capture.Set(gocv.VideoCaptureFrameHeight, float64(o.Height))
	}
	if o.FPS > 0 {
		capture.Set(gocv.VideoCaptureFPS, float64(o.FPS))
	}

	return &gocvCamera{capture: capture, mat: gocv.NewMat()}, nil
}

type gocvCamera struct {
	mu      sync.Mutex
	capture *gocv.VideoCapture
	mat     gocv.Mat
	closed  bool
}

// ReadFrame читает кадр; пустой кадр считается его отсутствием.
func (c *gocvCamera) ReadFrame(ctx context.Context) (*entity.Frame, error) {
	_ = ctx
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, entity.ErrNoFrame
	}
	if ok := c.capture.Read(&c.mat); !ok || c.mat.Empty() {
		return nil, entity.ErrNoFrame
	}

	// ToImage сам переводит BGR в RGB.
	img, err := c.mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("convert frame: %w", err)
	}
	return entity.FrameFromImage(img)
}

// Close освобождает устройство, повторный вызов ничего не делает.
func (c *gocvCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	matErr := c.mat.Close()
	capErr := c.capture.Close()
	return errors.Join(matErr, capErr)
}

var _ port.CameraOpener = (*GoCVCameraOpener)(nil)
