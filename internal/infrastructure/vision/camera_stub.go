//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"podoscope/internal/domain/port"
)

// GoCVCameraOpener заглушка без OpenCV.
type GoCVCameraOpener struct {
	Width  int
	Height int
	FPS    int
}

// NewGoCVCameraOpener создаёт открыватель-заглушку (без OpenCV).
func NewGoCVCameraOpener(width, height, fps int) *GoCVCameraOpener {
	return &GoCVCameraOpener{Width: width, Height: height, FPS: fps}
}

// Open возвращает ошибку, если сборка без тега gocv.
func (o *GoCVCameraOpener) Open(ctx context.Context, id int) (port.Camera, error) {
	_ = ctx
	_ = id
	return nil, errors.New("gocv build tag is not enabled")
}

var _ port.CameraOpener = (*GoCVCameraOpener)(nil)
