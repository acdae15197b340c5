//go:build !gocv
// +build !gocv

package vision

import (
	"errors"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// PreviewTitle заголовок окна предпросмотра.
const PreviewTitle = "Podoscope Preview - Spacebar to acquire or Esc to cancel"

// GoCVDisplay заглушка окна без OpenCV.
type GoCVDisplay struct{}

// NewGoCVDisplay возвращает ошибку, если сборка без тега gocv.
func NewGoCVDisplay(title string) (*GoCVDisplay, error) {
	_ = title
	return nil, errors.New("gocv build tag is not enabled")
}

// Show возвращает ошибку, если сборка без тега gocv.
func (d *GoCVDisplay) Show(frame *entity.Frame) error {
	_ = frame
	return errors.New("gocv build tag is not enabled")
}

// PollInput всегда отменяет сессию.
func (d *GoCVDisplay) PollInput() entity.InputEvent {
	return entity.InputCancel
}

// Close ничего не делает.
func (d *GoCVDisplay) Close() error {
	return nil
}

var _ port.Display = (*GoCVDisplay)(nil)
