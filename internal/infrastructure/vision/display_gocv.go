//go:build gocv
// +build gocv

package vision

import (
	"fmt"

	"gocv.io/x/gocv"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// Коды клавиш окна предпросмотра.
const (
	keyEscape = 27
	keySpace  = 32
)

// PreviewTitle заголовок окна предпросмотра.
const PreviewTitle = "Podoscope Preview - Spacebar to acquire or Esc to cancel"

// GoCVDisplay окно OpenCV для предпросмотра.
type GoCVDisplay struct {
	window *gocv.Window
}

// NewGoCVDisplay открывает окно с заголовком title.
func NewGoCVDisplay(title string) (*GoCVDisplay, error) {
	return &GoCVDisplay{window: gocv.NewWindow(title)}, nil
}

// Show выводит кадр в окно.
func (d *GoCVDisplay) Show(frame *entity.Frame) error {
	mat, err := gocv.ImageToMatRGB(frame.ToImage())
	if err != nil {
		return fmt.Errorf("convert preview: %w", err)
	}
	defer mat.Close()

	d.window.IMShow(mat)
	return nil
}

// PollInput ждёт клавишу не дольше 1 мс. Закрытое окно означает отмену.
func (d *GoCVDisplay) PollInput() entity.InputEvent {
	key := d.window.WaitKey(1)
	if !d.window.IsOpen() {
		return entity.InputCancel
	}
	if key < 0 {
		return entity.InputNone
	}
	switch key % 256 {
	case keyEscape:
		return entity.InputCancel
	case keySpace:
		return entity.InputAcquire
	}
	return entity.InputNone
}

// Close закрывает окно.
func (d *GoCVDisplay) Close() error {
	return d.window.Close()
}

var _ port.Display = (*GoCVDisplay)(nil)
