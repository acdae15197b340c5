package vision

import (
	"sync"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// HeadlessDisplay отображение без окна: запоминает последний кадр
// и подтверждает захват после AcceptAfter опросов.
type HeadlessDisplay struct {
	AcceptAfter int

	mu    sync.Mutex
	polls int
	shown int
	last  *entity.Frame
}

// NewHeadlessDisplay создаёт отображение, подтверждающее захват на тике acceptAfter.
func NewHeadlessDisplay(acceptAfter int) *HeadlessDisplay {
	if acceptAfter < 1 {
		acceptAfter = 1
	}
	return &HeadlessDisplay{AcceptAfter: acceptAfter}
}

func (d *HeadlessDisplay) Show(frame *entity.Frame) error {
	d.mu.Lock()
	d.last = frame
	d.shown++
	d.mu.Unlock()
	return nil
}

func (d *HeadlessDisplay) PollInput() entity.InputEvent {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.polls++
	if d.polls >= d.AcceptAfter {
		return entity.InputAcquire
	}
	return entity.InputNone
}

// Last последний показанный кадр.
func (d *HeadlessDisplay) Last() *entity.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Shown число показанных кадров.
func (d *HeadlessDisplay) Shown() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shown
}

var _ port.Display = (*HeadlessDisplay)(nil)
