package app

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
	"podoscope/internal/infrastructure/vision"
)

const (
	testWidth  = 64
	testHeight = 32
)

// fakeCamera отдаёт один и тот же кадр, начиная с failAt-го чтения возвращает ErrNoFrame.
type fakeCamera struct {
	frame  *entity.Frame
	failAt int
	reads  int
	closed int
}

func (c *fakeCamera) ReadFrame(ctx context.Context) (*entity.Frame, error) {
	c.reads++
	if c.failAt > 0 && c.reads >= c.failAt {
		return nil, entity.ErrNoFrame
	}
	return c.frame, nil
}

func (c *fakeCamera) Close() error {
	c.closed++
	return nil
}

type fakeOpener struct {
	cameras map[int]*fakeCamera
	fail    map[int]error
	opened  []int
}

func (o *fakeOpener) Open(ctx context.Context, id int) (port.Camera, error) {
	if err := o.fail[id]; err != nil {
		return nil, err
	}
	cam, ok := o.cameras[id]
	if !ok {
		return nil, errors.New("no such device")
	}
	o.opened = append(o.opened, id)
	return cam, nil
}

// scriptedDisplay возвращает события по порядку, дальше InputNone.
type scriptedDisplay struct {
	events []entity.InputEvent
	polls  int
	shown  []*entity.Frame
}

func (d *scriptedDisplay) Show(frame *entity.Frame) error {
	d.shown = append(d.shown, frame)
	return nil
}

func (d *scriptedDisplay) PollInput() entity.InputEvent {
	defer func() { d.polls++ }()
	if d.polls < len(d.events) {
		return d.events[d.polls]
	}
	return entity.InputNone
}

// failingStore падает на записи с номером failOn (с единицы).
type failingStore struct {
	mu      sync.Mutex
	failOn  int
	writes  int
	files   map[string]bool
	removed []string
}

func (s *failingStore) WriteImage(ctx context.Context, frame *entity.Frame, path string, dpi int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.writes == s.failOn {
		return errors.New("disk full")
	}
	if s.files == nil {
		s.files = make(map[string]bool)
	}
	s.files[path] = true
	return nil
}

func (s *failingStore) Remove(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, path)
	s.removed = append(s.removed, path)
	return nil
}

func testRig(name string, rotation entity.Rotation) entity.CameraRig {
	return entity.CameraRig{
		Name: name,
		Model: entity.CameraModel{
			Intrinsic: [3][3]float64{
				{100, 0, testWidth / 2},
				{0, 100, testHeight / 2},
				{0, 0, 1},
			},
			Distortion: []float64{0, 0, 0, 0},
			Kind:       entity.ModelPinhole,
			Rotation:   rotation,
		},
		Reference: entity.FullFrameReference(testWidth, testHeight),
	}
}

func testFrame(t *testing.T, seed int64) *entity.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pix := make([]uint8, testWidth*testHeight*3)
	rng.Read(pix)
	f, err := entity.NewFrame(testWidth, testHeight, 3, pix)
	require.NoError(t, err)
	return f
}

func testPipeline(t *testing.T) *CorrectionPipeline {
	t.Helper()
	p, err := NewCorrectionPipeline(vision.NewMapCache(), entity.DefaultTargetRatio)
	require.NoError(t, err)
	return p
}

func fixedClock() time.Time {
	return time.Date(2024, 3, 15, 9, 5, 7, 0, time.Local)
}
