package app

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
	"podoscope/internal/infrastructure/vision"
)

var errSessionFinished = errors.New("capture session is finished")

// SessionSettings параметры предпросмотра и результата
type SessionSettings struct {
	Layout          entity.Layout
	PreviewLongSide int
	DPI             int
}

// SessionSide камера одной стороны и её конфигурация
type SessionSide struct {
	Rig    entity.CameraRig
	Camera port.Camera
}

// CaptureSession конечный автомат одного захвата:
// PREVIEWING -> ACCEPTED | CANCELLED, при ошибке ABORTED.
// Сессия единолично владеет камерами до своего завершения.
type CaptureSession struct {
	id       string
	left     SessionSide
	right    SessionSide
	display  port.Display
	pipeline *CorrectionPipeline
	settings SessionSettings
	now      func() time.Time

	phase    entity.SessionPhase
	ticks    int
	rawLeft  *entity.Frame
	rawRight *entity.Frame
	preview  *entity.Frame
	released bool
}

// NewCaptureSession создаёт сессию в состоянии предпросмотра.
func NewCaptureSession(left, right SessionSide, display port.Display, pipeline *CorrectionPipeline, settings SessionSettings) *CaptureSession {
	return &CaptureSession{
		id:       uuid.NewString(),
		left:     left,
		right:    right,
		display:  display,
		pipeline: pipeline,
		settings: settings,
		now:      time.Now,
		phase:    entity.PhasePreviewing,
	}
}

func (s *CaptureSession) ID() string                 { return s.id }
func (s *CaptureSession) Phase() entity.SessionPhase { return s.phase }
func (s *CaptureSession) Ticks() int                 { return s.ticks }

// Preview последний показанный кадр предпросмотра.
func (s *CaptureSession) Preview() *entity.Frame { return s.preview }

// Released сообщает, освобождены ли камеры.
func (s *CaptureSession) Released() bool { return s.released }

// SetClock подменяет часы для метки времени результата.
func (s *CaptureSession) SetClock(now func() time.Time) {
	s.now = now
}

// Tick выполняет один шаг предпросмотра: чтение обеих камер, коррекция,
// показ и один опрос ввода. Отмена контекста проверяется только на границе тика.
func (s *CaptureSession) Tick(ctx context.Context) error {
	if s.phase.Terminal() {
		return errSessionFinished
	}
	if ctx.Err() != nil {
		s.phase = entity.PhaseCancelled
		return nil
	}
	s.ticks++

	// Оба кадра читаются подряд, чтобы между ними было как можно меньше времени.
	rawLeft, err := readFrame(ctx, s.left)
	if err != nil {
		return err
	}
	rawRight, err := readFrame(ctx, s.right)
	if err != nil {
		return err
	}
	s.rawLeft, s.rawRight = rawLeft, rawRight

	left, err := s.pipeline.Correct(s.left.Rig, rawLeft)
	if err != nil {
		return err
	}
	right, err := s.pipeline.Correct(s.right.Rig, rawRight)
	if err != nil {
		return err
	}

	composite, err := vision.Compose(left, right, s.settings.Layout, s.left.Rig.Model.Rotation, s.right.Rig.Model.Rotation)
	if err != nil {
		return &entity.StageError{Stage: StageCompose, Err: err}
	}
	preview, err := vision.ResizeForDisplay(composite, s.settings.PreviewLongSide)
	if err != nil {
		return &entity.StageError{Stage: StageDisplay, Err: err}
	}
	if err := s.display.Show(preview); err != nil {
		return &entity.StageError{Stage: StageDisplay, Err: err}
	}
	s.preview = preview

	switch s.display.PollInput() {
	case entity.InputAcquire:
		s.phase = entity.PhaseAccepted
	case entity.InputCancel:
		s.phase = entity.PhaseCancelled
	}
	return nil
}

// Run крутит предпросмотр до решения оператора. При подтверждении
// последняя сырая пара заново корректируется в полном разрешении.
// Отмена даёт nil без ошибки; камеры освобождаются в любом случае.
func (s *CaptureSession) Run(ctx context.Context) (*entity.OutputArtifact, error) {
	defer s.release()
	log.Printf("session %s: preview started", s.id)

	for s.phase == entity.PhasePreviewing {
		if err := s.Tick(ctx); err != nil {
			s.phase = entity.PhaseAborted
			log.Printf("session %s: aborted on tick %d: %v", s.id, s.ticks, err)
			return nil, err
		}
	}

	if s.phase != entity.PhaseAccepted {
		log.Printf("session %s: cancelled after %d ticks", s.id, s.ticks)
		return nil, nil
	}

	artifact, err := s.finalize()
	if err != nil {
		s.phase = entity.PhaseAborted
		log.Printf("session %s: aborted while finalizing: %v", s.id, err)
		return nil, err
	}
	log.Printf("session %s: accepted after %d ticks", s.id, s.ticks)
	return artifact, nil
}

func (s *CaptureSession) finalize() (*entity.OutputArtifact, error) {
	left, err := s.pipeline.Correct(s.left.Rig, s.rawLeft)
	if err != nil {
		return nil, err
	}
	right, err := s.pipeline.Correct(s.right.Rig, s.rawRight)
	if err != nil {
		return nil, err
	}

	left, err = vision.Rotate(left, s.left.Rig.Model.Rotation)
	if err != nil {
		return nil, &entity.StageError{Stage: StageCompose, Camera: s.left.Rig.Name, Err: err}
	}
	right, err = vision.Rotate(right, s.right.Rig.Model.Rotation)
	if err != nil {
		return nil, &entity.StageError{Stage: StageCompose, Camera: s.right.Rig.Name, Err: err}
	}
	composite, err := vision.Concat(left, right, s.settings.Layout)
	if err != nil {
		return nil, &entity.StageError{Stage: StageCompose, Err: err}
	}

	return &entity.OutputArtifact{
		Left:      left,
		Right:     right,
		Composite: composite,
		DPI:       s.settings.DPI,
		NamingKey: NamingKey(s.now()),
	}, nil
}

// release закрывает обе камеры и сбрасывает кадры. Повторный вызов ничего не делает.
func (s *CaptureSession) release() {
	if s.released {
		return
	}
	s.released = true
	for _, side := range []SessionSide{s.left, s.right} {
		if side.Camera == nil {
			continue
		}
		if err := side.Camera.Close(); err != nil {
			log.Printf("session %s: close %s camera: %v", s.id, side.Rig.Name, err)
		}
	}
	s.rawLeft, s.rawRight = nil, nil
	if s.phase != entity.PhaseAccepted {
		s.preview = nil
	}
}

func readFrame(ctx context.Context, side SessionSide) (*entity.Frame, error) {
	frame, err := side.Camera.ReadFrame(ctx)
	if err == nil && frame == nil {
		err = entity.ErrNoFrame
	}
	if err != nil {
		return nil, &entity.StageError{
			Stage:  StageCapture,
			Camera: side.Rig.Name,
			Err:    &entity.CameraUnavailableError{Camera: side.Rig.Name, Err: err},
		}
	}
	return frame, nil
}
