package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// CaptureSettings конфигурация установки из двух камер
type CaptureSettings struct {
	Left            entity.CameraRig
	Right           entity.CameraRig
	LeftID          int
	RightID         int
	Layout          entity.Layout
	PreviewLongSide int
	DPI             int
	OutputDir       string
	Extension       string
}

// CaptureResult итог одного запуска захвата
type CaptureResult struct {
	SessionID string
	Phase     entity.SessionPhase
	Artifact  *entity.OutputArtifact
	Paths     *ArtifactPaths
}

type CaptureService struct {
	opener   port.CameraOpener
	display  port.Display
	store    port.ImageStore
	pipeline *CorrectionPipeline
	settings CaptureSettings
	now      func() time.Time
}

// NewCaptureService создаёт сервис, который управляет захватом и записью результата.
func NewCaptureService(opener port.CameraOpener, display port.Display, store port.ImageStore, pipeline *CorrectionPipeline, settings CaptureSettings) *CaptureService {
	return &CaptureService{
		opener:   opener,
		display:  display,
		store:    store,
		pipeline: pipeline,
		settings: settings,
		now:      time.Now,
	}
}

// SetClock подменяет часы, от которых зависят имена файлов.
func (s *CaptureService) SetClock(now func() time.Time) {
	s.now = now
}

// CheckCameras открывает и сразу закрывает обе камеры. Проверяются обе,
// ошибка перечисляет все недоступные стороны.
func (s *CaptureService) CheckCameras(ctx context.Context) error {
	var errs []error
	for _, side := range []struct {
		rig entity.CameraRig
		id  int
	}{{s.settings.Left, s.settings.LeftID}, {s.settings.Right, s.settings.RightID}} {
		cam, err := s.opener.Open(ctx, side.id)
		if err != nil {
			log.Printf("No input from %s camera, check camera ID %d: %v", side.rig.Name, side.id, err)
			errs = append(errs, &entity.CameraUnavailableError{Camera: side.rig.Name, Err: err})
			continue
		}
		if err := cam.Close(); err != nil {
			log.Printf("close %s camera after probe: %v", side.rig.Name, err)
		}
	}
	return errors.Join(errs...)
}

// Acquire открывает камеры, проводит сессию и записывает результат,
// если оператор его подтвердил.
func (s *CaptureService) Acquire(ctx context.Context) (*CaptureResult, error) {
	if s.pipeline == nil {
		return nil, errors.New("correction pipeline is not configured")
	}
	if s.display == nil {
		return nil, errors.New("display is not configured")
	}

	left, err := s.open(ctx, s.settings.Left, s.settings.LeftID)
	if err != nil {
		return nil, err
	}
	right, err := s.open(ctx, s.settings.Right, s.settings.RightID)
	if err != nil {
		if cerr := left.Camera.Close(); cerr != nil {
			log.Printf("close %s camera: %v", s.settings.Left.Name, cerr)
		}
		return nil, err
	}

	session := NewCaptureSession(left, right, s.display, s.pipeline, SessionSettings{
		Layout:          s.settings.Layout,
		PreviewLongSide: s.settings.PreviewLongSide,
		DPI:             s.settings.DPI,
	})
	session.SetClock(s.now)

	artifact, err := session.Run(ctx)
	if err != nil {
		return nil, err
	}
	result := &CaptureResult{SessionID: session.ID(), Phase: session.Phase(), Artifact: artifact}
	if artifact == nil {
		return result, nil
	}

	paths, err := s.SaveArtifact(ctx, artifact)
	if err != nil {
		return nil, err
	}
	result.Paths = paths
	log.Printf("session %s: images written to %s", session.ID(), s.settings.OutputDir)
	return result, nil
}

// SaveArtifact пишет левый, правый и составной кадры. Если одна из записей
// не удалась, уже записанные файлы удаляются.
func (s *CaptureService) SaveArtifact(ctx context.Context, artifact *entity.OutputArtifact) (*ArtifactPaths, error) {
	if s.store == nil {
		return nil, errors.New("image store is not configured")
	}
	paths := BuildArtifactPaths(s.settings.OutputDir, artifact.NamingKey, s.settings.Extension)

	items := []struct {
		frame *entity.Frame
		path  string
	}{
		{artifact.Left, paths.Left},
		{artifact.Right, paths.Right},
		{artifact.Composite, paths.Composite},
	}

	written := make([]string, 0, len(items))
	for _, item := range items {
		if err := s.store.WriteImage(ctx, item.frame, item.path, artifact.DPI); err != nil {
			for _, p := range written {
				if rerr := s.store.Remove(ctx, p); rerr != nil {
					log.Printf("remove partial output %s: %v", p, rerr)
				}
			}
			return nil, &entity.StageError{Stage: StageStore, Err: fmt.Errorf("write %s: %w", item.path, err)}
		}
		written = append(written, item.path)
	}
	return &paths, nil
}

func (s *CaptureService) open(ctx context.Context, rig entity.CameraRig, id int) (SessionSide, error) {
	cam, err := s.opener.Open(ctx, id)
	if err != nil {
		return SessionSide{}, &entity.StageError{
			Stage:  StageCapture,
			Camera: rig.Name,
			Err:    &entity.CameraUnavailableError{Camera: rig.Name, Err: err},
		}
	}
	return SessionSide{Rig: rig, Camera: cam}, nil
}
