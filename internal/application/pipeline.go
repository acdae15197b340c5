package app

import (
	"errors"

	"podoscope/internal/domain/entity"
	"podoscope/internal/infrastructure/vision"
)

// Стадии конвейера коррекции, попадают в entity.StageError.
const (
	StageCapture   = "capture"
	StageMirror    = "mirror"
	StageUndistort = "undistort"
	StageRectify   = "rectify"
	StageCompose   = "compose"
	StageDisplay   = "display"
	StageStore     = "store"
)

// CorrectionPipeline устраняет дисторсию и выпрямляет перспективу кадра
// одной камеры. Карты берутся из общего кэша.
type CorrectionPipeline struct {
	maps      *vision.MapCache
	rectifier *vision.Rectifier
}

// NewCorrectionPipeline создаёт конвейер для заданного отношения сторон.
func NewCorrectionPipeline(maps *vision.MapCache, ratio entity.TargetRatio) (*CorrectionPipeline, error) {
	if maps == nil {
		return nil, errors.New("map cache is not configured")
	}
	rectifier, err := vision.NewRectifier(ratio)
	if err != nil {
		return nil, err
	}
	return &CorrectionPipeline{maps: maps, rectifier: rectifier}, nil
}

// Ratio отношение сторон выходного кадра.
func (p *CorrectionPipeline) Ratio() entity.TargetRatio {
	return p.rectifier.Ratio
}

// Correct прогоняет сырой кадр через отражение, устранение дисторсии
// и выпрямление перспективы. Холст выпрямления равен размеру кадра.
func (p *CorrectionPipeline) Correct(rig entity.CameraRig, raw *entity.Frame) (*entity.Frame, error) {
	if raw == nil {
		return nil, &entity.StageError{Stage: StageCapture, Camera: rig.Name, Err: entity.ErrNoFrame}
	}

	frame := raw
	if rig.Model.Mirror {
		mirrored, err := vision.Mirror(frame)
		if err != nil {
			return nil, &entity.StageError{Stage: StageMirror, Camera: rig.Name, Err: err}
		}
		frame = mirrored
	}

	w, h := frame.Width(), frame.Height()
	table, err := p.maps.Undistort(rig.Model, w, h)
	if err != nil {
		return nil, &entity.StageError{Stage: StageUndistort, Camera: rig.Name, Err: err}
	}
	undistorted, err := vision.ApplyUndistort(frame, table)
	if err != nil {
		return nil, &entity.StageError{Stage: StageUndistort, Camera: rig.Name, Err: err}
	}

	warp, err := p.maps.Warp(rig.Reference, w, h, w, h)
	if err != nil {
		return nil, &entity.StageError{Stage: StageRectify, Camera: rig.Name, Err: err}
	}
	rectified, err := p.rectifier.RectifyWith(undistorted, warp)
	if err != nil {
		return nil, &entity.StageError{Stage: StageRectify, Camera: rig.Name, Err: err}
	}
	return rectified, nil
}
