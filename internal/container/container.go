package container

import (
	app "podoscope/internal/application"
	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
	"podoscope/internal/infrastructure/vision"
)

type Container struct {
	Maps           *vision.MapCache
	Pipeline       *app.CorrectionPipeline
	CaptureService *app.CaptureService
}

func New(opener port.CameraOpener, display port.Display, store port.ImageStore, ratio entity.TargetRatio, settings app.CaptureSettings) (*Container, error) {
	maps := vision.NewMapCache()
	pipeline, err := app.NewCorrectionPipeline(maps, ratio)
	if err != nil {
		return nil, err
	}
	captureService := app.NewCaptureService(opener, display, store, pipeline, settings)

	return &Container{
		Maps:           maps,
		Pipeline:       pipeline,
		CaptureService: captureService,
	}, nil
}
