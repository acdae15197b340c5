package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"

	"podoscope/config"
	app "podoscope/internal/application"
	"podoscope/internal/container"
	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
	"podoscope/internal/infrastructure/storage"
	"podoscope/internal/infrastructure/vision"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Источник кадров: живые камеры или сохранённые снимки
	var opener port.CameraOpener
	if cfg.LeftImage != "" {
		opener = vision.NewStillCameraOpener(map[int]string{
			cfg.LeftCameraID:  cfg.LeftImage,
			cfg.RightCameraID: cfg.RightImage,
		})
	} else {
		opener = vision.NewGoCVCameraOpener(cfg.CaptureWidth, cfg.CaptureHeight, cfg.CaptureFPS)
	}

	var display port.Display
	if cfg.Headless {
		display = vision.NewHeadlessDisplay(cfg.HeadlessTicks)
	} else {
		window, err := vision.NewGoCVDisplay(vision.PreviewTitle)
		if err != nil {
			log.Fatalf("Failed to open preview window: %v", err)
		}
		defer window.Close()
		display = window
	}

	settings := app.CaptureSettings{
		Left:            cfg.Calibration.Left,
		Right:           cfg.Calibration.Right,
		LeftID:          cfg.LeftCameraID,
		RightID:         cfg.RightCameraID,
		Layout:          cfg.Layout,
		PreviewLongSide: cfg.PreviewLongSide,
		DPI:             cfg.OutputDPI,
		OutputDir:       cfg.OutputDir,
		Extension:       cfg.OutputExt,
	}

	appContainer, err := container.New(opener, display, storage.NewFileImageStore(), cfg.Calibration.TargetRatio, settings)
	if err != nil {
		log.Fatalf("Failed to build services: %v", err)
	}

	if err := appContainer.CaptureService.CheckCameras(ctx); err != nil {
		log.Fatalf("Camera check failed: %v", err)
	}

	result, err := appContainer.CaptureService.Acquire(ctx)
	if err != nil {
		var stageErr *entity.StageError
		if errors.As(err, &stageErr) {
			log.Fatalf("Acquisition aborted at %s stage: %v", stageErr.Stage, err)
		}
		log.Fatalf("Acquisition failed: %v", err)
	}

	if result.Phase != entity.PhaseAccepted {
		log.Println("Cancelled")
		return
	}
	log.Printf("Images acquired and transformed written to %s", cfg.OutputDir)
	log.Printf("  %s\n  %s\n  %s", result.Paths.Left, result.Paths.Right, result.Paths.Composite)
}
