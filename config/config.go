package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"podoscope/internal/domain/entity"
	"podoscope/internal/infrastructure/storage"
)

type Config struct {
	LeftCameraID    int
	RightCameraID   int
	OutputDir       string
	OutputDPI       int
	OutputExt       string
	Layout          entity.Layout
	PreviewLongSide int
	CaptureWidth    int
	CaptureHeight   int
	CaptureFPS      int
	CalibrationFile string
	LeftImage       string // сырой снимок вместо левой камеры
	RightImage      string // сырой снимок вместо правой камеры
	Headless        bool
	HeadlessTicks   int
	Calibration     Calibration
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		LeftCameraID:    envInt("LEFT_CAMERA_ID", 0, &errs),
		RightCameraID:   envInt("RIGHT_CAMERA_ID", 1, &errs),
		OutputDir:       envString("OUTPUT_DIR", "."),
		OutputDPI:       envInt("OUTPUT_DPI", 148, &errs),
		OutputExt:       strings.ToLower(envString("OUTPUT_EXT", ".jpg")),
		Layout:          entity.Layout(strings.ToLower(envString("LAYOUT", string(entity.LayoutSideBySide)))),
		PreviewLongSide: envInt("PREVIEW_LONG_SIDE", 960, &errs),
		CaptureWidth:    envInt("CAPTURE_WIDTH", 1920, &errs),
		CaptureHeight:   envInt("CAPTURE_HEIGHT", 1080, &errs),
		CaptureFPS:      envInt("CAPTURE_FPS", 5, &errs),
		CalibrationFile: os.Getenv("CALIBRATION_FILE"),
		LeftImage:       os.Getenv("LEFT_IMAGE"),
		RightImage:      os.Getenv("RIGHT_IMAGE"),
		Headless:        envBool("HEADLESS", false, &errs),
		HeadlessTicks:   envInt("HEADLESS_TICKS", 1, &errs),
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if !strings.HasPrefix(cfg.OutputExt, ".") {
		cfg.OutputExt = "." + cfg.OutputExt
	}

	cfg.Calibration = DefaultCalibration()
	if cfg.CalibrationFile != "" {
		cal, err := LoadCalibration(cfg.CalibrationFile)
		if err != nil {
			return nil, err
		}
		cfg.Calibration = cal
	}

	// Общие переключатели поверх калибровки.
	if v := os.Getenv("MIRROR"); v != "" {
		mirror, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("MIRROR: %w", err)
		}
		cfg.Calibration.Left.Model.Mirror = mirror
		cfg.Calibration.Right.Model.Mirror = mirror
	}
	if v := os.Getenv("ROTATE"); v != "" {
		rotate, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("ROTATE: %w", err)
		}
		if !rotate {
			cfg.Calibration.Left.Model.Rotation = entity.RotateNone
			cfg.Calibration.Right.Model.Rotation = entity.RotateNone
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек.
func (c *Config) Validate() error {
	if c.OutputDPI <= 0 {
		return fmt.Errorf("OUTPUT_DPI must be positive, got %d", c.OutputDPI)
	}
	if !storage.SupportedExtension(c.OutputExt) {
		return fmt.Errorf("OUTPUT_EXT %q is not supported", c.OutputExt)
	}
	switch c.Layout {
	case entity.LayoutSideBySide, entity.LayoutStacked:
	default:
		return fmt.Errorf("LAYOUT %q is not supported", c.Layout)
	}
	if c.PreviewLongSide <= 0 {
		return fmt.Errorf("PREVIEW_LONG_SIDE must be positive, got %d", c.PreviewLongSide)
	}
	if c.CaptureWidth <= 0 || c.CaptureHeight <= 0 || c.CaptureFPS <= 0 {
		return errors.New("capture width, height and fps must be positive")
	}
	if c.LeftCameraID == c.RightCameraID {
		return fmt.Errorf("left and right cameras share id %d", c.LeftCameraID)
	}
	if (c.LeftImage == "") != (c.RightImage == "") {
		return errors.New("LEFT_IMAGE and RIGHT_IMAGE must be set together")
	}
	return c.Calibration.Validate()
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int, errs *[]error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

func envBool(key string, def bool, errs *[]error) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}
