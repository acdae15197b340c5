package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"podoscope/internal/domain/entity"
)

// Calibration калибровка обеих камер и физическое отношение сторон.
type Calibration struct {
	Left        entity.CameraRig
	Right       entity.CameraRig
	TargetRatio entity.TargetRatio
}

type cameraFile struct {
	Intrinsic  [3][3]float64 `json:"intrinsic"`
	Distortion []float64     `json:"distortion"`
	Model      string        `json:"model"`
	Mirror     bool          `json:"mirror"`
	Rotation   string        `json:"rotation"`
	Reference  [4][2]float64 `json:"reference"`
}

type ratioFile struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type calibrationFile struct {
	Left        *cameraFile `json:"left"`
	Right       *cameraFile `json:"right"`
	TargetRatio *ratioFile  `json:"target_ratio,omitempty"`
}

// Опорные точки общие для обеих камер в исходной установке.
var defaultReference = entity.ReferenceQuadrilateral{
	{X: 290, Y: 341}, {X: 1562, Y: 317}, {X: 72, Y: 943}, {X: 1834, Y: 907},
}

// DefaultCalibration калибровка установки с двумя fisheye-камерами 1920x1080.
func DefaultCalibration() Calibration {
	return Calibration{
		Left: entity.CameraRig{
			Name: "left",
			Model: entity.CameraModel{
				Intrinsic: [3][3]float64{
					{805.6337330782276, 0, 956.9882395246467},
					{0, 816.8205144586113, 518.6594662094939},
					{0, 0, 1},
				},
				Distortion: []float64{-0.06934545703899442, 0.2681174500565983, -0.7915276083705534, 0.7514919779408756},
				Kind:       entity.ModelFisheye,
				Rotation:   entity.RotateCW90,
			},
			Reference: defaultReference,
		},
		Right: entity.CameraRig{
			Name: "right",
			Model: entity.CameraModel{
				Intrinsic: [3][3]float64{
					{728.6058065554909, 0, 944.7599470057236},
					{0, 717.4035218893431, 512.8725335118967},
					{0, 0, 1},
				},
				Distortion: []float64{-0.008902607891725171, 0.09267206754490831, -0.15736471202694802, 0.08299570424850797},
				Kind:       entity.ModelFisheye,
				Rotation:   entity.RotateCCW90,
			},
			Reference: defaultReference,
		},
		TargetRatio: entity.DefaultTargetRatio,
	}
}

// LoadCalibration читает калибровку из JSON. Отсутствующие стороны
// и отношение сторон берутся из DefaultCalibration.
func LoadCalibration(path string) (Calibration, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Calibration{}, fmt.Errorf("calibration file must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Calibration{}, fmt.Errorf("read calibration file: %w", err)
	}
	return ParseCalibration(data)
}

// ParseCalibration разбирает JSON-документ калибровки.
func ParseCalibration(data []byte) (Calibration, error) {
	var file calibrationFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Calibration{}, fmt.Errorf("parse calibration: %w", err)
	}

	cal := DefaultCalibration()
	if file.Left != nil {
		cal.Left = file.Left.rig("left")
	}
	if file.Right != nil {
		cal.Right = file.Right.rig("right")
	}
	if file.TargetRatio != nil {
		cal.TargetRatio = entity.TargetRatio{Width: file.TargetRatio.Width, Height: file.TargetRatio.Height}
	}
	if err := cal.Validate(); err != nil {
		return Calibration{}, err
	}
	return cal, nil
}

// Validate проверяет модели камер и отношение сторон.
func (c Calibration) Validate() error {
	if err := c.Left.Model.Validate(); err != nil {
		return fmt.Errorf("left camera: %w", err)
	}
	if err := c.Right.Model.Validate(); err != nil {
		return fmt.Errorf("right camera: %w", err)
	}
	return c.TargetRatio.Validate()
}

func (f *cameraFile) rig(name string) entity.CameraRig {
	rotation := entity.Rotation(f.Rotation)
	if rotation == "" {
		rotation = entity.RotateNone
	}
	kind := entity.ModelKind(f.Model)
	if kind == "" {
		kind = entity.ModelFisheye
	}

	var ref entity.ReferenceQuadrilateral
	for i, p := range f.Reference {
		ref[i] = entity.Point{X: p[0], Y: p[1]}
	}
	return entity.CameraRig{
		Name: name,
		Model: entity.CameraModel{
			Intrinsic:  f.Intrinsic,
			Distortion: append([]float64(nil), f.Distortion...),
			Kind:       kind,
			Mirror:     f.Mirror,
			Rotation:   rotation,
		},
		Reference: ref,
	}
}
