package entity

import (
	"errors"
	"fmt"
	"math"
)

// ModelKind модель дисторсии объектива
type ModelKind string

const (
	ModelPinhole ModelKind = "pinhole" // радиально-тангенциальная модель (k1, k2, p1, p2[, k3])
	ModelFisheye ModelKind = "fisheye" // эквидистантная модель (k1..k4)
)

// Rotation поворот кадра на 90°
type Rotation string

const (
	RotateNone  Rotation = "none"
	RotateCW90  Rotation = "cw90"
	RotateCCW90 Rotation = "ccw90"
)

// CameraModel описывает одну физическую камеру. Задаётся при конфигурации
// и не меняется в течение сессии.
type CameraModel struct {
	Intrinsic  [3][3]float64 // матрица K
	Distortion []float64     // коэффициенты дисторсии, 4 или 5 значений
	Kind       ModelKind     // модель дисторсии
	Mirror     bool          // отражать кадр по горизонтали сразу после захвата
	Rotation   Rotation      // поворот при компоновке и записи
}

// Validate проверяет, что модель пригодна для построения карты.
func (m CameraModel) Validate() error {
	k := m.Intrinsic
	for _, row := range k {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return errors.New("intrinsic matrix contains non-finite values")
			}
		}
	}
	if k[0][0] == 0 || k[1][1] == 0 {
		return errors.New("intrinsic matrix has zero focal length")
	}
	if k[1][0] != 0 || k[2][0] != 0 || k[2][1] != 0 || k[2][2] != 1 {
		return errors.New("intrinsic matrix must be upper triangular with K[2][2] = 1")
	}

	switch m.Kind {
	case ModelPinhole:
		if len(m.Distortion) != 4 && len(m.Distortion) != 5 {
			return fmt.Errorf("pinhole model expects 4 or 5 distortion coefficients, got %d", len(m.Distortion))
		}
	case ModelFisheye:
		if len(m.Distortion) != 4 {
			return fmt.Errorf("fisheye model expects 4 distortion coefficients, got %d", len(m.Distortion))
		}
	default:
		return fmt.Errorf("unknown camera model %q", m.Kind)
	}
	for _, d := range m.Distortion {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return errors.New("distortion coefficients contain non-finite values")
		}
	}

	switch m.Rotation {
	case RotateNone, RotateCW90, RotateCCW90, "":
	default:
		return fmt.Errorf("unknown rotation %q", m.Rotation)
	}
	return nil
}

// Coefficient возвращает i-й коэффициент или 0, если он не задан.
func (m CameraModel) Coefficient(i int) float64 {
	if i < 0 || i >= len(m.Distortion) {
		return 0
	}
	return m.Distortion[i]
}

// Fingerprint однозначный ключ модели для кэширования карт.
func (m CameraModel) Fingerprint() string {
	return fmt.Sprintf("%s|%v|%v", m.Kind, m.Intrinsic, m.Distortion)
}

// CameraRig конфигурация одной стороны установки: модель камеры
// и опорный четырёхугольник в координатах неискажённого кадра.
type CameraRig struct {
	Name      string
	Model     CameraModel
	Reference ReferenceQuadrilateral
}
