package vision

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"podoscope/internal/domain/entity"
)

// BuildUndistortMap строит карту, отменяющую дисторсию объектива.
// Новая матрица камеры совпадает с исходной, поворот единичный.
// Карта зависит только от (model, width, height).
func BuildUndistortMap(model entity.CameraModel, width, height int) (*RemapTable, error) {
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("camera model: %w", err)
	}
	table, err := newRemapTable(width, height, width, height)
	if err != nil {
		return nil, err
	}

	k := model.Intrinsic
	kMat := mat.NewDense(3, 3, []float64{
		k[0][0], k[0][1], k[0][2],
		k[1][0], k[1][1], k[1][2],
		k[2][0], k[2][1], k[2][2],
	})
	var inv mat.Dense
	if err := inv.Inverse(kMat); err != nil {
		return nil, fmt.Errorf("invert intrinsic matrix: %w", err)
	}
	ir := inv.RawMatrix().Data

	fx, fy := k[0][0], k[1][1]
	cx, cy := k[0][2], k[1][2]
	skew := k[0][1]

	distort := pinholeDistortion(model)
	if model.Kind == entity.ModelFisheye {
		distort = fisheyeDistortion(model)
	}

	for v := 0; v < height; v++ {
		// Проекция строки пикселя в нормализованные координаты.
		x0 := ir[1]*float64(v) + ir[2]
		y0 := ir[4]*float64(v) + ir[5]
		w0 := ir[7]*float64(v) + ir[8]
		for u := 0; u < width; u++ {
			fu := float64(u)
			w := w0 + ir[6]*fu
			x := (x0 + ir[0]*fu) / w
			y := (y0 + ir[3]*fu) / w

			xd, yd := distort(x, y)
			table.set(u, v, fx*xd+skew*yd+cx, fy*yd+cy)
		}
	}
	return table, nil
}

// ApplyUndistort применяет карту к кадру той же камеры.
func ApplyUndistort(frame *entity.Frame, table *RemapTable) (*entity.Frame, error) {
	return Remap(frame, table)
}

type distortionFunc func(x, y float64) (float64, float64)

// pinholeDistortion прямая радиально-тангенциальная модель (k1, k2, p1, p2, k3).
func pinholeDistortion(model entity.CameraModel) distortionFunc {
	k1, k2 := model.Coefficient(0), model.Coefficient(1)
	p1, p2 := model.Coefficient(2), model.Coefficient(3)
	k3 := model.Coefficient(4)
	return func(x, y float64) (float64, float64) {
		r2 := x*x + y*y
		radial := 1 + r2*(k1+r2*(k2+r2*k3))
		xd := x*radial + 2*p1*x*y + p2*(r2+2*x*x)
		yd := y*radial + p1*(r2+2*y*y) + 2*p2*x*y
		return xd, yd
	}
}

// fisheyeDistortion эквидистантная модель с полиномом по углу падения.
func fisheyeDistortion(model entity.CameraModel) distortionFunc {
	k1, k2 := model.Coefficient(0), model.Coefficient(1)
	k3, k4 := model.Coefficient(2), model.Coefficient(3)
	return func(x, y float64) (float64, float64) {
		r := math.Sqrt(x*x + y*y)
		if r == 0 {
			return x, y
		}
		theta := math.Atan(r)
		t2 := theta * theta
		thetaD := theta * (1 + t2*(k1+t2*(k2+t2*(k3+t2*k4))))
		scale := thetaD / r
		return x * scale, y * scale
	}
}
