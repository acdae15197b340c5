package vision

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"podoscope/internal/domain/entity"
)

// collinearTolerance минимальная доля площади треугольника
// относительно квадрата размаха точек.
const collinearTolerance = 1e-6

// Homography проективное преобразование 3x3, хранится построчно.
type Homography [9]float64

// IdentityHomography тождественное преобразование.
func IdentityHomography() Homography {
	return Homography{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// TargetCorners углы прямоугольника width×height в порядке опорных точек.
func TargetCorners(width, height int) [4]entity.Point {
	return entity.FullFrameReference(width, height)
}

// ComputeHomography находит преобразование, переводящее i-ю опорную точку
// в i-й угол прямоугольника targetWidth×targetHeight. Порядок точек важен:
// перестановка даёт отражённый или повёрнутый результат.
func ComputeHomography(reference entity.ReferenceQuadrilateral, targetWidth, targetHeight int) (Homography, error) {
	if targetWidth <= 0 || targetHeight <= 0 {
		return Homography{}, &entity.InvalidReferenceGeometryError{
			Reason: fmt.Sprintf("target rectangle %dx%d is empty", targetWidth, targetHeight),
		}
	}
	if err := checkReference(reference); err != nil {
		return Homography{}, err
	}

	target := TargetCorners(targetWidth, targetHeight)

	// Система 8x8 для h00..h21 при h22 = 1.
	a := mat.NewDense(8, 8, nil)
	b := mat.NewVecDense(8, nil)
	for i := 0; i < 4; i++ {
		X, Y := reference[i].X, reference[i].Y
		x, y := target[i].X, target[i].Y
		r := 2 * i

		a.SetRow(r, []float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x})
		b.SetVec(r, x)

		a.SetRow(r+1, []float64{0, 0, 0, X, Y, 1, -X * y, -Y * y})
		b.SetVec(r+1, y)
	}

	var h mat.VecDense
	if err := h.SolveVec(a, b); err != nil {
		return Homography{}, &entity.InvalidReferenceGeometryError{Reason: "homography system is singular: " + err.Error()}
	}

	var out Homography
	for i := 0; i < 8; i++ {
		out[i] = h.AtVec(i)
	}
	out[8] = 1
	for _, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Homography{}, &entity.InvalidReferenceGeometryError{Reason: "homography is not finite"}
		}
	}
	return out, nil
}

// checkReference отбрасывает нечисловые точки и тройки на одной прямой.
func checkReference(ref entity.ReferenceQuadrilateral) error {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range ref {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return &entity.InvalidReferenceGeometryError{Reason: fmt.Sprintf("point %d is not finite", i)}
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	extent := math.Max(maxX-minX, maxY-minY)
	if extent == 0 {
		return &entity.InvalidReferenceGeometryError{Reason: "all points coincide"}
	}
	limit := collinearTolerance * extent * extent

	triples := [4][3]int{{0, 1, 2}, {0, 1, 3}, {0, 2, 3}, {1, 2, 3}}
	for _, t := range triples {
		p, q, r := ref[t[0]], ref[t[1]], ref[t[2]]
		cross := (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
		if math.Abs(cross) <= limit {
			return &entity.InvalidReferenceGeometryError{
				Reason: fmt.Sprintf("points %d, %d and %d are collinear", t[0], t[1], t[2]),
			}
		}
	}
	return nil
}

// Apply переводит точку (x, y).
func (h Homography) Apply(x, y float64) (float64, float64) {
	w := h[6]*x + h[7]*y + h[8]
	if w == 0 {
		return math.Inf(1), math.Inf(1)
	}
	return (h[0]*x + h[1]*y + h[2]) / w, (h[3]*x + h[4]*y + h[5]) / w
}

// Inverse обратное преобразование, нормированное на h22 = 1 где это возможно.
func (h Homography) Inverse() (Homography, error) {
	m := mat.NewDense(3, 3, h[:])
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return Homography{}, fmt.Errorf("invert homography: %w", err)
	}

	var out Homography
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = inv.At(r, c)
		}
	}
	if s := out[8]; s != 0 {
		for i := range out {
			out[i] /= s
		}
	}
	return out, nil
}

var errNonPositiveSize = errors.New("size must be positive")
