package vision

import (
	"fmt"
	"image"

	"podoscope/internal/domain/entity"
)

// BuildWarpMap строит обратную карту перспективного преобразования:
// выходной пиксель (x, y) берётся из точки H^-1·(x, y) входного кадра.
func BuildWarpMap(h Homography, srcWidth, srcHeight, targetWidth, targetHeight int) (*RemapTable, error) {
	inv, err := h.Inverse()
	if err != nil {
		return nil, &entity.InvalidReferenceGeometryError{Reason: err.Error()}
	}
	table, err := newRemapTable(targetWidth, targetHeight, srcWidth, srcHeight)
	if err != nil {
		return nil, err
	}
	for y := 0; y < targetHeight; y++ {
		for x := 0; x < targetWidth; x++ {
			sx, sy := inv.Apply(float64(x), float64(y))
			table.set(x, y, sx, sy)
		}
	}
	return table, nil
}

// Rectifier выпрямляет перспективу и приводит кадр к физическому
// отношению сторон. Кадр масштабируется, а не обрезается.
type Rectifier struct {
	Ratio entity.TargetRatio
}

// NewRectifier создаёт выпрямитель для заданного отношения сторон.
func NewRectifier(ratio entity.TargetRatio) (*Rectifier, error) {
	if err := ratio.Validate(); err != nil {
		return nil, err
	}
	return &Rectifier{Ratio: ratio}, nil
}

// OutputSize итоговый размер для холста шириной targetWidth.
func (r *Rectifier) OutputSize(targetWidth int) image.Point {
	return image.Pt(targetWidth, r.Ratio.HeightFor(targetWidth))
}

// Rectify переносит кадр через гомографию на холст targetWidth×targetHeight
// и масштабирует результат до отношения сторон Ratio.
func (r *Rectifier) Rectify(frame *entity.Frame, h Homography, targetWidth, targetHeight int) (*entity.Frame, error) {
	table, err := BuildWarpMap(h, frame.Width(), frame.Height(), targetWidth, targetHeight)
	if err != nil {
		return nil, err
	}
	return r.RectifyWith(frame, table)
}

// RectifyWith то же, что Rectify, но с заранее построенной картой.
func (r *Rectifier) RectifyWith(frame *entity.Frame, warp *RemapTable) (*entity.Frame, error) {
	warped, err := Remap(frame, warp)
	if err != nil {
		return nil, err
	}
	size := r.OutputSize(warped.Width())
	out, err := ResizeFrame(warped, size.X, size.Y)
	if err != nil {
		return nil, fmt.Errorf("resize to target ratio: %w", err)
	}
	return out, nil
}
