package vision

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"podoscope/internal/domain/entity"
)

// ResizeFrame масштабирует кадр до width×height билинейной интерполяцией.
func ResizeFrame(frame *entity.Frame, width, height int) (*entity.Frame, error) {
	return scaleFrame(frame, width, height, draw.BiLinear)
}

// ResizeForDisplay пропорционально масштабирует кадр так, чтобы длинная
// сторона стала равна maxLongSide. Только для предпросмотра.
func ResizeForDisplay(frame *entity.Frame, maxLongSide int) (*entity.Frame, error) {
	if maxLongSide <= 0 {
		return nil, fmt.Errorf("display long side: %w", errNonPositiveSize)
	}
	w, h := frame.Width(), frame.Height()
	long := w
	if h > long {
		long = h
	}
	scale := float64(maxLongSide) / float64(long)
	nw := maxInt(1, int(math.Round(float64(w)*scale)))
	nh := maxInt(1, int(math.Round(float64(h)*scale)))
	if w >= h {
		nw = maxLongSide
	} else {
		nh = maxLongSide
	}
	return scaleFrame(frame, nw, nh, draw.CatmullRom)
}

func scaleFrame(frame *entity.Frame, width, height int, scaler draw.Scaler) (*entity.Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("resize to %dx%d: %w", width, height, errNonPositiveSize)
	}
	if frame.Width() == width && frame.Height() == height {
		return frame, nil
	}

	src := frame.ToImage()
	rect := image.Rect(0, 0, width, height)
	var dst draw.Image
	switch src.(type) {
	case *image.Gray:
		dst = image.NewGray(rect)
	case *image.NRGBA:
		dst = image.NewNRGBA(rect)
	default:
		dst = image.NewRGBA(rect)
	}
	scaler.Scale(dst, rect, src, src.Bounds(), draw.Src, nil)
	return entity.FrameFromImage(dst)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
