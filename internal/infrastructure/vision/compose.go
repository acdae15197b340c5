package vision

import (
	"errors"
	"fmt"

	"podoscope/internal/domain/entity"
)

// Rotate поворачивает кадр на 90° по или против часовой стрелки.
func Rotate(frame *entity.Frame, rotation entity.Rotation) (*entity.Frame, error) {
	switch rotation {
	case entity.RotateNone, "":
		return frame, nil
	case entity.RotateCW90, entity.RotateCCW90:
	default:
		return nil, fmt.Errorf("unknown rotation %q", rotation)
	}

	w, h, ch := frame.Width(), frame.Height(), frame.Channels()
	src := frame.Pix()
	dst := make([]uint8, len(src))
	// Результат имеет размер h×w.
	for y := 0; y < w; y++ {
		for x := 0; x < h; x++ {
			var sx, sy int
			if rotation == entity.RotateCW90 {
				sx, sy = y, h-1-x
			} else {
				sx, sy = w-1-y, x
			}
			copy(dst[(y*h+x)*ch:(y*h+x+1)*ch], src[(sy*w+sx)*ch:(sy*w+sx+1)*ch])
		}
	}
	return entity.NewFrame(h, w, ch, dst)
}

// Mirror отражает кадр по горизонтали.
func Mirror(frame *entity.Frame) (*entity.Frame, error) {
	w, h, ch := frame.Width(), frame.Height(), frame.Channels()
	src := frame.Pix()
	dst := make([]uint8, len(src))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := (y*w + w - 1 - x) * ch
			d := (y*w + x) * ch
			copy(dst[d:d+ch], src[s:s+ch])
		}
	}
	return entity.NewFrame(w, h, ch, dst)
}

// Concat склеивает два кадра вдоль оси раскладки. Размер результата равен
// сумме по оси склейки и максимуму по другой оси; недостающее поле чёрное.
func Concat(left, right *entity.Frame, layout entity.Layout) (*entity.Frame, error) {
	if left == nil || right == nil {
		return nil, errors.New("compose: nil frame")
	}
	if left.Channels() != right.Channels() {
		return nil, fmt.Errorf("compose: channel mismatch %d vs %d", left.Channels(), right.Channels())
	}

	var w, h int
	var offX, offY int
	switch layout {
	case entity.LayoutSideBySide:
		w = left.Width() + right.Width()
		h = maxInt(left.Height(), right.Height())
		offX = left.Width()
	case entity.LayoutStacked:
		w = maxInt(left.Width(), right.Width())
		h = left.Height() + right.Height()
		offY = left.Height()
	default:
		return nil, fmt.Errorf("compose: unknown layout %q", layout)
	}

	out := make([]uint8, w*h*left.Channels())
	blit(out, w, left, 0, 0)
	blit(out, w, right, offX, offY)
	return entity.NewFrame(w, h, left.Channels(), out)
}

func blit(dst []uint8, dstWidth int, frame *entity.Frame, offX, offY int) {
	ch := frame.Channels()
	stride := frame.Stride()
	src := frame.Pix()
	for y := 0; y < frame.Height(); y++ {
		d := ((offY+y)*dstWidth + offX) * ch
		copy(dst[d:d+stride], src[y*stride:(y+1)*stride])
	}
}

// Compose поворачивает каждый кадр независимо и склеивает их.
func Compose(left, right *entity.Frame, layout entity.Layout, rotateLeft, rotateRight entity.Rotation) (*entity.Frame, error) {
	l, err := Rotate(left, rotateLeft)
	if err != nil {
		return nil, fmt.Errorf("rotate left: %w", err)
	}
	r, err := Rotate(right, rotateRight)
	if err != nil {
		return nil, fmt.Errorf("rotate right: %w", err)
	}
	return Concat(l, r, layout)
}
