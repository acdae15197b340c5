package entity

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Frame неизменяемый кадр: пиксели упакованы построчно, каналы чередуются.
// Каждая стадия коррекции возвращает новый Frame и не трогает входной.
type Frame struct {
	width    int
	height   int
	channels int
	pix      []uint8
}

// NewFrame создаёт кадр поверх pix. Срез переходит во владение кадра.
func NewFrame(width, height, channels int, pix []uint8) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", width, height)
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return nil, fmt.Errorf("unsupported channel count %d", channels)
	}
	if len(pix) != width*height*channels {
		return nil, errors.New("pixel buffer does not match frame size")
	}
	return &Frame{width: width, height: height, channels: channels, pix: pix}, nil
}

// NewBlankFrame создаёт чёрный кадр заданного размера.
func NewBlankFrame(width, height, channels int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame size must be positive, got %dx%d", width, height)
	}
	return NewFrame(width, height, channels, make([]uint8, width*height*channels))
}

func (f *Frame) Width() int    { return f.width }
func (f *Frame) Height() int   { return f.height }
func (f *Frame) Channels() int { return f.channels }

// Size возвращает ширину и высоту кадра.
func (f *Frame) Size() image.Point { return image.Pt(f.width, f.height) }

// Stride число байт в одной строке.
func (f *Frame) Stride() int { return f.width * f.channels }

// Pix отдаёт внутренний буфер. Вызывающий не должен его изменять.
func (f *Frame) Pix() []uint8 { return f.pix }

// At возвращает значение канала c в точке (x, y).
func (f *Frame) At(x, y, c int) uint8 {
	return f.pix[(y*f.width+x)*f.channels+c]
}

// Equal сравнивает кадры попиксельно.
func (f *Frame) Equal(other *Frame) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.width != other.width || f.height != other.height || f.channels != other.channels {
		return false
	}
	for i := range f.pix {
		if f.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// ToImage конвертирует кадр в image.Image (Gray, RGBA или NRGBA).
func (f *Frame) ToImage() image.Image {
	rect := image.Rect(0, 0, f.width, f.height)
	switch f.channels {
	case 1:
		img := image.NewGray(rect)
		copy(img.Pix, f.pix)
		return img
	case 4:
		img := image.NewNRGBA(rect)
		copy(img.Pix, f.pix)
		return img
	default:
		img := image.NewRGBA(rect)
		for i, j := 0, 0; i < len(f.pix); i, j = i+3, j+4 {
			img.Pix[j] = f.pix[i]
			img.Pix[j+1] = f.pix[i+1]
			img.Pix[j+2] = f.pix[i+2]
			img.Pix[j+3] = 0xff
		}
		return img
	}
}

// FrameFromImage копирует изображение в кадр. Серые изображения дают
// одноканальный кадр, NRGBA сохраняет альфу, остальные приводятся к RGB.
func FrameFromImage(img image.Image) (*Frame, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, errors.New("empty image")
	}

	switch src := img.(type) {
	case *image.Gray:
		pix := make([]uint8, w*h)
		for y := 0; y < h; y++ {
			copy(pix[y*w:(y+1)*w], src.Pix[y*src.Stride:y*src.Stride+w])
		}
		return NewFrame(w, h, 1, pix)
	case *image.NRGBA:
		pix := make([]uint8, w*h*4)
		for y := 0; y < h; y++ {
			copy(pix[y*w*4:(y+1)*w*4], src.Pix[y*src.Stride:y*src.Stride+w*4])
		}
		return NewFrame(w, h, 4, pix)
	case *image.RGBA:
		pix := make([]uint8, w*h*3)
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride:]
			for x := 0; x < w; x++ {
				o := (y*w + x) * 3
				pix[o] = row[x*4]
				pix[o+1] = row[x*4+1]
				pix[o+2] = row[x*4+2]
			}
		}
		return NewFrame(w, h, 3, pix)
	}

	pix := make([]uint8, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			o := (y*w + x) * 3
			pix[o] = c.R
			pix[o+1] = c.G
			pix[o+2] = c.B
		}
	}
	return NewFrame(w, h, 3, pix)
}
