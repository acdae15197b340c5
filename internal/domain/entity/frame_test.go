package entity

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewFrame_Validation(t *testing.T) {
	_, err := NewFrame(0, 10, 3, nil)
	require.Error(t, err)

	_, err = NewFrame(2, 2, 2, make([]uint8, 8))
	require.Error(t, err)

	_, err = NewFrame(2, 2, 3, make([]uint8, 11))
	require.Error(t, err)

	f, err := NewFrame(2, 2, 3, make([]uint8, 12))
	require.NoError(t, err)
	require.Equal(t, image.Pt(2, 2), f.Size())
	require.Equal(t, 6, f.Stride())
}

func TestFrame_ImageRoundTripRGB(t *testing.T) {
	pix := []uint8{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	f, err := NewFrame(2, 2, 3, pix)
	require.NoError(t, err)

	img := f.ToImage()
	require.IsType(t, &image.RGBA{}, img)
	require.Equal(t, color.RGBA{R: 10, G: 11, B: 12, A: 255}, img.At(1, 1))

	back, err := FrameFromImage(img)
	require.NoError(t, err)
	require.True(t, f.Equal(back))
}

func TestFrame_ImageRoundTripGray(t *testing.T) {
	f, err := NewFrame(3, 1, 1, []uint8{0, 128, 255})
	require.NoError(t, err)

	back, err := FrameFromImage(f.ToImage())
	require.NoError(t, err)
	require.Equal(t, 1, back.Channels())
	require.True(t, f.Equal(back))
}

func TestFrameFromImage_SubImageBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{R: 200, A: 255})

	sub := img.SubImage(image.Rect(2, 2, 4, 4))
	f, err := FrameFromImage(sub)
	require.NoError(t, err)
	require.Equal(t, 2, f.Width())
	require.Equal(t, uint8(200), f.At(0, 0, 0))
}

func TestFrame_Equal(t *testing.T) {
	a, _ := NewBlankFrame(2, 2, 1)
	b, _ := NewBlankFrame(2, 2, 1)
	c, _ := NewBlankFrame(2, 2, 3)

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
	require.False(t, a.Equal(nil))
}
