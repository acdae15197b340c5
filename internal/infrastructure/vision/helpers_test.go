package vision

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"podoscope/internal/domain/entity"
)

func pinholeModel(width, height int) entity.CameraModel {
	return entity.CameraModel{
		Intrinsic: [3][3]float64{
			{float64(width), 0, float64(width) / 2},
			{0, float64(width), float64(height) / 2},
			{0, 0, 1},
		},
		Distortion: []float64{0, 0, 0, 0},
		Kind:       entity.ModelPinhole,
		Rotation:   entity.RotateNone,
	}
}

func randomFrame(t *testing.T, width, height, channels int, seed int64) *entity.Frame {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pix := make([]uint8, width*height*channels)
	rng.Read(pix)
	f, err := entity.NewFrame(width, height, channels, pix)
	require.NoError(t, err)
	return f
}

func checkerboard(t *testing.T, width, height, cell int) *entity.Frame {
	t.Helper()
	pix := make([]uint8, width*height*3)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/cell)+(y/cell))%2 == 0 {
				o := (y*width + x) * 3
				pix[o], pix[o+1], pix[o+2] = 255, 255, 255
			}
		}
	}
	f, err := entity.NewFrame(width, height, 3, pix)
	require.NoError(t, err)
	return f
}

// labeled кадр, где значение пикселя кодирует его координаты.
func labeled(t *testing.T, width, height int) *entity.Frame {
	t.Helper()
	pix := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pix[y*width+x] = uint8(y*width + x)
		}
	}
	f, err := entity.NewFrame(width, height, 1, pix)
	require.NoError(t, err)
	return f
}
