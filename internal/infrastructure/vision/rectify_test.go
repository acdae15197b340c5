package vision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"podoscope/internal/domain/entity"
)

func TestRectify_RatioInvariant(t *testing.T) {
	ratios := []entity.TargetRatio{entity.DefaultTargetRatio, {Width: 1, Height: 1}, {Width: 3, Height: 4}}
	frame := randomFrame(t, 120, 90, 3, 5)
	ref := entity.ReferenceQuadrilateral{{X: 10, Y: 12}, {X: 110, Y: 8}, {X: 4, Y: 85}, {X: 116, Y: 80}}

	for _, ratio := range ratios {
		r, err := NewRectifier(ratio)
		require.NoError(t, err)
		for _, size := range [][2]int{{120, 90}, {77, 40}, {33, 101}} {
			h, err := ComputeHomography(ref, size[0], size[1])
			require.NoError(t, err)

			out, err := r.Rectify(frame, h, size[0], size[1])
			require.NoError(t, err)
			require.Equal(t, size[0], out.Width())

			got := float64(out.Height()) / float64(out.Width())
			require.InDelta(t, ratio.Value(), got, 0.5/float64(out.Width())+1e-9)
		}
	}
}

func TestRectify_ReferencePointsLandOnCorners(t *testing.T) {
	h, err := ComputeHomography(skewedReference, 1920, 1080)
	require.NoError(t, err)
	table, err := BuildWarpMap(h, 1920, 1080, 1920, 1080)
	require.NoError(t, err)

	// Левый верхний угол холста берётся ровно из первой опорной точки.
	x, y := table.At(0, 0)
	require.InDelta(t, skewedReference[0].X, float64(x), 1.0/remapScale)
	require.InDelta(t, skewedReference[0].Y, float64(y), 1.0/remapScale)

	inv, err := h.Inverse()
	require.NoError(t, err)
	for i, c := range TargetCorners(1920, 1080) {
		sx, sy := inv.Apply(c.X, c.Y)
		require.InDelta(t, skewedReference[i].X, sx, 1e-3)
		require.InDelta(t, skewedReference[i].Y, sy, 1e-3)
	}
}

func TestRectify_EndToEndCheckerboard(t *testing.T) {
	frame := checkerboard(t, 1920, 1080, 60)

	table, err := BuildUndistortMap(pinholeModel(1920, 1080), 1920, 1080)
	require.NoError(t, err)
	undistorted, err := ApplyUndistort(frame, table)
	require.NoError(t, err)

	h, err := ComputeHomography(entity.FullFrameReference(1920, 1080), 1920, 1080)
	require.NoError(t, err)
	r, err := NewRectifier(entity.DefaultTargetRatio)
	require.NoError(t, err)
	out, err := r.Rectify(undistorted, h, 1920, 1080)
	require.NoError(t, err)

	want, err := ResizeFrame(frame, 1920, entity.DefaultTargetRatio.HeightFor(1920))
	require.NoError(t, err)
	require.True(t, want.Equal(out))
}

func TestRectify_ShapeMismatch(t *testing.T) {
	table, err := BuildWarpMap(IdentityHomography(), 20, 20, 20, 20)
	require.NoError(t, err)
	r, err := NewRectifier(entity.TargetRatio{Width: 1, Height: 1})
	require.NoError(t, err)

	_, err = r.RectifyWith(randomFrame(t, 10, 20, 1, 6), table)
	var shapeErr *entity.ShapeMismatchError
	require.True(t, errors.As(err, &shapeErr))
}

func TestNewRectifier_InvalidRatio(t *testing.T) {
	_, err := NewRectifier(entity.TargetRatio{Width: 0, Height: 1})
	require.Error(t, err)
}
