package vision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"podoscope/internal/domain/entity"
)

var skewedReference = entity.ReferenceQuadrilateral{
	{X: 290, Y: 341}, {X: 1562, Y: 317}, {X: 72, Y: 943}, {X: 1834, Y: 907},
}

func TestComputeHomography_MapsReferenceToCorners(t *testing.T) {
	h, err := ComputeHomography(skewedReference, 1920, 1080)
	require.NoError(t, err)

	corners := TargetCorners(1920, 1080)
	for i, p := range skewedReference {
		x, y := h.Apply(p.X, p.Y)
		require.InDelta(t, corners[i].X, x, 1e-6, "corner %d x", i)
		require.InDelta(t, corners[i].Y, y, 1e-6, "corner %d y", i)
	}
}

func TestComputeHomography_FullFrameIsIdentity(t *testing.T) {
	h, err := ComputeHomography(entity.FullFrameReference(640, 480), 640, 480)
	require.NoError(t, err)

	id := IdentityHomography()
	for i := range h {
		require.InDelta(t, id[i], h[i], 1e-9)
	}
}

func TestComputeHomography_OrderingIsRespected(t *testing.T) {
	// Перестановка левых и правых углов даёт зеркальный результат.
	swapped := entity.ReferenceQuadrilateral{
		skewedReference[entity.CornerTopRight],
		skewedReference[entity.CornerTopLeft],
		skewedReference[entity.CornerBottomRight],
		skewedReference[entity.CornerBottomLeft],
	}
	h, err := ComputeHomography(swapped, 100, 50)
	require.NoError(t, err)

	x, y := h.Apply(skewedReference[entity.CornerTopLeft].X, skewedReference[entity.CornerTopLeft].Y)
	require.InDelta(t, 100, x, 1e-6)
	require.InDelta(t, 0, y, 1e-6)
}

func TestComputeHomography_CollinearPoints(t *testing.T) {
	ref := entity.ReferenceQuadrilateral{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 20}, {X: 0, Y: 30}}
	_, err := ComputeHomography(ref, 100, 100)

	var geomErr *entity.InvalidReferenceGeometryError
	require.True(t, errors.As(err, &geomErr))
	require.Contains(t, geomErr.Reason, "collinear")
}

func TestComputeHomography_CoincidentPoints(t *testing.T) {
	ref := entity.ReferenceQuadrilateral{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}
	_, err := ComputeHomography(ref, 100, 100)

	var geomErr *entity.InvalidReferenceGeometryError
	require.True(t, errors.As(err, &geomErr))
}

func TestComputeHomography_EmptyTarget(t *testing.T) {
	_, err := ComputeHomography(skewedReference, 0, 100)

	var geomErr *entity.InvalidReferenceGeometryError
	require.True(t, errors.As(err, &geomErr))
}

func TestHomography_InverseRoundTrip(t *testing.T) {
	h, err := ComputeHomography(skewedReference, 1920, 1080)
	require.NoError(t, err)
	inv, err := h.Inverse()
	require.NoError(t, err)

	for _, p := range []entity.Point{{X: 10, Y: 20}, {X: 960, Y: 540}, {X: 1900, Y: 1000}} {
		x, y := h.Apply(p.X, p.Y)
		bx, by := inv.Apply(x, y)
		require.InDelta(t, p.X, bx, 1e-6)
		require.InDelta(t, p.Y, by, 1e-6)
	}
}
