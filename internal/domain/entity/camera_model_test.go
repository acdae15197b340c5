package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validPinhole() CameraModel {
	return CameraModel{
		Intrinsic:  [3][3]float64{{800, 0, 320}, {0, 800, 240}, {0, 0, 1}},
		Distortion: []float64{0, 0, 0, 0},
		Kind:       ModelPinhole,
		Rotation:   RotateNone,
	}
}

func TestCameraModel_Validate(t *testing.T) {
	require.NoError(t, validPinhole().Validate())

	m := validPinhole()
	m.Distortion = []float64{0, 0, 0, 0, 0}
	require.NoError(t, m.Validate())

	m = validPinhole()
	m.Kind = ModelFisheye
	m.Distortion = []float64{0, 0, 0, 0, 0}
	require.Error(t, m.Validate())

	m = validPinhole()
	m.Distortion = []float64{0, 0, 0}
	require.Error(t, m.Validate())

	m = validPinhole()
	m.Intrinsic[0][0] = 0
	require.Error(t, m.Validate())

	m = validPinhole()
	m.Intrinsic[2][2] = 2
	require.Error(t, m.Validate())

	m = validPinhole()
	m.Kind = "spherical"
	require.Error(t, m.Validate())

	m = validPinhole()
	m.Rotation = "cw180"
	require.Error(t, m.Validate())
}

func TestCameraModel_Fingerprint(t *testing.T) {
	a := validPinhole()
	b := validPinhole()
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Distortion = []float64{0.1, 0, 0, 0}
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}

func TestCameraModel_Coefficient(t *testing.T) {
	m := validPinhole()
	m.Distortion = []float64{1, 2, 3, 4}
	require.Equal(t, 4.0, m.Coefficient(3))
	require.Equal(t, 0.0, m.Coefficient(4))
}
