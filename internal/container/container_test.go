package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	app "podoscope/internal/application"
	"podoscope/internal/domain/entity"
	"podoscope/internal/infrastructure/storage"
	"podoscope/internal/infrastructure/vision"
)

func TestNew(t *testing.T) {
	opener := vision.NewStillCameraOpener(map[int]string{0: "left.jpg", 1: "right.jpg"})
	c, err := New(opener, vision.NewHeadlessDisplay(1), storage.NewMemoryImageStore(), entity.DefaultTargetRatio, app.CaptureSettings{})
	require.NoError(t, err)
	require.NotNil(t, c.CaptureService)
	require.Equal(t, entity.DefaultTargetRatio, c.Pipeline.Ratio())
	require.Zero(t, c.Maps.Builds())
}

func TestNew_InvalidRatio(t *testing.T) {
	_, err := New(nil, nil, nil, entity.TargetRatio{}, app.CaptureSettings{})
	require.Error(t, err)
}
