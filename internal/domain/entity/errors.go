package entity

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoFrame камера не вернула кадр.
var ErrNoFrame = errors.New("no frame")

// CameraUnavailableError камера не открылась или перестала отдавать кадры.
// Сессия после неё не восстанавливается.
type CameraUnavailableError struct {
	Camera string
	Err    error
}

func (e *CameraUnavailableError) Error() string {
	return fmt.Sprintf("camera %s unavailable: %v", e.Camera, e.Err)
}

func (e *CameraUnavailableError) Unwrap() error { return e.Err }

// ShapeMismatchError карта построена для другого размера кадра.
type ShapeMismatchError struct {
	Want image.Point
	Got  image.Point
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("frame is %dx%d, remap table expects %dx%d", e.Got.X, e.Got.Y, e.Want.X, e.Want.Y)
}

// InvalidReferenceGeometryError опорный четырёхугольник вырожден,
// гомография не определена.
type InvalidReferenceGeometryError struct {
	Reason string
}

func (e *InvalidReferenceGeometryError) Error() string {
	return "invalid reference geometry: " + e.Reason
}

// StageError указывает стадию конвейера и камеру, на которых произошёл сбой.
type StageError struct {
	Stage  string
	Camera string
	Err    error
}

func (e *StageError) Error() string {
	if e.Camera == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s (%s camera): %v", e.Stage, e.Camera, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
