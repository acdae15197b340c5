package entity

import (
	"fmt"
	"math"
)

// Point точка в пиксельных координатах
type Point struct {
	X float64
	Y float64
}

// Порядок углов опорного четырёхугольника.
const (
	CornerTopLeft = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

// ReferenceQuadrilateral четыре угла известного прямоугольника
// в порядке: левый верхний, правый верхний, левый нижний, правый нижний.
// Координаты заданы в пространстве неискажённого кадра.
type ReferenceQuadrilateral [4]Point

// FullFrameReference четырёхугольник, совпадающий с углами кадра.
func FullFrameReference(width, height int) ReferenceQuadrilateral {
	w, h := float64(width), float64(height)
	return ReferenceQuadrilateral{{0, 0}, {w, 0}, {0, h}, {w, h}}
}

// TargetRatio отношение сторон физического прямоугольника (ширина:высота).
type TargetRatio struct {
	Width  float64
	Height float64
}

// DefaultTargetRatio подошва подоскопа 325×142 мм.
var DefaultTargetRatio = TargetRatio{Width: 325, Height: 142}

// Validate проверяет, что обе стороны положительны.
func (r TargetRatio) Validate() error {
	if r.Width <= 0 || r.Height <= 0 || math.IsInf(r.Width, 0) || math.IsInf(r.Height, 0) {
		return fmt.Errorf("target ratio must be positive, got %v:%v", r.Width, r.Height)
	}
	return nil
}

// Value возвращает высоту, делённую на ширину.
func (r TargetRatio) Value() float64 {
	return r.Height / r.Width
}

// HeightFor высота кадра шириной width с этим отношением сторон.
func (r TargetRatio) HeightFor(width int) int {
	h := int(math.Round(float64(width) * r.Value()))
	if h < 1 {
		h = 1
	}
	return h
}
