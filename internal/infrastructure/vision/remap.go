package vision

import (
	"errors"
	"image"
	"math"

	"podoscope/internal/domain/entity"
)

// Координаты выборки квантуются до 1/32 пикселя, как в картах CV_16SC2.
const (
	remapBits  = 5
	remapScale = 1 << remapBits
	remapMask  = remapScale - 1
	remapRound = 1 << (2*remapBits - 1)
)

// RemapTable для каждого пикселя выходного кадра хранит координаты
// выборки во входном кадре. После построения только читается.
type RemapTable struct {
	width     int
	height    int
	srcWidth  int
	srcHeight int
	mapX      []float32
	mapY      []float32
}

func newRemapTable(width, height, srcWidth, srcHeight int) (*RemapTable, error) {
	if width <= 0 || height <= 0 || srcWidth <= 0 || srcHeight <= 0 {
		return nil, errors.New("remap table size must be positive")
	}
	n := width * height
	return &RemapTable{
		width:     width,
		height:    height,
		srcWidth:  srcWidth,
		srcHeight: srcHeight,
		mapX:      make([]float32, n),
		mapY:      make([]float32, n),
	}, nil
}

// Size размер выходного кадра.
func (t *RemapTable) Size() image.Point { return image.Pt(t.width, t.height) }

// SourceSize размер входного кадра, для которого построена карта.
func (t *RemapTable) SourceSize() image.Point { return image.Pt(t.srcWidth, t.srcHeight) }

// At координаты выборки для выходного пикселя (x, y).
func (t *RemapTable) At(x, y int) (float32, float32) {
	i := y*t.width + x
	return t.mapX[i], t.mapY[i]
}

func (t *RemapTable) set(x, y int, sx, sy float64) {
	i := y*t.width + x
	t.mapX[i] = float32(sx)
	t.mapY[i] = float32(sy)
}

// Remap пересэмплирует кадр через карту билинейной интерполяцией.
// Выборки за пределами кадра дают чёрный цвет.
func Remap(frame *entity.Frame, table *RemapTable) (*entity.Frame, error) {
	if frame == nil || table == nil {
		return nil, errors.New("remap: nil frame or table")
	}
	if frame.Size() != table.SourceSize() {
		return nil, &entity.ShapeMismatchError{Want: table.SourceSize(), Got: frame.Size()}
	}

	ch := frame.Channels()
	src := frame.Pix()
	sw, sh := frame.Width(), frame.Height()
	stride := frame.Stride()
	dst := make([]uint8, table.width*table.height*ch)

	// Отсекаем заведомо внешние точки до перевода в int.
	limX := float64(sw + 1)
	limY := float64(sh + 1)

	var acc [4]int
	for i := range table.mapX {
		fx, fy := float64(table.mapX[i]), float64(table.mapY[i])
		if !(fx > -2 && fx < limX && fy > -2 && fy < limY) {
			continue
		}
		ix := int(math.Floor(fx*remapScale + 0.5))
		iy := int(math.Floor(fy*remapScale + 0.5))
		x0, y0 := ix>>remapBits, iy>>remapBits
		ax, ay := ix&remapMask, iy&remapMask

		weights := [4]int{
			(remapScale - ax) * (remapScale - ay),
			ax * (remapScale - ay),
			(remapScale - ax) * ay,
			ax * ay,
		}
		xs := [4]int{x0, x0 + 1, x0, x0 + 1}
		ys := [4]int{y0, y0, y0 + 1, y0 + 1}

		for c := 0; c < ch; c++ {
			acc[c] = 0
		}
		for k := 0; k < 4; k++ {
			w := weights[k]
			if w == 0 {
				continue
			}
			x, y := xs[k], ys[k]
			if x < 0 || y < 0 || x >= sw || y >= sh {
				continue
			}
			o := y*stride + x*ch
			for c := 0; c < ch; c++ {
				acc[c] += w * int(src[o+c])
			}
		}

		o := i * ch
		for c := 0; c < ch; c++ {
			dst[o+c] = uint8((acc[c] + remapRound) >> (2 * remapBits))
		}
	}

	return entity.NewFrame(table.width, table.height, ch, dst)
}
