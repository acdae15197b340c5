package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"math"
)

var (
	jpegSOI      = []byte{0xFF, 0xD8}
	pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
)

// jfifUnitsDPI единицы плотности JFIF: точки на дюйм.
const jfifUnitsDPI = 1

// withJFIFDensity вставляет или исправляет сегмент APP0 JFIF с плотностью dpi.
func withJFIFDensity(data []byte, dpi int) ([]byte, error) {
	if len(data) < 4 || !bytes.Equal(data[:2], jpegSOI) {
		return nil, errors.New("not a JPEG stream")
	}
	density := clampUint16(dpi)

	// Уже есть APP0 JFIF сразу после SOI: правим плотность на месте.
	if len(data) >= 20 && data[2] == 0xFF && data[3] == 0xE0 && bytes.Equal(data[6:11], []byte("JFIF\x00")) {
		out := append([]byte(nil), data...)
		out[13] = jfifUnitsDPI
		binary.BigEndian.PutUint16(out[14:16], density)
		binary.BigEndian.PutUint16(out[16:18], density)
		return out, nil
	}

	app0 := make([]byte, 0, 18)
	app0 = append(app0, 0xFF, 0xE0, 0x00, 0x10)
	app0 = append(app0, "JFIF\x00"...)
	app0 = append(app0, 0x01, 0x01, jfifUnitsDPI)
	app0 = binary.BigEndian.AppendUint16(app0, density)
	app0 = binary.BigEndian.AppendUint16(app0, density)
	app0 = append(app0, 0x00, 0x00)

	out := make([]byte, 0, len(data)+len(app0))
	out = append(out, data[:2]...)
	out = append(out, app0...)
	out = append(out, data[2:]...)
	return out, nil
}

// withPNGDensity вставляет чанк pHYs сразу после IHDR.
func withPNGDensity(data []byte, dpi int) ([]byte, error) {
	// Сигнатура (8) + IHDR: длина (4), тип (4), данные (13), CRC (4).
	const ihdrEnd = 8 + 4 + 4 + 13 + 4
	if len(data) < ihdrEnd || !bytes.Equal(data[:8], pngSignature) || string(data[12:16]) != "IHDR" {
		return nil, errors.New("not a PNG stream")
	}

	ppm := uint32(math.Round(float64(dpi) / 0.0254))
	chunk := make([]byte, 0, 21)
	chunk = binary.BigEndian.AppendUint32(chunk, 9)
	chunk = append(chunk, "pHYs"...)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = binary.BigEndian.AppendUint32(chunk, ppm)
	chunk = append(chunk, 1) // метры
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(chunk[4:]))

	out := make([]byte, 0, len(data)+len(chunk))
	out = append(out, data[:ihdrEnd]...)
	out = append(out, chunk...)
	out = append(out, data[ihdrEnd:]...)
	return out, nil
}

func clampUint16(v int) uint16 {
	if v < 1 {
		return 1
	}
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
