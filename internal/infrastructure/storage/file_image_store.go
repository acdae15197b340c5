package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"podoscope/internal/domain/entity"
	"podoscope/internal/domain/port"
)

// FileImageStore пишет изображения на диск с плотностью для печати.
type FileImageStore struct {
	JPEGQuality int
}

// NewFileImageStore создаёт файловое хранилище
func NewFileImageStore() *FileImageStore {
	return &FileImageStore{JPEGQuality: 95}
}

// SupportedExtension сообщает, умеет ли хранилище писать такой формат.
func SupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png":
		return true
	}
	return false
}

// WriteImage кодирует кадр по расширению пути и атомарно записывает файл.
func (s *FileImageStore) WriteImage(ctx context.Context, frame *entity.Frame, path string, dpi int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := s.encode(frame, filepath.Ext(path), dpi)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".podoscope-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Remove удаляет файл; отсутствующий файл не считается ошибкой.
func (s *FileImageStore) Remove(ctx context.Context, path string) error {
	_ = ctx
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileImageStore) encode(frame *entity.Frame, ext string, dpi int) ([]byte, error) {
	if frame == nil {
		return nil, errors.New("nil frame")
	}
	var buf bytes.Buffer
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		quality := s.JPEGQuality
		if quality <= 0 {
			quality = 95
		}
		if err := jpeg.Encode(&buf, frame.ToImage(), &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
		return withJFIFDensity(buf.Bytes(), dpi)
	case ".png":
		if err := png.Encode(&buf, frame.ToImage()); err != nil {
			return nil, err
		}
		return withPNGDensity(buf.Bytes(), dpi)
	}
	return nil, fmt.Errorf("unsupported image format %q", ext)
}

// Проверка реализации интерфейса
var _ port.ImageStore = (*FileImageStore)(nil)
