package app

import (
	"path/filepath"
	"time"
)

// NamingLayout формат метки времени в именах файлов.
const NamingLayout = "2006-01-02-150405"

// Суффиксы левого (gauche) и правого (droit) снимков.
const (
	LeftSuffix  = "_G"
	RightSuffix = "_D"
)

// ArtifactPaths пути трёх файлов результата.
type ArtifactPaths struct {
	Left      string
	Right     string
	Composite string
}

// NamingKey метка времени для имён файлов.
func NamingKey(t time.Time) string {
	return t.Format(NamingLayout)
}

// BuildArtifactPaths строит пути вида dir/YYYY-MM-DD-HHMMSS[_suffix].ext.
func BuildArtifactPaths(dir, key, ext string) ArtifactPaths {
	return ArtifactPaths{
		Left:      filepath.Join(dir, key+LeftSuffix+ext),
		Right:     filepath.Join(dir, key+RightSuffix+ext),
		Composite: filepath.Join(dir, key+ext),
	}
}
