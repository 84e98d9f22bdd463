// Package pcio decodes point-cloud files into plain XYZ point slices.
//
// Supported formats are PLY (ascii and binary_little_endian) and the
// four-float32 x/y/z/intensity ".bin" layout produced by common lidar
// toolchains. Only geometry is decoded; intensity and other per-point
// attributes are skipped.
package pcio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rick-mukherjee-z/Open3D-ML/internal/fsutil"
)

var (
	// ErrMissingFile is returned when the point-cloud file does not exist.
	ErrMissingFile = errors.New("point cloud file missing")

	// ErrFileFormat is returned when the file cannot be decoded, either
	// because the extension is unsupported or the contents are corrupt.
	ErrFileFormat = errors.New("point cloud file format error")
)

// Reader decodes a point-cloud file into XYZ points.
type Reader interface {
	ReadPointCloud(path string) ([][3]float32, error)
}

// FileReader reads point-cloud files from a filesystem, dispatching on the
// file extension.
type FileReader struct {
	fs fsutil.FileSystem
}

// NewFileReader creates a FileReader over the OS filesystem.
func NewFileReader() *FileReader {
	return &FileReader{fs: fsutil.OSFileSystem{}}
}

// NewFileReaderFS creates a FileReader over the given filesystem.
func NewFileReaderFS(fs fsutil.FileSystem) *FileReader {
	return &FileReader{fs: fs}
}

// ReadPointCloud decodes the file at path into an Nx3 point slice.
func (r *FileReader) ReadPointCloud(path string) ([][3]float32, error) {
	if !r.fs.Exists(path) {
		return nil, fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ply":
		points, err := decodePLY(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return points, nil
	case ".bin":
		points, err := decodeBin(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return points, nil
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrFileFormat, filepath.Ext(path))
	}
}
