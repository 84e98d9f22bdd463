package pcio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rick-mukherjee-z/Open3D-ML/internal/fsutil"
)

func putFloat32(buf *bytes.Buffer, v float32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], math.Float32bits(v))
	buf.Write(b[:])
}

func TestReadPointCloudMissing(t *testing.T) {
	r := NewFileReaderFS(fsutil.NewMemoryFileSystem())
	_, err := r.ReadPointCloud("/data/absent.ply")
	if !errors.Is(err, ErrMissingFile) {
		t.Errorf("expected ErrMissingFile, got %v", err)
	}
}

func TestReadPointCloudUnsupportedExtension(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	fs.WriteFile("/data/pc.xyz", []byte("1 2 3"))
	r := NewFileReaderFS(fs)
	_, err := r.ReadPointCloud("/data/pc.xyz")
	if !errors.Is(err, ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

func TestDecodePLYAscii(t *testing.T) {
	ply := "ply\n" +
		"format ascii 1.0\n" +
		"comment made by a lidar exporter\n" +
		"element vertex 3\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"property uchar intensity\n" +
		"end_header\n" +
		"1.0 2.0 3.0 200\n" +
		"-1.5 0.25 10.0 17\n" +
		"0 0 0 0\n"

	fs := fsutil.NewMemoryFileSystem()
	fs.WriteFile("/data/scene.ply", []byte(ply))
	r := NewFileReaderFS(fs)

	points, err := r.ReadPointCloud("/data/scene.ply")
	if err != nil {
		t.Fatalf("ReadPointCloud: %v", err)
	}
	want := [][3]float32{{1, 2, 3}, {-1.5, 0.25, 10}, {0, 0, 0}}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePLYBinary(t *testing.T) {
	// Vertex layout: uchar ring, float x, float y, float z. The non-float
	// leading property checks that offsets are honoured, not assumed.
	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("element vertex 2\n")
	buf.WriteString("property uchar ring\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("end_header\n")
	for i, pt := range [][3]float32{{4, 5, 6}, {-7, 8, -9}} {
		buf.WriteByte(byte(i))
		putFloat32(&buf, pt[0])
		putFloat32(&buf, pt[1])
		putFloat32(&buf, pt[2])
	}

	fs := fsutil.NewMemoryFileSystem()
	fs.WriteFile("/data/scene.ply", buf.Bytes())
	r := NewFileReaderFS(fs)

	points, err := r.ReadPointCloud("/data/scene.ply")
	if err != nil {
		t.Fatalf("ReadPointCloud: %v", err)
	}
	want := [][3]float32{{4, 5, 6}, {-7, 8, -9}}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePLYBinaryDoubleCoords(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("element vertex 1\n")
	buf.WriteString("property double x\n")
	buf.WriteString("property double y\n")
	buf.WriteString("property double z\n")
	buf.WriteString("end_header\n")
	for _, v := range []float64{1.5, -2.5, 3.5} {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		buf.Write(b[:])
	}

	points, err := decodePLY(buf.Bytes())
	if err != nil {
		t.Fatalf("decodePLY: %v", err)
	}
	want := [][3]float32{{1.5, -2.5, 3.5}}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePLYTrailingElementIgnored(t *testing.T) {
	ply := "ply\n" +
		"format ascii 1.0\n" +
		"element vertex 1\n" +
		"property float x\n" +
		"property float y\n" +
		"property float z\n" +
		"element face 1\n" +
		"property list uchar int vertex_indices\n" +
		"end_header\n" +
		"1 2 3\n" +
		"3 0 0 0\n"

	points, err := decodePLY([]byte(ply))
	if err != nil {
		t.Fatalf("decodePLY: %v", err)
	}
	if len(points) != 1 {
		t.Errorf("expected 1 point, got %d", len(points))
	}
}

func TestDecodePLYErrors(t *testing.T) {
	tests := []struct {
		name string
		ply  string
	}{
		{"no magic", "format ascii 1.0\nelement vertex 0\nproperty float x\nproperty float y\nproperty float z\nend_header\n"},
		{"no end_header", "ply\nformat ascii 1.0\n"},
		{"big endian", "ply\nformat binary_big_endian 1.0\nelement vertex 0\nproperty float x\nproperty float y\nproperty float z\nend_header\n"},
		{"no vertex element", "ply\nformat ascii 1.0\nend_header\n"},
		{"missing z", "ply\nformat ascii 1.0\nelement vertex 0\nproperty float x\nproperty float y\nend_header\n"},
		{"int coords", "ply\nformat ascii 1.0\nelement vertex 0\nproperty int x\nproperty int y\nproperty int z\nend_header\n"},
		{"short body", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n1 2 3\n"},
		{"bad coordinate", "ply\nformat ascii 1.0\nelement vertex 1\nproperty float x\nproperty float y\nproperty float z\nend_header\n1 oops 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := decodePLY([]byte(tt.ply)); !errors.Is(err, ErrFileFormat) {
				t.Errorf("expected ErrFileFormat, got %v", err)
			}
		})
	}
}

func TestDecodeBinXYZI(t *testing.T) {
	var buf bytes.Buffer
	for _, pt := range [][4]float32{{1, 2, 3, 0.5}, {4, 5, 6, 0.9}} {
		for _, v := range pt {
			putFloat32(&buf, v)
		}
	}

	fs := fsutil.NewMemoryFileSystem()
	fs.WriteFile("/data/scene.001.bin", buf.Bytes())
	r := NewFileReaderFS(fs)

	points, err := r.ReadPointCloud("/data/scene.001.bin")
	if err != nil {
		t.Fatalf("ReadPointCloud: %v", err)
	}
	want := [][3]float32{{1, 2, 3}, {4, 5, 6}}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeBinBadLength(t *testing.T) {
	if _, err := decodeBin(make([]byte, 10)); !errors.Is(err, ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

func TestDecodeBinEmpty(t *testing.T) {
	points, err := decodeBin(nil)
	if err != nil {
		t.Fatalf("decodeBin: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected 0 points, got %d", len(points))
	}
}
