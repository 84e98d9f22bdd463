package pcio

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Strides for raw ".bin" point records, in bytes. The common lidar export
// layout is four little-endian float32s per point (x, y, z, intensity);
// three-float geometry-only files are also accepted.
const (
	binStrideXYZI = 16
	binStrideXYZ  = 12
)

// decodeBin decodes a headerless float32 point file. Files whose length is
// divisible by both strides are treated as x/y/z/intensity, the layout the
// format is almost always written with.
func decodeBin(data []byte) ([][3]float32, error) {
	var stride int
	switch {
	case len(data)%binStrideXYZI == 0:
		stride = binStrideXYZI
	case len(data)%binStrideXYZ == 0:
		stride = binStrideXYZ
	default:
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of points", ErrFileFormat, len(data))
	}

	points := make([][3]float32, len(data)/stride)
	for i := range points {
		row := data[i*stride:]
		points[i][0] = math.Float32frombits(binary.LittleEndian.Uint32(row[0:]))
		points[i][1] = math.Float32frombits(binary.LittleEndian.Uint32(row[4:]))
		points[i][2] = math.Float32frombits(binary.LittleEndian.Uint32(row[8:]))
	}
	return points, nil
}
