package samplecache

import (
	"encoding/binary"
	"math"
)

// PointSize is the encoded size of one point: three little-endian float32s.
const PointSize = 12

// maxBlobPoints caps how many points a blob read back from the database may
// claim, so a corrupt row cannot demand an arbitrarily large allocation.
const maxBlobPoints = 4_000_000

// EncodePointBlob packs XYZ points into a compact binary blob.
func EncodePointBlob(points [][3]float32) []byte {
	blob := make([]byte, len(points)*PointSize)
	for i, pt := range points {
		offset := i * PointSize
		binary.LittleEndian.PutUint32(blob[offset:], math.Float32bits(pt[0]))
		binary.LittleEndian.PutUint32(blob[offset+4:], math.Float32bits(pt[1]))
		binary.LittleEndian.PutUint32(blob[offset+8:], math.Float32bits(pt[2]))
	}
	return blob
}

// DecodePointBlob unpacks a blob produced by EncodePointBlob. Returns nil if
// the blob length is not a whole number of points or exceeds the point cap.
func DecodePointBlob(blob []byte) [][3]float32 {
	if len(blob)%PointSize != 0 {
		return nil
	}
	numPoints := len(blob) / PointSize
	if numPoints > maxBlobPoints {
		return nil
	}

	points := make([][3]float32, numPoints)
	for i := range points {
		offset := i * PointSize
		points[i][0] = math.Float32frombits(binary.LittleEndian.Uint32(blob[offset:]))
		points[i][1] = math.Float32frombits(binary.LittleEndian.Uint32(blob[offset+4:]))
		points[i][2] = math.Float32frombits(binary.LittleEndian.Uint32(blob[offset+8:]))
	}
	return points
}
