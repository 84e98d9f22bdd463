// Package bbox provides the oriented 3D bounding-box value type shared by
// dataset adapters.
package bbox

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// GeometricBox represents an oriented 3D bounding box described by its
// centre, a frame of three axis vectors, and its extents.
//
// Fields:
//   - Center: box centre (metres, world frame)
//   - Front: axis the box faces along
//   - Up: vertical axis (the world Z-axis for ground-plane datasets)
//   - Left: lateral axis
//   - Size: extents as [width, height, length] (metres)
//   - LabelClass: integer class id assigned by the owning dataset
//   - Confidence: detection confidence; ground-truth boxes use 1.0
type GeometricBox struct {
	Center     r3.Vec
	Front      r3.Vec
	Up         r3.Vec
	Left       r3.Vec
	Size       [3]float64
	LabelClass int
	Confidence float64
}

// New builds a GeometricBox from an explicit frame.
func New(center, front, up, left r3.Vec, size [3]float64, labelClass int, confidence float64) GeometricBox {
	return GeometricBox{
		Center:     center,
		Front:      front,
		Up:         up,
		Left:       left,
		Size:       size,
		LabelClass: labelClass,
		Confidence: confidence,
	}
}

// FromHeading builds a GeometricBox whose frame is derived from a single yaw
// heading around the Z-axis (radians). Up is always the world Z-axis.
func FromHeading(center r3.Vec, size [3]float64, headingRad float64, labelClass int, confidence float64) GeometricBox {
	sin, cos := math.Sincos(headingRad)
	return GeometricBox{
		Center:     center,
		Front:      r3.Vec{X: cos, Y: sin, Z: 0},
		Up:         r3.Vec{X: 0, Y: 0, Z: 1},
		Left:       r3.Vec{X: sin, Y: cos, Z: 0},
		Size:       size,
		LabelClass: labelClass,
		Confidence: confidence,
	}
}

// Width returns the extent perpendicular to the heading.
func (b GeometricBox) Width() float64 { return b.Size[0] }

// Height returns the extent along the Up axis.
func (b GeometricBox) Height() float64 { return b.Size[1] }

// Length returns the extent along the Front axis.
func (b GeometricBox) Length() float64 { return b.Size[2] }
