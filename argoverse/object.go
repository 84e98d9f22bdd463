package argoverse

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/rick-mukherjee-z/Open3D-ML/bbox"
)

// Object3D is a decoded, oriented 3D bounding box derived from a RawBox.
// It holds a geometric box value rather than extending one; the box frame is
// reachable through Box.
type Object3D struct {
	box bbox.GeometricBox

	// Name is the annotation's label class string.
	Name string

	// ClassID is Name resolved through the class table (0 for unknown).
	ClassID int

	// DistanceToOrigin is the euclidean distance from the sensor origin to
	// the box centre.
	DistanceToOrigin float64

	Occlusion  int
	Quaternion [4]float64
	Corners3D  [][3]float64
	Corners2D  [][2]float64
}

// NewObject3D decodes one raw annotation. Ground-truth boxes carry
// confidence 1.0.
func NewObject3D(raw RawBox) *Object3D {
	center := r3.Vec{X: raw.Center[0], Y: raw.Center[1], Z: raw.Center[2]}
	size := [3]float64{raw.Width, raw.Height, raw.Length}
	classID := ClassID(raw.LabelClass)

	ry := headingFromCorners(raw.Corners2D)
	box := bbox.FromHeading(center, size, ry, classID, 1.0)

	return &Object3D{
		box:              box,
		Name:             raw.LabelClass,
		ClassID:          classID,
		DistanceToOrigin: r3.Norm(center),
		Occlusion:        raw.Occlusion,
		Quaternion:       raw.Quaternion,
		Corners3D:        raw.Corners3D,
		Corners2D:        raw.Corners2D,
	}
}

// Box returns the object's geometric box value.
func (o *Object3D) Box() bbox.GeometricBox { return o.box }

// headingFromCorners derives the yaw angle from the first two projected
// corners. Atan2 keeps the result finite when the corners share a
// y-coordinate (yielding ±π/2) and returns 0 for coincident corners, where
// the plain arctangent of the ratio would divide by zero.
func headingFromCorners(corners [][2]float64) float64 {
	if len(corners) < 2 {
		return 0
	}
	return math.Atan2(corners[0][0]-corners[1][0], corners[0][1]-corners[1][1])
}

// DecodeBoxes decodes a scene's annotations in order.
func DecodeBoxes(raw []RawBox) []*Object3D {
	objects := make([]*Object3D, len(raw))
	for i, box := range raw {
		objects[i] = NewObject3D(box)
	}
	return objects
}
