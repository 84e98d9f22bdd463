// Package dataset defines the uniform iteration surface the perception
// pipeline consumes. A Dataset exposes named splits; a Split exposes
// index-addressable decoded samples and their attributes.
package dataset

import "github.com/rick-mukherjee-z/Open3D-ML/bbox"

// Config carries the framework configuration passed through to dataset
// constructors.
type Config struct {
	// DatasetPath is the root directory holding the raw dataset files.
	// Paths stored in split indices may already be absolute, in which case
	// they are used as-is.
	DatasetPath string

	// InfoPath is the directory holding the prebuilt per-split index files.
	InfoPath string

	// Name overrides the dataset's default display name when non-empty.
	Name string

	// CacheDir is where decoded samples are cached when UseCache is set.
	CacheDir string

	// UseCache enables the decoded-sample cache.
	UseCache bool
}

// BoundingBox is implemented by dataset-specific decoded 3D objects. The
// geometric core is exposed through an explicit accessor so that consumers
// can work with box frames without knowing the dataset's object type.
type BoundingBox interface {
	Box() bbox.GeometricBox
}

// Sample is one fully decoded scene.
type Sample struct {
	// Point holds the XYZ coordinates of every point in the scene.
	Point [][3]float32

	// Feat holds optional per-point features. Nil for datasets that
	// provide geometry only.
	Feat [][]float32

	// Calib holds optional named calibration vectors. Nil for datasets
	// without calibration data.
	Calib map[string][]float64

	// BoundingBoxes holds the annotated objects in the scene, in
	// annotation order.
	BoundingBoxes []BoundingBox
}

// Attribute identifies a sample without decoding it.
type Attribute struct {
	Name  string // filename stem of the lidar file
	Path  string // lidar file path as recorded in the split index
	Split string // split name the sample was addressed through
}

// Split presents one dataset partition as an index-addressable collection.
// Implementations are read-only after construction and safe for concurrent
// readers.
type Split interface {
	// Len returns the number of addressable scenes.
	Len() int

	// Data decodes and returns the sample at index i.
	Data(i int) (*Sample, error)

	// Attr returns the lightweight attribute record for index i.
	Attr(i int) (*Attribute, error)
}

// Dataset is the contract every dataset adapter satisfies.
type Dataset interface {
	// Name returns the dataset's display name.
	Name() string

	// LabelNames returns the class-id to class-name table.
	LabelNames() map[int]string

	// GetSplit returns a view over the named split.
	GetSplit(split string) (Split, error)

	// IsTested reports whether a test result has already been stored for
	// the given sample. Adapters without a result store return
	// ErrNotSupported.
	IsTested(attr *Attribute) (bool, error)

	// SaveTestResult persists an inference result for the given sample.
	// Adapters without a result store return ErrNotSupported.
	SaveTestResult(results any, attr *Attribute) error
}
