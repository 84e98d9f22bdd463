package argoverse

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/rick-mukherjee-z/Open3D-ML/dataset"
)

// Split presents one dataset partition as an index-addressable collection of
// samples. The split's scene records are flattened at construction into
// parallel path and annotation sequences; element i of each refers to the
// same scene. A Split is read-only after construction.
type Split struct {
	catalog *Catalog
	split   string

	numPoints int
	paths     []string
	boxes     [][]RawBox
}

// NewSplit builds a view over the named split. The "Found N pointclouds"
// log line is kept for compatibility with the historical wording: N is the
// total point count across all scenes, not the number of scene files. Use
// Len for the scene count and NumPoints for the total.
func NewSplit(c *Catalog, split string) (*Split, error) {
	records, err := c.SplitRecords(split)
	if err != nil {
		return nil, err
	}

	s := &Split{
		catalog: c,
		split:   split,
		paths:   make([]string, 0, len(records)),
		boxes:   make([][]RawBox, 0, len(records)),
	}
	for _, rec := range records {
		s.numPoints += rec.PointCount
		s.paths = append(s.paths, rec.LidarPath)
		s.boxes = append(s.boxes, rec.Boxes)
	}

	log.Printf("Found %d pointclouds for %s", s.numPoints, split)
	return s, nil
}

// Len returns the number of addressable scenes.
func (s *Split) Len() int { return len(s.paths) }

// NumPoints returns the total point count across all scenes, as recorded in
// the split index.
func (s *Split) NumPoints() int { return s.numPoints }

// Name returns the split name the view was addressed through.
func (s *Split) Name() string { return s.split }

func (s *Split) checkIndex(i int) error {
	if i < 0 || i >= len(s.paths) {
		return fmt.Errorf("%w: %d not in [0, %d)", dataset.ErrIndexOutOfRange, i, len(s.paths))
	}
	return nil
}

// Data decodes the scene at index i: its point cloud and its annotated
// objects. Feat and Calib stay nil; the Argoverse indices carry neither.
func (s *Split) Data(i int) (*dataset.Sample, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}

	points, err := s.catalog.ReadLidar(s.paths[i])
	if err != nil {
		return nil, err
	}

	objects := DecodeBoxes(s.boxes[i])
	boxes := make([]dataset.BoundingBox, len(objects))
	for k, obj := range objects {
		boxes[k] = obj
	}

	return &dataset.Sample{
		Point:         points,
		BoundingBoxes: boxes,
	}, nil
}

// Attr returns the attribute record for index i. Name is the lidar filename
// with directories and everything from the first "." stripped.
func (s *Split) Attr(i int) (*dataset.Attribute, error) {
	if err := s.checkIndex(i); err != nil {
		return nil, err
	}

	path := s.paths[i]
	name := filepath.Base(path)
	if dot := strings.Index(name, "."); dot >= 0 {
		name = name[:dot]
	}

	return &dataset.Attribute{
		Name:  name,
		Path:  path,
		Split: s.split,
	}, nil
}
