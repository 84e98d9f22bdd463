// Package argoverse adapts the Argoverse 3D object-detection dataset to the
// dataset iteration surface. Prebuilt per-split index files are loaded once
// at catalog construction; samples are decoded on demand from the lidar
// files the indices point at.
package argoverse

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"github.com/rick-mukherjee-z/Open3D-ML/dataset"
	"github.com/rick-mukherjee-z/Open3D-ML/internal/fsutil"
	"github.com/rick-mukherjee-z/Open3D-ML/pcio"
	"github.com/rick-mukherjee-z/Open3D-ML/samplecache"
)

// DatasetName is the name the catalog registers under.
const DatasetName = "Argoverse"

// indexFileExt is the extension of the prebuilt split index files
// (infos_train, infos_val, infos_test).
const indexFileExt = ".cbor"

// Catalog owns the per-split scene indices and the class table. It is
// read-only after construction and safe for concurrent readers.
type Catalog struct {
	cfg    dataset.Config
	fs     fsutil.FileSystem
	reader pcio.Reader
	cache  *samplecache.Cache

	trainInfo []SceneRecord
	valInfo   []SceneRecord
	testInfo  []SceneRecord
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithFileSystem substitutes the filesystem the split indices are read from.
func WithFileSystem(fs fsutil.FileSystem) Option {
	return func(c *Catalog) { c.fs = fs }
}

// WithPointCloudReader substitutes the point-cloud file reader.
func WithPointCloudReader(r pcio.Reader) Option {
	return func(c *Catalog) { c.reader = r }
}

// WithSampleCache attaches a decoded-sample cache. ReadLidar becomes
// read-through/write-through against it.
func WithSampleCache(cache *samplecache.Cache) Option {
	return func(c *Catalog) { c.cache = cache }
}

// New builds a catalog from framework configuration. For each of train, val
// and test it attempts to load infos_<split>.cbor from cfg.InfoPath; a
// missing index file means that split is empty, not an error. When
// cfg.UseCache is set and no cache was supplied, one is opened under
// cfg.CacheDir.
func New(cfg dataset.Config, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		cfg:    cfg,
		fs:     fsutil.OSFileSystem{},
		reader: pcio.NewFileReader(),
	}
	if c.cfg.Name == "" {
		c.cfg.Name = DatasetName
	}
	for _, opt := range opts {
		opt(c)
	}

	var err error
	if c.trainInfo, err = c.loadInfo("train"); err != nil {
		return nil, err
	}
	if c.valInfo, err = c.loadInfo("val"); err != nil {
		return nil, err
	}
	if c.testInfo, err = c.loadInfo("test"); err != nil {
		return nil, err
	}

	if cfg.UseCache && c.cache == nil && cfg.CacheDir != "" {
		cache, err := samplecache.Open(cfg.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("open sample cache: %w", err)
		}
		c.cache = cache
	}

	return c, nil
}

// loadInfo reads one split index. Absent file means an empty split.
func (c *Catalog) loadInfo(split string) ([]SceneRecord, error) {
	path := filepath.Join(c.cfg.InfoPath, "infos_"+split+indexFileExt)
	if !c.fs.Exists(path) {
		return nil, nil
	}
	data, err := c.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read split index %s: %w", path, err)
	}
	var records []SceneRecord
	if err := cbor.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode split index %s: %w", path, err)
	}
	return records, nil
}

// Name returns the dataset's display name.
func (c *Catalog) Name() string { return c.cfg.Name }

// LabelNames returns a copy of the class-id to class-name table.
func (c *Catalog) LabelNames() map[int]string {
	names := make(map[int]string, len(labelNames))
	for id, name := range labelNames {
		names[id] = name
	}
	return names
}

// ClassID resolves a label name through the class table. Unrecognized names
// map to 0.
func (c *Catalog) ClassID(name string) int { return ClassID(name) }

// SplitRecords returns the scene records for a split, normalizing the
// train/training, val/validation and test/testing aliases. Any other name
// fails with dataset.ErrInvalidSplit.
func (c *Catalog) SplitRecords(split string) ([]SceneRecord, error) {
	switch split {
	case "train", "training":
		return c.trainInfo, nil
	case "val", "validation":
		return c.valInfo, nil
	case "test", "testing":
		return c.testInfo, nil
	}
	return nil, fmt.Errorf("%w: %q", dataset.ErrInvalidSplit, split)
}

// GetSplit returns an index-addressable view over the named split.
func (c *Catalog) GetSplit(split string) (dataset.Split, error) {
	return NewSplit(c, split)
}

// ReadLidar decodes the point cloud at the given path, resolving relative
// paths against the dataset root. With a cache attached, decoded points are
// served from and written back to it; cache failures are logged and the
// decode proceeds without it.
func (c *Catalog) ReadLidar(path string) ([][3]float32, error) {
	resolved := c.resolvePath(path)

	if c.cache != nil {
		points, ok, err := c.cache.Get(resolved)
		if err != nil {
			log.Printf("samplecache: %v", err)
		} else if ok {
			return points, nil
		}
	}

	points, err := c.reader.ReadPointCloud(resolved)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(resolved, points); err != nil {
			log.Printf("samplecache: %v", err)
		}
	}
	return points, nil
}

func (c *Catalog) resolvePath(path string) string {
	if filepath.IsAbs(path) || c.cfg.DatasetPath == "" {
		return path
	}
	return filepath.Join(c.cfg.DatasetPath, path)
}

// IsTested reports whether a test result exists for the sample. The
// Argoverse adapter has no result store.
func (c *Catalog) IsTested(*dataset.Attribute) (bool, error) {
	return false, fmt.Errorf("is tested: %w", dataset.ErrNotSupported)
}

// SaveTestResult persists an inference result for the sample. The Argoverse
// adapter has no result store.
func (c *Catalog) SaveTestResult(any, *dataset.Attribute) error {
	return fmt.Errorf("save test result: %w", dataset.ErrNotSupported)
}
