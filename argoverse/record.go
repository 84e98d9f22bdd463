package argoverse

// SceneRecord is one entry of a prebuilt split index: a single lidar capture
// with its annotations. Records are immutable once loaded. Wire names match
// the original Argoverse index builder.
type SceneRecord struct {
	// PointCount is the number of points in the scene's point cloud, as
	// counted at index-build time.
	PointCount int `json:"num_pc"`

	// LidarPath locates the scene's point-cloud file. May be absolute or
	// relative to the dataset root.
	LidarPath string `json:"lidar_path"`

	// Boxes holds the raw per-object annotations, in annotation order.
	Boxes []RawBox `json:"bbox"`
}

// RawBox is the externally pre-parsed annotation for one object. This
// module only reads it.
type RawBox struct {
	LabelClass string       `json:"label_class"`
	Center     [3]float64   `json:"center"`
	Width      float64      `json:"w"`
	Height     float64      `json:"h"`
	Length     float64      `json:"l"`
	Corners2D  [][2]float64 `json:"2d_coord"` // projected-plane corners
	Corners3D  [][3]float64 `json:"3d_coord"`
	Occlusion  int          `json:"occlusion"`
	Quaternion [4]float64   `json:"quaternion"`
}
