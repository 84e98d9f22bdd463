package argoverse

import "github.com/rick-mukherjee-z/Open3D-ML/dataset"

// Register wires the Argoverse catalog into a dataset registry under the
// name "Argoverse". The composing application calls this once during setup;
// nothing registers itself at import time.
func Register(r *dataset.Registry) error {
	return r.Register(DatasetName, func(cfg dataset.Config) (dataset.Dataset, error) {
		return New(cfg)
	})
}
