package satchelcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file from the given path, fills in defaults for
// omitted optional fields, and validates the result.
func Load(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var cfg Root
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *Root) applyDefaults() {
	if r.Version == "" {
		r.Version = "v1"
	}
	if r.Store.DBURL == "" {
		r.Store.DBURL = DefaultDBURL
	}
	if r.Storage.PVC.Name == "" {
		r.Storage.PVC.Name = "claim-satchel"
	}
	if r.Storage.PVC.Quantity == "" {
		r.Storage.PVC.Quantity = "10Gi"
	}
	if r.Storage.PVC.AccessMode == "" {
		r.Storage.PVC.AccessMode = "ReadWriteOnce"
	}
	if r.Storage.PVC.Strategy == "" {
		r.Storage.PVC.Strategy = "common"
	}
	if r.Logging.Format == "" {
		r.Logging.Format = "human"
	}
	if r.Logging.Level == "" {
		r.Logging.Level = "info"
	}
}
