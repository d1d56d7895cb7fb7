// Package satchelcfg defines the configuration schema (structs) for
// satchelops.yml. This package is intended for YAML -> struct
// deserialization; loading and validation helpers live alongside in
// separate files.
package satchelcfg

// DefaultFileName is the config file satchelops looks for in the working
// directory.
const DefaultFileName = "satchelops.yml"

// DefaultDBURL is the SSH pair store used when neither the config file nor
// the --db-url flag selects one.
const DefaultDBURL = "sqlite:./satchelops.db"

// Root is the root structure of satchelops.yml.
type Root struct {
	Version string  `yaml:"version"`
	Cluster Cluster `yaml:"cluster"`
	Store   Store   `yaml:"store"`
	Storage Storage `yaml:"storage"`
	Logging Logging `yaml:"logging"`
}

// Cluster selects the target Kubernetes cluster.
type Cluster struct {
	Kubeconfig      string `yaml:"kubeconfig"`      // kubeconfig path; empty uses the default loading rules
	EnsureNamespace bool   `yaml:"ensureNamespace"` // create the workspace namespace when absent
}

// Store selects the SSH pair store backend.
type Store struct {
	DBURL string `yaml:"dbURL"` // sqlite:<dsn> or memory:
}

// Storage configures the async storage sidecar.
type Storage struct {
	Image           string `yaml:"image"`
	ImagePullPolicy string `yaml:"imagePullPolicy"` // Always, IfNotPresent or Never
	PVC             PVC    `yaml:"pvc"`
}

// PVC configures the shared volume claim.
type PVC struct {
	Name             string `yaml:"name"`
	Quantity         string `yaml:"quantity"`   // e.g. 10Gi
	AccessMode       string `yaml:"accessMode"` // e.g. ReadWriteOnce
	StorageClassName string `yaml:"storageClassName,omitempty"`
	Strategy         string `yaml:"strategy"` // claim allocation strategy
}

// Logging configures CLI log output.
type Logging struct {
	Format string `yaml:"format"` // human, text or json
	Level  string `yaml:"level"`  // debug, info, warn or error
}
