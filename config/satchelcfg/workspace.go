package satchelcfg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Workspace describes one workspace start request: the runtime identity and
// the attribute set the provisioning gate inspects. Fields left empty here
// can be supplied on the command line.
type Workspace struct {
	ID         string            `yaml:"id"`
	OwnerID    string            `yaml:"ownerId"`
	Namespace  string            `yaml:"namespace"`
	Attributes map[string]string `yaml:"attributes,omitempty"`
}

// LoadWorkspace reads a workspace descriptor. No validation happens here;
// the provisioning orchestrator checks the merged result.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return &ws, nil
}
