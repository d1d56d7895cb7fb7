package satchelcfg

import (
	"fmt"

	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/satchelworks/satchelops/internal/naming"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if r.Version != "v1" {
		return fmt.Errorf("version: unsupported value %q, want \"v1\"", r.Version)
	}
	if err := r.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := r.Logging.validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (s *Storage) validate() error {
	if s.Image == "" {
		return fmt.Errorf("image is required")
	}
	switch s.ImagePullPolicy {
	case "", "Always", "IfNotPresent", "Never":
	default:
		return fmt.Errorf("imagePullPolicy: invalid value %q", s.ImagePullPolicy)
	}
	if err := s.PVC.validate(); err != nil {
		return fmt.Errorf("pvc: %w", err)
	}
	return nil
}

func (p *PVC) validate() error {
	if err := naming.ValidateResourceName(p.Name); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	q, err := resource.ParseQuantity(p.Quantity)
	if err != nil {
		return fmt.Errorf("quantity: invalid value %q: %w", p.Quantity, err)
	}
	if q.Sign() <= 0 {
		return fmt.Errorf("quantity: must be positive, got %q", p.Quantity)
	}
	switch p.AccessMode {
	case "ReadWriteOnce", "ReadOnlyMany", "ReadWriteMany", "ReadWriteOncePod":
	default:
		return fmt.Errorf("accessMode: invalid value %q", p.AccessMode)
	}
	if p.StorageClassName != "" {
		if err := naming.ValidateResourceName(p.StorageClassName); err != nil {
			return fmt.Errorf("storageClassName: %w", err)
		}
	}
	if p.Strategy == "" {
		return fmt.Errorf("strategy is required")
	}
	return nil
}

func (l *Logging) validate() error {
	switch l.Format {
	case "", "human", "text", "json":
	default:
		return fmt.Errorf("format: invalid value %q", l.Format)
	}
	switch l.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level: invalid value %q", l.Level)
	}
	return nil
}
