package satchelcfg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "satchelops.yml")

	content := `
version: v1
cluster:
  kubeconfig: ~/.kube/config
  ensureNamespace: true
store:
  dbURL: sqlite:./satchelops.db
storage:
  image: ghcr.io/satchelworks/async-storage:0.1.0
  imagePullPolicy: IfNotPresent
  pvc:
    name: claim-satchel
    quantity: 10Gi
    accessMode: ReadWriteOnce
    storageClassName: standard
    strategy: common
logging:
  format: json
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Version != "v1" {
		t.Errorf("expected version v1, got %s", cfg.Version)
	}
	if cfg.Cluster.Kubeconfig != "~/.kube/config" || !cfg.Cluster.EnsureNamespace {
		t.Errorf("unexpected cluster: %+v", cfg.Cluster)
	}
	if cfg.Store.DBURL != "sqlite:./satchelops.db" {
		t.Errorf("unexpected store: %+v", cfg.Store)
	}
	if cfg.Storage.Image != "ghcr.io/satchelworks/async-storage:0.1.0" {
		t.Errorf("unexpected image: %s", cfg.Storage.Image)
	}
	if cfg.Storage.PVC.Name != "claim-satchel" || cfg.Storage.PVC.Quantity != "10Gi" {
		t.Errorf("unexpected pvc: %+v", cfg.Storage.PVC)
	}
	if cfg.Storage.PVC.StorageClassName != "standard" || cfg.Storage.PVC.Strategy != "common" {
		t.Errorf("unexpected pvc: %+v", cfg.Storage.PVC)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "satchelops.yml")

	content := `
storage:
  image: ghcr.io/satchelworks/async-storage:0.1.0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Version != "v1" {
		t.Errorf("default version = %s, want v1", cfg.Version)
	}
	if cfg.Store.DBURL != DefaultDBURL {
		t.Errorf("default dbURL = %s, want %s", cfg.Store.DBURL, DefaultDBURL)
	}
	if cfg.Storage.PVC.Name != "claim-satchel" || cfg.Storage.PVC.Quantity != "10Gi" {
		t.Errorf("default pvc = %+v", cfg.Storage.PVC)
	}
	if cfg.Storage.PVC.AccessMode != "ReadWriteOnce" || cfg.Storage.PVC.Strategy != "common" {
		t.Errorf("default pvc = %+v", cfg.Storage.PVC)
	}
	if cfg.Logging.Format != "human" || cfg.Logging.Level != "info" {
		t.Errorf("default logging = %+v", cfg.Logging)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	if _, err := Load("/path/does/not/exist.yml"); err == nil {
		t.Fatalf("expected error for missing file, got nil")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yml")

	// invalid YAML (missing closing bracket)
	bad := "version: [1,2\n"
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for invalid YAML, got nil")
	}
}

func TestLoad_InvalidClaimName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad-claim.yml")

	content := `
version: v1
storage:
  image: ghcr.io/satchelworks/async-storage:0.1.0
  pvc:
    name: INVALID
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error, got nil")
	} else if !strings.Contains(err.Error(), "invalid resource name") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadWorkspace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "workspace.yml")

	content := `
id: workspace-a1b2c3
ownerId: owner-7f3d
namespace: workspace-ns
attributes:
  asyncPersist: "true"
  persistVolumes: "false"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	ws, err := LoadWorkspace(path)
	if err != nil {
		t.Fatalf("LoadWorkspace returned error: %v", err)
	}
	if ws.ID != "workspace-a1b2c3" || ws.OwnerID != "owner-7f3d" || ws.Namespace != "workspace-ns" {
		t.Errorf("unexpected workspace: %+v", ws)
	}
	if ws.Attributes["asyncPersist"] != "true" || ws.Attributes["persistVolumes"] != "false" {
		t.Errorf("unexpected attributes: %+v", ws.Attributes)
	}
}
