package kube

import (
	"context"
	"testing"
)

func TestStorageDeleteTargets(t *testing.T) {
	tests := []struct {
		name          string
		includeClaims bool
		wantResources []string
	}{
		{
			name:          "keep claims",
			includeClaims: false,
			wantResources: []string{"services", "pods", "configmaps"},
		},
		{
			name:          "purge claims",
			includeClaims: true,
			wantResources: []string{"services", "pods", "configmaps", "persistentvolumeclaims"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := StorageDeleteTargets(tt.includeClaims)
			if len(targets) != len(tt.wantResources) {
				t.Fatalf("expected %d targets, got %d", len(tt.wantResources), len(targets))
			}
			for i, want := range tt.wantResources {
				if targets[i].GVR.Resource != want {
					t.Errorf("target[%d] = %s, want %s", i, targets[i].GVR.Resource, want)
				}
				if !targets[i].Namespaced {
					t.Errorf("target[%d] %s should be namespaced", i, want)
				}
				if targets[i].GVR.Group != "" || targets[i].GVR.Version != "v1" {
					t.Errorf("target[%d] %s has unexpected group/version %s/%s", i, want, targets[i].GVR.Group, targets[i].GVR.Version)
				}
			}
		})
	}
}

func TestDeleteByLabelSelector_RequiresClient(t *testing.T) {
	ctx := context.Background()
	var c *Client
	if _, err := c.DeleteByLabelSelector(ctx, "ns", StorageDeleteTargets(false), "app=x", nil); err == nil {
		t.Fatal("expected error for nil client")
	}
	c = &Client{}
	if _, err := c.DeleteByLabelSelector(ctx, "ns", StorageDeleteTargets(false), "app=x", nil); err == nil {
		t.Fatal("expected error for client without REST config")
	}
}
