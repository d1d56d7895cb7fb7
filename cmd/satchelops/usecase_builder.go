package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/satchelworks/satchelops/adapters/kube"
	"github.com/satchelworks/satchelops/config/satchelcfg"
	"github.com/satchelworks/satchelops/usecase/provision"
	"github.com/satchelworks/satchelops/usecase/sshkey"
)

// getConfigPath extracts the config flag value from the command hierarchy.
func getConfigPath(cmd *cobra.Command) string {
	if f := findFlag(cmd, "config"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return satchelcfg.DefaultFileName
}

// loadConfig reads and validates the config file.
func loadConfig(cmd *cobra.Command) (*satchelcfg.Root, error) {
	return satchelcfg.Load(getConfigPath(cmd))
}

// loadConfigOptional is loadConfig for commands that can run without a
// config file. A missing file yields (nil, nil) unless --config was set
// explicitly.
func loadConfigOptional(cmd *cobra.Command) (*satchelcfg.Root, error) {
	cfg, err := satchelcfg.Load(getConfigPath(cmd))
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		if f := findFlag(cmd, "config"); f == nil || !f.Changed {
			return nil, nil
		}
	}
	return cfg, err
}

// expandHome resolves a leading ~/ against the user home directory.
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// buildKubeClient connects to the cluster selected by --kubeconfig, then
// cluster.kubeconfig in the config file, then the standard loading rules.
func buildKubeClient(cmd *cobra.Command, cfg *satchelcfg.Root) (*kube.Client, error) {
	path := ""
	if cfg != nil {
		path = cfg.Cluster.Kubeconfig
	}
	if f := findFlag(cmd, "kubeconfig"); f != nil && f.Changed {
		path = f.Value.String()
	}
	if path != "" {
		return kube.NewClientFromKubeconfigPath(cmd.Context(), expandHome(path), nil)
	}
	return kube.NewClientFromDefaultKubeconfig(cmd.Context(), nil)
}

// settingsFromConfig maps the validated config onto orchestrator settings.
func settingsFromConfig(cfg *satchelcfg.Root) (provision.Settings, error) {
	quantity, err := resource.ParseQuantity(cfg.Storage.PVC.Quantity)
	if err != nil {
		return provision.Settings{}, fmt.Errorf("storage.pvc.quantity: %w", err)
	}
	return provision.Settings{
		Image:           cfg.Storage.Image,
		ImagePullPolicy: corev1.PullPolicy(cfg.Storage.ImagePullPolicy),
		PVCStrategy:     cfg.Storage.PVC.Strategy,
		PVCName:         cfg.Storage.PVC.Name,
		PVCQuantity:     quantity,
		PVCAccessMode:   corev1.PersistentVolumeAccessMode(cfg.Storage.PVC.AccessMode),
		StorageClass:    cfg.Storage.PVC.StorageClassName,
		EnsureNamespace: cfg.Cluster.EnsureNamespace,
	}, nil
}

// buildSSHKeyUseCase creates the sshkey use case with the configured store.
func buildSSHKeyUseCase(cmd *cobra.Command) (*sshkey.UseCase, error) {
	cfg, err := loadConfigOptional(cmd)
	if err != nil {
		return nil, err
	}
	repo, err := buildSSHPairRepository(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return &sshkey.UseCase{Repo: repo}, nil
}

// buildProvisionUseCase creates the provisioning orchestrator from the
// config file, the cluster client and the SSH pair store.
func buildProvisionUseCase(cmd *cobra.Command) (*provision.UseCase, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	settings, err := settingsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	client, err := buildKubeClient(cmd, cfg)
	if err != nil {
		return nil, err
	}
	repo, err := buildSSHPairRepository(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return &provision.UseCase{
		Kube:     client,
		Keys:     &sshkey.UseCase{Repo: repo},
		Settings: settings,
	}, nil
}
