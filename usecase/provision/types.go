// Package provision creates the async storage sidecar of a cluster
// namespace: a shared volume claim, a config map carrying the public key of
// the sync channel, the storage pod, and the service in front of it. Every
// step is an idempotent get-or-create so the orchestrator can run on each
// workspace start.
package provision

import (
	"github.com/satchelworks/satchelops/adapters/kube"
	"github.com/satchelworks/satchelops/usecase/sshkey"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
)

// Well-known names and paths of the storage sidecar. These are part of the
// contract with workspace-side sync tooling; do not change them.
const (
	// StorageResourceName names both the storage pod and its service.
	StorageResourceName = "async-storage"
	// configNameSuffix follows the namespace in config map names.
	configNameSuffix = "async-storage-config"
	// AuthorizedKeysKey is the single data entry of the config map and the
	// subPath mounted into the pod.
	AuthorizedKeysKey = "authorized_keys"
	// SyncPort is the TCP port of the rsync-over-SSH channel.
	SyncPort = 2222
	// SyncPortName names the service port.
	SyncPortName = "rsync-port"
	// DataMountPath is where the storage pod mounts the shared claim.
	DataMountPath = "/async-storage"
	// AuthorizedKeysMountPath is where the pod mounts the public key entry.
	AuthorizedKeysMountPath = "/.ssh/authorized_keys"

	dataVolumeName      = "async-storage-data"
	configVolumeName    = "async-storage-config"
	containerNamePrefix = "async-storage"

	memoryRequest = "256Mi"
	memoryLimit   = "512Mi"
)

// CommonPVCStrategy is the only volume claim strategy the feature supports:
// one shared claim per namespace.
const CommonPVCStrategy = "common"

// Warning codes attached to the workspace environment.
const (
	// WarningConfigIncompatible marks attribute combinations the feature
	// rejects.
	WarningConfigIncompatible = 4200
	// WarningSSHKeysUnavailable marks SSH key lookup or generation failures.
	WarningSSHKeysUnavailable = 4210
)

// Settings fixes the storage sidecar parameters at orchestrator
// construction. Values pass through verbatim into resource specs.
type Settings struct {
	// Image is the storage sidecar image reference.
	Image string
	// ImagePullPolicy applies to the sidecar container.
	ImagePullPolicy corev1.PullPolicy
	// PVCStrategy is the configured claim allocation strategy. Anything but
	// CommonPVCStrategy rejects provisioning.
	PVCStrategy string
	// PVCName is the name of the shared claim per namespace.
	PVCName string
	// PVCQuantity is the claim capacity.
	PVCQuantity resource.Quantity
	// PVCAccessMode is the claim access mode.
	PVCAccessMode corev1.PersistentVolumeAccessMode
	// StorageClass selects the claim storage class; empty uses the cluster
	// default.
	StorageClass string
	// EnsureNamespace creates the target namespace before provisioning.
	EnsureNamespace bool
}

// UseCase wires the cluster client, the key manager, and the fixed
// settings for provisioning operations.
type UseCase struct {
	Kube     *kube.Client
	Keys     *sshkey.UseCase
	Settings Settings
}

// ConfigName returns the config map name for a namespace. The namespace
// prefix keeps the name unique across namespaces sharing a cluster-wide
// inventory.
func ConfigName(namespace string) string {
	return namespace + configNameSuffix
}

// storageLabels returns the labels attached to every storage resource.
// LabelAppSelector doubles as the service selector.
func storageLabels(ownerID string) map[string]string {
	return map[string]string{
		kube.LabelAppSelector:     StorageResourceName,
		kube.LabelOwnerID:         ownerID,
		kube.LabelAppK8sManagedBy: kube.ManagedByValue,
	}
}
