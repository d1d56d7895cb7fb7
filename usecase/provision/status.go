package provision

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/internal/naming"
)

// StatusInput identifies the namespace to inspect.
type StatusInput struct {
	Identity *model.RuntimeIdentity `json:"identity"`
}

// ResourceStatus reports presence of a single storage resource.
type ResourceStatus struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

// StatusOutput reports the converged state of the storage resource set.
type StatusOutput struct {
	Claim     ResourceStatus `json:"claim"`
	ConfigMap ResourceStatus `json:"configMap"`
	Pod       ResourceStatus `json:"pod"`
	Service   ResourceStatus `json:"service"`
	// PodPhase is the storage pod phase when the pod exists.
	PodPhase string `json:"podPhase,omitempty"`
	// Ready is true when all resources exist and the pod is running.
	Ready bool `json:"ready"`
}

// Status inspects the namespace for the async storage resource set without
// mutating anything.
func (u *UseCase) Status(ctx context.Context, in *StatusInput) (*StatusOutput, error) {
	if in == nil || in.Identity == nil {
		return nil, fmt.Errorf("identity is required")
	}
	ns := in.Identity.Namespace
	if err := naming.ValidateNamespaceName(ns); err != nil {
		return nil, err
	}

	out := &StatusOutput{
		Claim:     ResourceStatus{Name: u.Settings.PVCName},
		ConfigMap: ResourceStatus{Name: ConfigName(ns)},
		Pod:       ResourceStatus{Name: StorageResourceName},
		Service:   ResourceStatus{Name: StorageResourceName},
	}
	_, found, err := u.Kube.GetPersistentVolumeClaim(ctx, ns, u.Settings.PVCName)
	if err != nil {
		return nil, fmt.Errorf("get volume claim: %w", err)
	}
	out.Claim.Exists = found

	_, found, err = u.Kube.GetConfigMap(ctx, ns, ConfigName(ns))
	if err != nil {
		return nil, fmt.Errorf("get config map: %w", err)
	}
	out.ConfigMap.Exists = found

	pod, found, err := u.Kube.GetPod(ctx, ns, StorageResourceName)
	if err != nil {
		return nil, fmt.Errorf("get storage pod: %w", err)
	}
	out.Pod.Exists = found
	if found {
		out.PodPhase = string(pod.Status.Phase)
	}

	_, found, err = u.Kube.GetService(ctx, ns, StorageResourceName)
	if err != nil {
		return nil, fmt.Errorf("get storage service: %w", err)
	}
	out.Service.Exists = found

	out.Ready = out.Claim.Exists && out.ConfigMap.Exists && out.Pod.Exists &&
		out.Service.Exists && pod != nil && pod.Status.Phase == corev1.PodRunning
	return out, nil
}
