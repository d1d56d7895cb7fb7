package provision

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"

	"github.com/satchelworks/satchelops/adapters/kube"
	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/internal/logging"
	"github.com/satchelworks/satchelops/internal/naming"
	"github.com/satchelworks/satchelops/usecase/sshkey"
)

// ProvisionInput carries the runtime identity and workspace environment the
// storage resources are provisioned for.
type ProvisionInput struct {
	Identity    *model.RuntimeIdentity      `json:"identity"`
	Environment *model.WorkspaceEnvironment `json:"environment"`
	// DryRun renders the manifest instead of applying it.
	DryRun bool `json:"dryRun,omitempty"`
}

// ProvisionOutput reports what the provisioning pass did.
type ProvisionOutput struct {
	// Skipped is true when async storage was not requested.
	Skipped bool `json:"skipped"`
	// Created lists resources this call created, in apply order. Resources
	// that already existed are not listed.
	Created []string `json:"created,omitempty"`
	// Manifest holds the rendered objects on a dry run.
	Manifest string `json:"manifest,omitempty"`
}

// Provision gates on the workspace attributes and then converges the
// namespace onto the async storage resource set: shared volume claim,
// key-material config map, storage pod and service. Every step is
// get-or-create, so a rerun after a partial failure finishes the remainder
// without disturbing resources that already exist.
func (u *UseCase) Provision(ctx context.Context, in *ProvisionInput) (*ProvisionOutput, error) {
	logger := logging.FromContext(ctx)
	if in == nil || in.Identity == nil {
		return nil, fmt.Errorf("identity is required")
	}
	if in.Environment == nil {
		return nil, fmt.Errorf("environment is required")
	}
	id := in.Identity
	if err := naming.ValidateNamespaceName(id.Namespace); err != nil {
		return nil, err
	}
	if id.OwnerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	env := in.Environment
	switch d := validate(env.Attributes, u.Settings.PVCStrategy); d.action {
	case actionSkip:
		logger.Debug(ctx, "async storage not requested, skipping",
			"workspace", id.WorkspaceID, "namespace", id.Namespace)
		return &ProvisionOutput{Skipped: true}, nil
	case actionReject:
		env.AddWarning(WarningConfigIncompatible, d.reason)
		return nil, fmt.Errorf("%w: %s", model.ErrWorkspaceConfigInvalid, d.reason)
	}

	if in.DryRun {
		manifest, err := u.renderManifest(ctx, env, id.Namespace, id.OwnerID)
		if err != nil {
			return nil, err
		}
		return &ProvisionOutput{Manifest: manifest}, nil
	}

	out := &ProvisionOutput{}
	if u.Settings.EnsureNamespace {
		if err := u.Kube.EnsureNamespace(ctx, id.Namespace); err != nil {
			return nil, fmt.Errorf("ensure namespace: %w", err)
		}
	}
	created, err := u.ensureClaim(ctx, id.Namespace, id.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("ensure volume claim: %w", err)
	}
	if created {
		out.Created = append(out.Created, "persistentvolumeclaim/"+u.Settings.PVCName)
	}
	created, err = u.ensureConfig(ctx, env, id.Namespace, id.OwnerID)
	if err != nil {
		return nil, err
	}
	if created {
		out.Created = append(out.Created, "configmap/"+ConfigName(id.Namespace))
	}
	created, err = u.ensurePod(ctx, id.Namespace, id.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("ensure storage pod: %w", err)
	}
	if created {
		out.Created = append(out.Created, "pod/"+StorageResourceName)
	}
	created, err = u.ensureService(ctx, id.Namespace, id.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("ensure storage service: %w", err)
	}
	if created {
		out.Created = append(out.Created, "service/"+StorageResourceName)
	}

	logger.Info(ctx, "async storage provisioned",
		"workspace", id.WorkspaceID, "namespace", id.Namespace, "created", out.Created)
	return out, nil
}

// renderManifest resolves key material and renders the full resource set as
// a multi-document manifest. Key material still goes through the store so
// the rendered config map matches what a later real run would create.
func (u *UseCase) renderManifest(ctx context.Context, env *model.WorkspaceEnvironment, namespace, ownerID string) (string, error) {
	keys, err := u.Keys.GetOrCreate(ctx, &sshkey.GetOrCreateInput{
		OwnerID: ownerID,
		Scope:   sshkey.InternalScope,
		Name:    sshkey.DefaultKeyName,
	})
	if err != nil {
		env.AddWarning(WarningSSHKeysUnavailable, fmt.Sprintf("Not able to provision SSH keys. Cause: %v", err))
		return "", fmt.Errorf("%w: %w", model.ErrSSHProvisionFailed, err)
	}
	pod, err := u.buildPod(namespace, ownerID)
	if err != nil {
		return "", err
	}
	objs := []runtime.Object{
		u.buildClaim(namespace, ownerID),
		u.buildConfigMap(namespace, ownerID, keys.Pair.PublicKey),
		pod,
		u.buildService(namespace, ownerID),
	}
	return kube.BuildCleanManifest(objs)
}
