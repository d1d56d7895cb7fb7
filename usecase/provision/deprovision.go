package provision

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/satchelworks/satchelops/adapters/kube"
	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/internal/logging"
	"github.com/satchelworks/satchelops/internal/naming"
)

// DeprovisionInput identifies the namespace to tear down.
type DeprovisionInput struct {
	Identity *model.RuntimeIdentity `json:"identity"`
	// PurgeData also deletes the shared volume claim. Without it the claim
	// and its data survive for the next provisioning pass.
	PurgeData bool `json:"purgeData,omitempty"`
}

// DeprovisionOutput reports how many resources were deleted.
type DeprovisionOutput struct {
	Deleted int `json:"deleted"`
}

// Deprovision removes the async storage resources of a namespace by label
// selector. SSH pairs are owner scoped and shared across namespaces, so the
// store is left untouched.
func (u *UseCase) Deprovision(ctx context.Context, in *DeprovisionInput) (*DeprovisionOutput, error) {
	logger := logging.FromContext(ctx)
	if in == nil || in.Identity == nil {
		return nil, fmt.Errorf("identity is required")
	}
	id := in.Identity
	if err := naming.ValidateNamespaceName(id.Namespace); err != nil {
		return nil, err
	}
	if id.OwnerID == "" {
		return nil, fmt.Errorf("owner id is required")
	}

	selector := labels.Set(storageLabels(id.OwnerID)).String()
	targets := kube.StorageDeleteTargets(in.PurgeData)
	deleted, err := u.Kube.DeleteByLabelSelector(ctx, id.Namespace, targets, selector, nil)
	if err != nil {
		return nil, fmt.Errorf("delete storage resources: %w", err)
	}
	logger.Info(ctx, "async storage deprovisioned",
		"namespace", id.Namespace, "deleted", deleted, "purgeData", in.PurgeData)
	return &DeprovisionOutput{Deleted: deleted}, nil
}
