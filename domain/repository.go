// Package domain declares the ports the use cases depend on. Adapters
// under adapters/ provide the implementations.
package domain

import (
	"context"

	"github.com/satchelworks/satchelops/domain/model"
)

// SSHPairRepository persists SSH key pairs. Pair identity is the triple
// (OwnerID, Scope, Name); Create returns model.ErrSSHPairExists when that
// identity is already taken.
type SSHPairRepository interface {
	// Create stores a new pair. Implementations assign ID and timestamps
	// when the caller left them empty.
	Create(ctx context.Context, pair *model.SSHPair) error
	// List returns the pairs owned by ownerID within scope, oldest first.
	List(ctx context.Context, ownerID, scope string) ([]*model.SSHPair, error)
	// Delete removes the named pair. Returns model.ErrSSHPairNotFound when
	// no such pair exists.
	Delete(ctx context.Context, ownerID, scope, name string) error
}
