package sshkey

import (
	"context"
	"fmt"

	"github.com/satchelworks/satchelops/internal/logging"
)

type DeleteInput struct {
	OwnerID string `json:"owner_id"`
	Scope   string `json:"scope"`
	Name    string `json:"name"`
}

type DeleteOutput struct{}

// Delete removes the named pair. Fails with model.ErrSSHPairNotFound when
// the pair does not exist.
func (u *UseCase) Delete(ctx context.Context, in *DeleteInput) (*DeleteOutput, error) {
	if in == nil || in.OwnerID == "" {
		return nil, fmt.Errorf("DeleteInput.OwnerID is required")
	}
	if in.Name == "" {
		return nil, fmt.Errorf("DeleteInput.Name is required")
	}
	scope := in.Scope
	if scope == "" {
		scope = InternalScope
	}

	if err := u.Repo.Delete(ctx, in.OwnerID, scope, in.Name); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info(ctx, "deleted ssh pair", "owner", in.OwnerID, "scope", scope, "name", in.Name)
	return &DeleteOutput{}, nil
}
