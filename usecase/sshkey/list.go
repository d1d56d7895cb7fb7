package sshkey

import (
	"context"
	"fmt"

	"github.com/satchelworks/satchelops/domain/model"
)

type ListInput struct {
	OwnerID string `json:"owner_id"`
	Scope   string `json:"scope"`
}

type ListOutput struct {
	Pairs []*model.SSHPair `json:"pairs"`
}

// List returns the owner's pairs within scope, oldest first.
func (u *UseCase) List(ctx context.Context, in *ListInput) (*ListOutput, error) {
	if in == nil || in.OwnerID == "" {
		return nil, fmt.Errorf("ListInput.OwnerID is required")
	}
	scope := in.Scope
	if scope == "" {
		scope = InternalScope
	}

	pairs, err := u.Repo.List(ctx, in.OwnerID, scope)
	if err != nil {
		return nil, fmt.Errorf("list ssh pairs: %w", err)
	}
	return &ListOutput{Pairs: pairs}, nil
}
