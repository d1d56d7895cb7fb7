package sshkey

import (
	"context"
	"fmt"

	"github.com/satchelworks/satchelops/domain/model"
)

type GetOrCreateInput struct {
	OwnerID string `json:"owner_id"`
	Scope   string `json:"scope"`
	Name    string `json:"name"`
}

type GetOrCreateOutput struct {
	Pair *model.SSHPair `json:"pair"`
	// Generated reports whether this call created the pair.
	Generated bool `json:"generated"`
}

// GetOrCreate returns the owner's oldest pair within scope, generating one
// under the given name when the owner has none. A store conflict during
// generation surfaces as an error; there is no silent retry.
func (u *UseCase) GetOrCreate(ctx context.Context, in *GetOrCreateInput) (*GetOrCreateOutput, error) {
	if in == nil || in.OwnerID == "" {
		return nil, fmt.Errorf("GetOrCreateInput.OwnerID is required")
	}
	scope, name := in.Scope, in.Name
	if scope == "" {
		scope = InternalScope
	}
	if name == "" {
		name = DefaultKeyName
	}

	pairs, err := u.Repo.List(ctx, in.OwnerID, scope)
	if err != nil {
		return nil, fmt.Errorf("list ssh pairs: %w", err)
	}
	if len(pairs) > 0 {
		return &GetOrCreateOutput{Pair: pairs[0]}, nil
	}

	out, err := u.Generate(ctx, &GenerateInput{OwnerID: in.OwnerID, Scope: scope, Name: name})
	if err != nil {
		return nil, err
	}
	return &GetOrCreateOutput{Pair: out.Pair, Generated: true}, nil
}
