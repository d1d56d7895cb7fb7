// Package inmem provides thread-safe in-memory repository implementations
// for tests and ephemeral runs where nothing should touch disk.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/satchelworks/satchelops/domain"
	"github.com/satchelworks/satchelops/domain/model"
)

// SSHPairRepository is a thread-safe in-memory implementation.
type SSHPairRepository struct {
	mu    sync.RWMutex
	pairs map[string]*model.SSHPair
	seq   int64
}

func NewSSHPairRepository() *SSHPairRepository {
	return &SSHPairRepository{
		pairs: make(map[string]*model.SSHPair),
	}
}

func (r *SSHPairRepository) nextID() string {
	r.seq++
	return fmt.Sprintf("key-%d-%d", time.Now().UnixNano(), r.seq)
}

func (r *SSHPairRepository) Create(_ context.Context, p *model.SSHPair) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.pairs {
		if v.OwnerID == p.OwnerID && v.Scope == p.Scope && v.Name == p.Name {
			return model.ErrSSHPairExists
		}
	}
	if p.ID == "" {
		p.ID = r.nextID()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	// Copy to avoid external mutation.
	cp := *p
	r.pairs[p.ID] = &cp
	return nil
}

func (r *SSHPairRepository) List(_ context.Context, ownerID, scope string) ([]*model.SSHPair, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.SSHPair, 0)
	for _, v := range r.pairs {
		if v.OwnerID == ownerID && v.Scope == scope {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *SSHPairRepository) Delete(_ context.Context, ownerID, scope, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.pairs {
		if v.OwnerID == ownerID && v.Scope == scope && v.Name == name {
			delete(r.pairs, id)
			return nil
		}
	}
	return model.ErrSSHPairNotFound
}

// Compile-time assertion.
var _ domain.SSHPairRepository = (*SSHPairRepository)(nil)
