package rdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/satchelworks/satchelops/domain"
	"github.com/satchelworks/satchelops/domain/model"
	"gorm.io/gorm"
)

// SSHPairRepository is a GORM-backed implementation of domain.SSHPairRepository.
type SSHPairRepository struct {
	db *gorm.DB
}

func NewSSHPairRepository(db *gorm.DB) *SSHPairRepository {
	return &SSHPairRepository{db: db}
}

func toRecord(p *model.SSHPair) *SSHPairRecord {
	return &SSHPairRecord{
		ID:         p.ID,
		OwnerID:    p.OwnerID,
		Scope:      p.Scope,
		Name:       p.Name,
		PublicKey:  p.PublicKey,
		PrivateKey: p.PrivateKey,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toModel(r *SSHPairRecord) *model.SSHPair {
	return &model.SSHPair{
		ID:         r.ID,
		OwnerID:    r.OwnerID,
		Scope:      r.Scope,
		Name:       r.Name,
		PublicKey:  r.PublicKey,
		PrivateKey: r.PrivateKey,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (r *SSHPairRepository) Create(ctx context.Context, p *model.SSHPair) error {
	rec := toRecord(p)
	if rec.ID == "" {
		// Generate a unique ID if not provided
		rec.ID = "key-" + uuid.NewString()
		p.ID = rec.ID
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return model.ErrSSHPairExists
		}
		return err
	}
	p.CreatedAt = rec.CreatedAt
	p.UpdatedAt = rec.UpdatedAt
	return nil
}

func (r *SSHPairRepository) List(ctx context.Context, ownerID, scope string) ([]*model.SSHPair, error) {
	var recs []SSHPairRecord
	if err := r.db.WithContext(ctx).Where("owner_id = ? AND scope = ?", ownerID, scope).Order("created_at ASC").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make([]*model.SSHPair, 0, len(recs))
	for i := range recs {
		out = append(out, toModel(&recs[i]))
	}
	return out, nil
}

func (r *SSHPairRepository) Delete(ctx context.Context, ownerID, scope, name string) error {
	res := r.db.WithContext(ctx).Delete(&SSHPairRecord{}, "owner_id = ? AND scope = ? AND name = ?", ownerID, scope, name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.ErrSSHPairNotFound
	}
	return nil
}

// Ensure interface satisfaction.
var _ domain.SSHPairRepository = (*SSHPairRepository)(nil)
