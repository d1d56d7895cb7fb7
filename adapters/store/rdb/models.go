package rdb

import "time"

// SSHPairRecord is the RDB persistence model for domain SSHPair.
// Table name: ssh_pairs
type SSHPairRecord struct {
	ID         string    `gorm:"primaryKey;type:text;not null"`
	OwnerID    string    `gorm:"type:text;not null;uniqueIndex:idx_ssh_pairs_identity"`
	Scope      string    `gorm:"type:text;not null;uniqueIndex:idx_ssh_pairs_identity"`
	Name       string    `gorm:"type:text;not null;uniqueIndex:idx_ssh_pairs_identity"`
	PublicKey  string    `gorm:"type:text;not null"`
	PrivateKey string    `gorm:"type:text;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	UpdatedAt  time.Time `gorm:"not null"`
}

func (SSHPairRecord) TableName() string { return "ssh_pairs" }
