package sshkey

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"strings"

	"github.com/satchelworks/satchelops/domain/model"
	"github.com/satchelworks/satchelops/internal/logging"
	"golang.org/x/crypto/ssh"
)

type GenerateInput struct {
	OwnerID string `json:"owner_id"`
	Scope   string `json:"scope"`
	Name    string `json:"name"`
}

type GenerateOutput struct {
	Pair *model.SSHPair `json:"pair"`
}

// Generate creates exactly one new key pair under the given identity and
// stores it. A pair with the same (owner, scope, name) identity makes the
// call fail with model.ErrSSHPairExists.
func (u *UseCase) Generate(ctx context.Context, in *GenerateInput) (*GenerateOutput, error) {
	if in == nil || in.OwnerID == "" {
		return nil, fmt.Errorf("GenerateInput.OwnerID is required")
	}
	scope, name := in.Scope, in.Name
	if scope == "" {
		scope = InternalScope
	}
	if name == "" {
		name = DefaultKeyName
	}

	privateKey, publicKey, err := generateKeyPair()
	if err != nil {
		return nil, err
	}

	pair := &model.SSHPair{
		OwnerID:    in.OwnerID,
		Scope:      scope,
		Name:       name,
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}
	if err := u.Repo.Create(ctx, pair); err != nil {
		return nil, fmt.Errorf("store ssh pair: %w", err)
	}

	logging.FromContext(ctx).Info(ctx, "generated ssh pair", "owner", in.OwnerID, "scope", scope, "name", name)
	return &GenerateOutput{Pair: pair}, nil
}

// generateKeyPair returns a PEM-encoded RSA private key and the matching
// public key as a single authorized_keys line without trailing newline.
func generateKeyPair() (string, string, error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return "", "", fmt.Errorf("generate RSA key: %w", err)
	}
	privatePEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("encode public key: %w", err)
	}
	authorized := strings.TrimSuffix(string(ssh.MarshalAuthorizedKey(pub)), "\n")
	return string(privatePEM), authorized, nil
}
