package model

import "time"

// SSHPair is a named SSH key pair owned by a user and scoped to a usage
// area. Pairs with scope "internal" serve machine-to-machine channels such
// as the rsync link between a workspace and its storage pod.
type SSHPair struct {
	ID         string    `json:"id"`                  // Store-assigned unique ID.
	OwnerID    string    `json:"ownerId"`             // ID of the owning user.
	Scope      string    `json:"scope"`               // Usage area, e.g. "internal".
	Name       string    `json:"name"`                // Pair name, unique per owner and scope.
	PublicKey  string    `json:"publicKey,omitempty"` // authorized_keys line without trailing newline.
	PrivateKey string    `json:"-"`                   // PEM-encoded private key. Never serialized.
	CreatedAt  time.Time `json:"createdAt,omitempty"` // Creation timestamp (UTC).
	UpdatedAt  time.Time `json:"updatedAt,omitempty"` // Last update timestamp (UTC).
}
