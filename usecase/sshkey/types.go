// Package sshkey manages named SSH key pairs owned by workspace users.
// The pairs authenticate machine-to-machine channels such as the rsync
// link between a workspace and its storage pod.
package sshkey

import "github.com/satchelworks/satchelops/domain"

const (
	// InternalScope groups pairs used for machine-to-machine channels.
	InternalScope = "internal"
	// DefaultKeyName is the pair name used for the file-sync channel.
	DefaultKeyName = "rsync-via-ssh"

	// keyBits is the RSA modulus size for generated pairs.
	keyBits = 2048
)

// UseCase wires the repository needed for SSH key operations.
type UseCase struct {
	Repo domain.SSHPairRepository
}
