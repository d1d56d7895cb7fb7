package model

import "errors"

// Defined errors for domain operations.
var (
	ErrWorkspaceConfigInvalid = errors.New("workspace configuration not valid")
	ErrSSHPairNotFound        = errors.New("ssh pair not found")
	ErrSSHPairExists          = errors.New("ssh pair already exists")
	ErrSSHProvisionFailed     = errors.New("ssh key provisioning failed")
)
