package provision

import "github.com/satchelworks/satchelops/domain/model"

// Rejection reasons surfaced as warnings and errors.
const (
	reasonStrategyMismatch  = "async storage available only for 'common' PVC strategy"
	reasonEphemeralMismatch = "async storage available only if ephemeral attribute is true"
)

type action int

const (
	actionSkip action = iota
	actionProceed
	actionReject
)

// decision is the validator verdict: skip silently, proceed, or reject
// with a reason.
type decision struct {
	action action
	reason string
}

// validate gates provisioning on the workspace attributes. Async storage
// must be requested explicitly, requires the shared-claim strategy, and is
// meaningless unless the workspace runs on ephemeral storage.
func validate(attrs map[string]string, pvcStrategy string) decision {
	if !model.AsyncPersistRequested(attrs) {
		return decision{action: actionSkip}
	}
	if pvcStrategy != CommonPVCStrategy {
		return decision{action: actionReject, reason: reasonStrategyMismatch}
	}
	if !model.IsEphemeral(attrs) {
		return decision{action: actionReject, reason: reasonEphemeralMismatch}
	}
	return decision{action: actionProceed}
}
