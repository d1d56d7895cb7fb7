package model

import "strings"

// Workspace configuration attribute names.
const (
	// AttrAsyncPersist asks for out-of-band persistence of workspace files
	// when the workspace itself runs on ephemeral storage.
	AttrAsyncPersist = "asyncPersist"
	// AttrPersistVolumes controls whether workspace volumes are backed by
	// persistent claims. The literal value "false" marks the workspace
	// ephemeral.
	AttrPersistVolumes = "persistVolumes"
)

// AsyncPersistRequested reports whether the attributes request async
// storage. Only the case-insensitive literal "true" enables it; anything
// else, including absence, means off.
func AsyncPersistRequested(attrs map[string]string) bool {
	return strings.EqualFold(attrs[AttrAsyncPersist], "true")
}

// IsEphemeral reports whether the workspace runs without persistent
// volumes. Only the exact value "false" counts; absence or any other
// value leaves the workspace persistent.
func IsEphemeral(attrs map[string]string) bool {
	return attrs[AttrPersistVolumes] == "false"
}
