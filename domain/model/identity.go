package model

// RuntimeIdentity identifies one workspace runtime: the workspace itself,
// the user who started it, and the cluster namespace the runtime occupies.
// The scheduler supplies it when a workspace starts; provisioners treat it
// as read only.
type RuntimeIdentity struct {
	WorkspaceID string `json:"workspaceId" yaml:"workspaceId"` // Workspace ID.
	OwnerID     string `json:"ownerId" yaml:"ownerId"`         // ID of the user who owns the workspace.
	Namespace   string `json:"namespace" yaml:"namespace"`     // Cluster namespace hosting the runtime.
}
