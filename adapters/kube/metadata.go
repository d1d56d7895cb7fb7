package kube

// Centralized label keys used by the kube adapter.
// Keep these constants stable; changes are API-visible in clusters.
const (
	// SatchelDomain is the namespace domain for all Satchel custom labels and annotations.
	SatchelDomain = "satchel.dev"

	LabelAppK8sManagedBy = "app.kubernetes.io/managed-by"

	// LabelAppSelector groups the storage resources of a namespace and is
	// the selector the storage service routes by.
	LabelAppSelector = "app"

	// LabelOwnerID records the user a storage resource belongs to.
	LabelOwnerID = SatchelDomain + "/owner-id"
)

// ManagedByValue is the value stored under LabelAppK8sManagedBy.
const ManagedByValue = "satchelops"
