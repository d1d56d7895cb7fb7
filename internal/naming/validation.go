package naming

import (
	"fmt"
	"strings"

	utilvalidation "k8s.io/apimachinery/pkg/util/validation"
)

const (
	namespaceNameMaxLength = 63
	resourceNameMaxLength  = 63
)

func validateDNS1123Label(name string, maximum int, labelKind string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", labelKind)
	}
	if len(name) > maximum {
		return fmt.Errorf("%s name exceeds %d characters", labelKind, maximum)
	}
	if errs := utilvalidation.IsDNS1123Label(name); len(errs) > 0 {
		return fmt.Errorf("invalid %s name: %s", labelKind, strings.Join(errs, ", "))
	}
	return nil
}

// ValidateNamespaceName checks that name is usable as a cluster namespace.
func ValidateNamespaceName(name string) error {
	return validateDNS1123Label(name, namespaceNameMaxLength, "namespace")
}

// ValidateResourceName checks that name is usable as a namespaced resource
// name, e.g. a volume claim.
func ValidateResourceName(name string) error {
	return validateDNS1123Label(name, resourceNameMaxLength, "resource")
}
