// Package naming provides centralized generation and validation of names
// used for cluster resources and store records. Keeping the logic here
// allows future changes (length/format) without touching call sites.
package naming

import "fmt"

// UniqueName returns a resource name of the form <prefix>-<id> where id is
// a fresh compact ID. Names generated later sort lexicographically after
// earlier ones with second-level granularity.
func UniqueName(prefix string) (string, error) {
	id, err := NewCompactID()
	if err != nil {
		return "", fmt.Errorf("generate unique name: %w", err)
	}
	return prefix + "-" + id, nil
}
