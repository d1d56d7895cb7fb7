package model

// Warning is a non-fatal provisioning notice surfaced to the workspace
// owner. Codes are stable identifiers; messages are free text.
type Warning struct {
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// WorkspaceEnvironment is the mutable view of a workspace passed through
// the provisioning chain: its configuration attributes plus the warnings
// accumulated so far. Provisioners only ever append warnings.
type WorkspaceEnvironment struct {
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Warnings   []Warning         `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Attribute returns the named attribute or "" when absent.
func (e *WorkspaceEnvironment) Attribute(name string) string {
	if e == nil || e.Attributes == nil {
		return ""
	}
	return e.Attributes[name]
}

// AddWarning appends a warning to the environment. It never fails.
func (e *WorkspaceEnvironment) AddWarning(code int, message string) {
	e.Warnings = append(e.Warnings, Warning{Code: code, Message: message})
}
