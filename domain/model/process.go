package model

// ProcessSubscribeResponse acknowledges a subscription to the output
// events of a process running inside a workspace. Pure data carrier for
// the workspace events channel.
type ProcessSubscribeResponse struct {
	Pid        int    `json:"pid"`                  // Process ID the subscription is bound to.
	EventTypes string `json:"eventTypes,omitempty"` // Comma-separated event types subscribed to.
	Text       string `json:"text,omitempty"`       // Human-readable status text.
}
