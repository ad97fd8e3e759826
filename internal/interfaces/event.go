package interfaces

// Event types published to the dashboard feed.
const (
	EventVisitorDetected = "visitor_detected"
	EventSystemArmed     = "system_armed"
	EventSystemDisarmed  = "system_disarmed"
)

// SecurityEvent is a single dashboard-visible occurrence: a visitor at the
// door, the system changing arm state, and so on.
type SecurityEvent struct {
	Type      string `json:"type"`
	Source    string `json:"source"`
	Message   string `json:"message"`
	VisitorID int64  `json:"visitor_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
}
