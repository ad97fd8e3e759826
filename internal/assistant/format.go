package assistant

import (
	"fmt"
	"time"

	"securehome/server/internal/interfaces"
)

// visitorTimeLayout mirrors the timestamp format shown in the dashboard log.
const visitorTimeLayout = "2006-01-02 15:04:05"

// FormatVisitor renders one visitor record as the fixed log line used in
// every deterministic reply.
func FormatVisitor(v interfaces.VisitorRecord, loc *time.Location) string {
	return fmt.Sprintf("• %s — %s (Purpose: %s, ID: %d)",
		v.Name, v.Timestamp.In(loc).Format(visitorTimeLayout), v.Purpose, v.ID)
}
