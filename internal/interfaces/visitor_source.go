package interfaces

import (
	"context"
	"time"
)

// VisitorRecord is one detected visitor as consumed by the assistant.
type VisitorRecord struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Purpose   string    `json:"purpose"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitorSource is the read-only view of the visitor log. This is the only
// surface the query engine sees.
type VisitorSource interface {
	// GetLastVisitor returns the most recent record, or nil when the log is empty.
	GetLastVisitor(ctx context.Context) (*VisitorRecord, error)

	// GetAllVisitors returns every record, most recent first.
	GetAllVisitors(ctx context.Context) ([]VisitorRecord, error)
}

// VisitorStore adds the write paths used by ingestion and the dashboard.
// The assistant never holds more than the VisitorSource half.
type VisitorStore interface {
	VisitorSource

	// LogVisitor appends one record, stamping it with the current time.
	LogVisitor(ctx context.Context, name, purpose string) (*VisitorRecord, error)

	// ClearVisitors wipes the log and returns the number of rows removed.
	ClearVisitors(ctx context.Context) (int64, error)
}
