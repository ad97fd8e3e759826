package storage

import (
	"context"
	"testing"
)

func TestMemoryVisitorStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryVisitorStore()

	if rec, err := s.GetLastVisitor(ctx); err != nil || rec != nil {
		t.Fatalf("GetLastVisitor on empty store = %v, %v; want nil, nil", rec, err)
	}

	first, err := s.LogVisitor(ctx, "Alice", "Delivery")
	if err != nil {
		t.Fatalf("LogVisitor: %v", err)
	}
	second, err := s.LogVisitor(ctx, "Bob", "Maintenance")
	if err != nil {
		t.Fatalf("LogVisitor: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("IDs = %d, %d; want 1, 2", first.ID, second.ID)
	}

	last, err := s.GetLastVisitor(ctx)
	if err != nil {
		t.Fatalf("GetLastVisitor: %v", err)
	}
	if last == nil || last.Name != "Bob" {
		t.Errorf("last visitor = %+v, want Bob", last)
	}

	all, err := s.GetAllVisitors(ctx)
	if err != nil {
		t.Fatalf("GetAllVisitors: %v", err)
	}
	if len(all) != 2 || all[0].Name != "Bob" || all[1].Name != "Alice" {
		t.Errorf("GetAllVisitors = %+v, want most recent first", all)
	}
}

func TestMemoryVisitorStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryVisitorStore()

	s.LogVisitor(ctx, "Alice", "Delivery")
	s.LogVisitor(ctx, "Bob", "Maintenance")

	deleted, err := s.ClearVisitors(ctx)
	if err != nil {
		t.Fatalf("ClearVisitors: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	all, _ := s.GetAllVisitors(ctx)
	if len(all) != 0 {
		t.Errorf("store should be empty after clear, got %d records", len(all))
	}

	// IDs continue after a clear
	rec, _ := s.LogVisitor(ctx, "Carol", "Plumbing")
	if rec.ID != 3 {
		t.Errorf("ID after clear = %d, want 3", rec.ID)
	}
}
