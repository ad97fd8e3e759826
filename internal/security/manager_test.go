package security

import (
	"testing"
	"time"
)

func TestManagerArmDisarm(t *testing.T) {
	m := NewManager("standard")

	if m.IsArmed() {
		t.Fatal("new manager should start disarmed")
	}

	if !m.Arm("away") {
		t.Error("arming a disarmed system should report a change")
	}
	if !m.IsArmed() {
		t.Error("system should be armed")
	}

	if m.Arm("away") {
		t.Error("re-arming with the same mode should be a no-op")
	}
	if !m.Arm("home") {
		t.Error("arming with a different mode should re-arm in place")
	}

	status, mode, _ := m.State()
	if status != StatusArmed || mode != "home" {
		t.Errorf("State() = %v, %q; want armed, home", status, mode)
	}

	if !m.Disarm() {
		t.Error("disarming an armed system should report a change")
	}
	if m.Disarm() {
		t.Error("disarming twice should be a no-op")
	}
}

func TestManagerDefaultMode(t *testing.T) {
	m := NewManager("")

	_, mode, _ := m.State()
	if mode != DefaultMode {
		t.Errorf("initial mode = %q, want %q", mode, DefaultMode)
	}

	m.Arm("")
	_, mode, _ = m.State()
	if mode != DefaultMode {
		t.Errorf("mode after empty arm = %q, want %q", mode, DefaultMode)
	}
}

func TestManagerSince(t *testing.T) {
	now := time.Date(2025, 11, 19, 12, 0, 0, 0, time.UTC)
	m := NewManager("standard")
	m.clock = func() time.Time { return now }

	_, _, since := m.State()
	if !since.IsZero() {
		t.Error("since should be zero before the first change")
	}

	m.Arm("away")
	_, _, since = m.State()
	if !since.Equal(now) {
		t.Errorf("since = %v, want %v", since, now)
	}

	later := now.Add(time.Hour)
	m.clock = func() time.Time { return later }
	m.Disarm()
	_, _, since = m.State()
	if !since.Equal(later) {
		t.Errorf("since after disarm = %v, want %v", since, later)
	}
}
