package game

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestForfeitFiresAfterWindow(t *testing.T) {
	r := NewForfeitRegistry(20 * time.Millisecond)
	fired := make(chan string, 1)

	ok := r.Schedule("alice", "game_1", 1, func(sessionID string, winnerSlot int) {
		if winnerSlot != 1 {
			t.Errorf("expected winner slot 1, got %d", winnerSlot)
		}
		fired <- sessionID
	})
	if !ok {
		t.Fatal("schedule rejected a fresh timer")
	}

	select {
	case id := <-fired:
		if id != "game_1" {
			t.Fatalf("fired for wrong session %s", id)
		}
	case <-time.After(time.Second):
		t.Fatal("forfeit never fired")
	}
	if r.Has("alice") {
		t.Fatal("registry entry survived the fire")
	}
}

func TestCancelStopsForfeit(t *testing.T) {
	r := NewForfeitRegistry(20 * time.Millisecond)
	var fired atomic.Int32

	r.Schedule("alice", "game_1", 1, func(string, int) { fired.Add(1) })

	sessionID, ok := r.Cancel("alice")
	if !ok || sessionID != "game_1" {
		t.Fatalf("cancel returned (%q, %v)", sessionID, ok)
	}

	time.Sleep(60 * time.Millisecond)
	if fired.Load() != 0 {
		t.Fatal("cancelled forfeit still fired")
	}
}

func TestAtMostOneTimerPerUsername(t *testing.T) {
	r := NewForfeitRegistry(time.Hour)
	if !r.Schedule("alice", "game_1", 1, func(string, int) {}) {
		t.Fatal("first schedule rejected")
	}
	if r.Schedule("alice", "game_2", 0, func(string, int) {}) {
		t.Fatal("second schedule for the same username accepted")
	}

	sessionID, ok := r.Cancel("alice")
	if !ok || sessionID != "game_1" {
		t.Fatalf("cancel returned (%q, %v), want the original timer", sessionID, ok)
	}
}

func TestCancelUnknownUsername(t *testing.T) {
	r := NewForfeitRegistry(time.Hour)
	if _, ok := r.Cancel("nobody"); ok {
		t.Fatal("cancel succeeded for unknown username")
	}
}
