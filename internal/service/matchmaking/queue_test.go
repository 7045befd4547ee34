package matchmaking

import (
	"testing"
	"time"
)

func TestEnqueuePairsTwoOldest(t *testing.T) {
	q := NewQueue(time.Hour)
	q.Enqueue("c1", "alice")
	q.Enqueue("c2", "bob")

	select {
	case m := <-q.Matches():
		if m.VsBot {
			t.Fatal("expected human pairing, got bot match")
		}
		if m.Player1.Username != "alice" || m.Player2.Username != "bob" {
			t.Fatalf("expected alice vs bob in FIFO order, got %s vs %s",
				m.Player1.Username, m.Player2.Username)
		}
	case <-time.After(time.Second):
		t.Fatal("no match emitted for two waiting players")
	}

	if q.Len() != 0 {
		t.Fatalf("queue not drained, %d left", q.Len())
	}
}

func TestLonePlayerFallsBackToBot(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	q.Enqueue("c1", "alice")

	select {
	case m := <-q.Matches():
		if !m.VsBot {
			t.Fatal("expected bot match")
		}
		if m.Player1.Username != "alice" {
			t.Fatalf("expected alice, got %s", m.Player1.Username)
		}
	case <-time.After(time.Second):
		t.Fatal("bot fallback never fired")
	}
}

func TestPairingCancelsBotFallback(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	q.Enqueue("c1", "alice")
	q.Enqueue("c2", "bob")

	<-q.Matches()

	select {
	case m := <-q.Matches():
		t.Fatalf("unexpected second match: %+v", m)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestRemovePurgesEntryAndTimer(t *testing.T) {
	q := NewQueue(20 * time.Millisecond)
	q.Enqueue("c1", "alice")

	if !q.Remove("c1") {
		t.Fatal("remove did not find the waiting entry")
	}
	if q.Remove("c1") {
		t.Fatal("second remove reported success")
	}

	select {
	case m := <-q.Matches():
		t.Fatalf("removed entry still matched: %+v", m)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestEnqueueIsIdempotentPerConnection(t *testing.T) {
	q := NewQueue(time.Hour)
	q.Enqueue("c1", "alice")
	q.Enqueue("c1", "alice")

	if q.Len() != 1 {
		t.Fatalf("duplicate enqueue grew the queue to %d", q.Len())
	}
}
