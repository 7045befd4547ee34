package game

import (
	"testing"
	"time"
)

func TestStorePutGetRemove(t *testing.T) {
	s := NewStore()
	sess := NewGameSession("c1", "alice", "c2", "bob", false)
	s.Put(sess)

	got, ok := s.Get(sess.ID)
	if !ok || got != sess {
		t.Fatal("session not retrievable by id")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", s.Len())
	}

	s.Remove(sess.ID)
	if _, ok := s.Get(sess.ID); ok {
		t.Fatal("session still present after remove")
	}
	if _, ok := s.ByConn("c1"); ok {
		t.Fatal("connection index still present after remove")
	}
}

func TestStoreByConn(t *testing.T) {
	s := NewStore()
	sess := NewGameSession("c1", "alice", "c2", "bob", false)
	s.Put(sess)

	for _, conn := range []string{"c1", "c2"} {
		got, ok := s.ByConn(conn)
		if !ok || got.ID != sess.ID {
			t.Fatalf("connection %s does not resolve to the session", conn)
		}
	}
	if _, ok := s.ByConn("unknown"); ok {
		t.Fatal("unknown connection resolved to a session")
	}
}

func TestStoreBotSlotNotIndexed(t *testing.T) {
	s := NewStore()
	sess := NewGameSession("c1", "alice", "", "", true)
	s.Put(sess)

	if _, ok := s.ByConn(BotConnID); ok {
		t.Fatal("bot placeholder indexed as a connection")
	}
}

func TestStoreReindex(t *testing.T) {
	s := NewStore()
	sess := NewGameSession("c1", "alice", "c2", "bob", false)
	s.Put(sess)

	s.Reindex("c1", "c9", sess.ID)

	if _, ok := s.ByConn("c1"); ok {
		t.Fatal("old connection still indexed")
	}
	got, ok := s.ByConn("c9")
	if !ok || got.ID != sess.ID {
		t.Fatal("new connection does not resolve to the session")
	}
}

func TestStorePruneStale(t *testing.T) {
	s := NewStore()
	old := NewGameSession("c1", "alice", "c2", "bob", false)
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	fresh := NewGameSession("c3", "carol", "c4", "dave", false)
	s.Put(old)
	s.Put(fresh)

	if pruned := s.PruneStale(24 * time.Hour); pruned != 1 {
		t.Fatalf("expected 1 pruned session, got %d", pruned)
	}
	if _, ok := s.Get(old.ID); ok {
		t.Fatal("stale session survived the prune")
	}
	if _, ok := s.Get(fresh.ID); !ok {
		t.Fatal("fresh session was pruned")
	}
	if _, ok := s.ByConn("c1"); ok {
		t.Fatal("stale connection index survived the prune")
	}
}
