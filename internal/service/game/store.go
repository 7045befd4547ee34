package game

import (
	"log"
	"sync"
	"time"
)

// Store is the registry of live sessions, with a reverse index from
// connection id to session id for disconnect handling.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession // sessionID -> session
	byConn   map[string]string       // connID -> sessionID
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*GameSession),
		byConn:   make(map[string]string),
	}
}

func (s *Store) Put(sess *GameSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.ID] = sess
	for _, conn := range sess.Conns {
		if conn != BotConnID && conn != "" {
			s.byConn[conn] = sess.ID
		}
	}
}

func (s *Store) Get(sessionID string) (*GameSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	return sess, ok
}

// ByConn resolves the session a connection currently plays in.
func (s *Store) ByConn(connID string) (*GameSession, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessionID, ok := s.byConn[connID]
	if !ok {
		return nil, false
	}
	sess, ok := s.sessions[sessionID]
	return sess, ok
}

// Remove drops the session and every index entry pointing at it.
func (s *Store) Remove(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	for conn, id := range s.byConn {
		if id == sessionID {
			delete(s.byConn, conn)
		}
	}
}

// Reindex swaps the connection key for a rebound slot after a reconnect.
func (s *Store) Reindex(oldConnID, newConnID, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.byConn[oldConnID] == sessionID {
		delete(s.byConn, oldConnID)
	}
	if _, ok := s.sessions[sessionID]; ok {
		s.byConn[newConnID] = sessionID
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PruneStale drops sessions older than maxAge. Sessions are normally
// removed at termination; this is a safety net for leaks.
func (s *Store) PruneStale(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	cutoff := time.Now().Add(-maxAge)
	for id, sess := range s.sessions {
		if sess.CreatedAt.Before(cutoff) {
			delete(s.sessions, id)
			for conn, sid := range s.byConn {
				if sid == id {
					delete(s.byConn, conn)
				}
			}
			count++
		}
	}

	if count > 0 {
		log.Printf("[SESSION] Memory cleanup: removed %d stale game sessions", count)
	}
	return count
}
