package matchmaking

import (
	"log"
	"sync"
	"time"
)

// Entry is one waiting player.
type Entry struct {
	ConnID     string
	Username   string
	EnqueuedAt time.Time
}

// Match pairs the two longest-waiting players, or one player with the bot.
type Match struct {
	Player1 Entry
	Player2 Entry // zero value when VsBot
	VsBot   bool
}

// Queue orders waiting players FIFO. When two players are present the two
// oldest are paired immediately; a lone player is paired with the bot after
// the configured wait. Pairing and bot fallback are mutually exclusive for
// an entry: both paths remove it under the queue lock, and a fallback timer
// that fires late finds the entry gone and does nothing.
type Queue struct {
	mu      sync.Mutex
	waiting []Entry
	timers  map[string]*time.Timer // connID -> bot-fallback timer

	wait    time.Duration
	matches chan Match
}

func NewQueue(wait time.Duration) *Queue {
	return &Queue{
		waiting: []Entry{},
		timers:  make(map[string]*time.Timer),
		wait:    wait,
		matches: make(chan Match, 100),
	}
}

// Matches is consumed by the session controller's listener goroutine.
func (q *Queue) Matches() <-chan Match {
	return q.matches
}

// Enqueue adds a player and pairs the two oldest entries if possible.
func (q *Queue) Enqueue(connID, username string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.waiting {
		if e.ConnID == connID {
			return
		}
	}

	q.waiting = append(q.waiting, Entry{ConnID: connID, Username: username, EnqueuedAt: time.Now()})

	if len(q.waiting) >= 2 {
		p1 := q.waiting[0]
		p2 := q.waiting[1]
		q.waiting = q.waiting[2:]
		q.stopAndDeleteTimer(p1.ConnID)
		q.stopAndDeleteTimer(p2.ConnID)

		q.matches <- Match{Player1: p1, Player2: p2}
		return
	}

	timer := time.AfterFunc(q.wait, func() {
		q.handleTimeout(connID)
	})
	q.timers[connID] = timer
}

// handleTimeout promotes a still-waiting player to a bot game. The entry is
// revalidated under the lock so a fallback racing a pairing is a no-op.
func (q *Queue) handleTimeout(connID string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	entry, ok := q.removeLocked(connID)
	if !ok {
		return
	}

	log.Printf("[MATCHMAKING] No partner for %s within %v, starting bot game", entry.Username, q.wait)
	q.matches <- Match{Player1: entry, VsBot: true}
}

// Remove purges a waiting player, e.g. on disconnect before pairing.
func (q *Queue) Remove(connID string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	_, ok := q.removeLocked(connID)
	return ok
}

// Len reports the number of waiting players.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.waiting)
}

func (q *Queue) removeLocked(connID string) (Entry, bool) {
	for i, e := range q.waiting {
		if e.ConnID == connID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			q.stopAndDeleteTimer(connID)
			return e, true
		}
	}
	return Entry{}, false
}

func (q *Queue) stopAndDeleteTimer(connID string) {
	if timer := q.timers[connID]; timer != nil {
		timer.Stop()
	}
	delete(q.timers, connID)
}
