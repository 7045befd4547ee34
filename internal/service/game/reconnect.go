package game

import (
	"log"
	"sync"
	"time"
)

// forfeit is one pending automatic loss for a disconnected player.
type forfeit struct {
	SessionID  string
	WinnerSlot int
	timer      *time.Timer
}

// ForfeitRegistry tracks at most one live forfeit timer per username.
// A reconnect cancels the timer via Cancel; a timer that fires must
// re-claim its registry entry first, so a cancellation racing the fire
// always wins and the forfeit effect never runs after a cancel.
type ForfeitRegistry struct {
	mu     sync.Mutex
	timers map[string]*forfeit // username -> pending forfeit
	window time.Duration
}

func NewForfeitRegistry(window time.Duration) *ForfeitRegistry {
	return &ForfeitRegistry{
		timers: make(map[string]*forfeit),
		window: window,
	}
}

// Schedule arms the forfeit window for username. Returns false when a
// timer is already live for that username.
func (r *ForfeitRegistry) Schedule(username, sessionID string, winnerSlot int, fire func(sessionID string, winnerSlot int)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.timers[username]; exists {
		return false
	}

	f := &forfeit{SessionID: sessionID, WinnerSlot: winnerSlot}
	f.timer = time.AfterFunc(r.window, func() {
		if !r.claim(username, f) {
			return
		}
		log.Printf("[RECONNECT] Forfeit window elapsed for %s in session %s", username, sessionID)
		fire(sessionID, winnerSlot)
	})
	r.timers[username] = f
	return true
}

// claim removes the entry iff it is still the one the firing timer owns.
func (r *ForfeitRegistry) claim(username string, f *forfeit) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.timers[username]
	if !ok || current != f {
		return false
	}
	delete(r.timers, username)
	return true
}

// Cancel stops the live timer for username and returns its session id.
func (r *ForfeitRegistry) Cancel(username string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.timers[username]
	if !ok {
		return "", false
	}
	f.timer.Stop()
	delete(r.timers, username)
	return f.SessionID, true
}

// Has reports whether a forfeit timer is live for username.
func (r *ForfeitRegistry) Has(username string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.timers[username]
	return ok
}
