package cleanup

import (
	"log"
	"time"

	"github.com/fourrow/game-server/internal/service/game"
)

// Worker periodically prunes sessions that outlived their useful life.
// Termination normally removes sessions immediately; the sweep only
// catches leaks.
type Worker struct {
	Store  *game.Store
	MaxAge time.Duration
}

func NewWorker(store *game.Store, maxAge time.Duration) *Worker {
	return &Worker{Store: store, MaxAge: maxAge}
}

// Start initiates the background ticker
func (w *Worker) Start() {
	go w.runCleanup()

	ticker := time.NewTicker(1 * time.Hour)
	go func() {
		for range ticker.C {
			w.runCleanup()
		}
	}()
	log.Println("[CLEANUP] Background worker started")
}

func (w *Worker) runCleanup() {
	if pruned := w.Store.PruneStale(w.MaxAge); pruned > 0 {
		log.Printf("[CLEANUP] Pruned %d abandoned sessions", pruned)
	}
}
