package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fourrow/game-server/internal/domain"
	"github.com/fourrow/game-server/internal/events"
	"github.com/fourrow/game-server/internal/service/bot"
	"github.com/fourrow/game-server/internal/service/matchmaking"
)

// Sender delivers an event to one connection. Implemented by the
// websocket ConnectionManager; tests substitute a recorder.
type Sender interface {
	Send(connID string, msg domain.ServerMessage) error
}

// Controller orchestrates the session lifecycle: it consumes matchmaking
// results, drives the per-session turn state machine, arms forfeit windows
// on disconnect and publishes terminal events to the result sink.
type Controller struct {
	store    *Store
	queue    *matchmaking.Queue
	forfeits *ForfeitRegistry
	sink     events.Sink
	sender   Sender
	botDelay time.Duration

	mu        sync.Mutex
	connUsers map[string]string // connID -> username
}

func NewController(store *Store, queue *matchmaking.Queue, forfeits *ForfeitRegistry, sink events.Sink, sender Sender, botDelay time.Duration) *Controller {
	return &Controller{
		store:     store,
		queue:     queue,
		forfeits:  forfeits,
		sink:      sink,
		sender:    sender,
		botDelay:  botDelay,
		connUsers: make(map[string]string),
	}
}

// Run consumes the matchmaking queue and starts sessions. Blocks until
// the queue's channel is closed; run it in a goroutine.
func (c *Controller) Run() {
	for match := range c.queue.Matches() {
		c.startSession(match)
	}
}

// Join handles an inbound player. A username with a live forfeit timer is
// put straight back into its session; everyone else enters the queue.
func (c *Controller) Join(connID, username string) {
	c.mu.Lock()
	c.connUsers[connID] = username
	c.mu.Unlock()

	if sessionID, ok := c.forfeits.Cancel(username); ok {
		log.Printf("[RECONNECT] %s reconnected, cancelling forfeit timer", username)
		if c.rejoin(connID, username, sessionID) {
			return
		}
		// session ended while the player was away; treat as a fresh join
	}

	c.queue.Enqueue(connID, username)
}

// rejoin rebinds the new connection into the player's slot and replays the
// session state as a fresh game start. Board and turn are untouched.
func (c *Controller) rejoin(connID, username, sessionID string) bool {
	sess, ok := c.store.Get(sessionID)
	if !ok {
		return false
	}

	sess.mu.Lock()
	if sess.Status != domain.StatusActive {
		sess.mu.Unlock()
		return false
	}
	slot, ok := sess.slotOfUsernameLocked(username)
	if !ok {
		sess.mu.Unlock()
		return false
	}
	oldConn := sess.Conns[slot]
	sess.Conns[slot] = connID
	msg := sess.stateMessageLocked("game_start", slot)
	sess.mu.Unlock()

	c.store.Reindex(oldConn, connID, sessionID)
	c.sender.Send(connID, msg)
	return true
}

func (c *Controller) startSession(m matchmaking.Match) {
	sess := NewGameSession(m.Player1.ConnID, m.Player1.Username, m.Player2.ConnID, m.Player2.Username, m.VsBot)
	c.store.Put(sess)

	log.Printf("[SESSION] Created session %s: %s vs %s (vsBot=%v)",
		sess.ID, sess.Usernames[0], sess.Usernames[1], sess.VsBot)

	sess.mu.Lock()
	c.broadcastLocked(sess, "game_start")
	sess.mu.Unlock()
}

// HandleMove applies one move for the player behind connID. Invalid moves
// (unknown session, finished session, wrong turn, full column) are rejected
// silently without mutating state.
func (c *Controller) HandleMove(connID, sessionID string, column int) {
	sess, ok := c.store.Get(sessionID)
	if !ok {
		return
	}

	sess.mu.Lock()
	if sess.Status != domain.StatusActive {
		sess.mu.Unlock()
		return
	}
	slot, ok := sess.slotOfConnLocked(connID)
	if !ok || slot != sess.Turn {
		sess.mu.Unlock()
		return
	}
	row, err := domain.LowestOpenRow(sess.Board, column)
	if err != nil {
		sess.mu.Unlock()
		return
	}

	domain.ApplyMove(sess.Board, row, column, PlayerForSlot(slot))
	c.advanceLocked(sess, row, column, slot)
}

// advanceLocked finishes or flips the turn after an accepted move. Called
// with sess.mu held; releases it.
func (c *Controller) advanceLocked(sess *GameSession, row, column, slot int) {
	player := PlayerForSlot(slot)

	if domain.CheckWin(sess.Board, row, column, player) {
		c.finishLocked(sess, sess.Usernames[slot], domain.ReasonNormal)
		sess.mu.Unlock()
		c.store.Remove(sess.ID)
		return
	}

	if domain.IsBoardFull(sess.Board) {
		c.finishLocked(sess, domain.DrawWinner, domain.ReasonNormal)
		sess.mu.Unlock()
		c.store.Remove(sess.ID)
		return
	}

	sess.Turn = 1 - sess.Turn
	c.broadcastLocked(sess, "update_board")

	if sess.VsBot && sess.Turn == 1 {
		sessionID := sess.ID
		time.AfterFunc(c.botDelay, func() {
			c.handleBotTurn(sessionID)
		})
	}
	sess.mu.Unlock()
}

// handleBotTurn re-enters the move path with the bot's chosen column. The
// session is revalidated at fire time: a session that terminated or whose
// turn moved on in the meantime makes this a no-op.
func (c *Controller) handleBotTurn(sessionID string) {
	sess, ok := c.store.Get(sessionID)
	if !ok {
		return
	}

	sess.mu.Lock()
	if sess.Status != domain.StatusActive || !sess.VsBot || sess.Turn != 1 {
		sess.mu.Unlock()
		return
	}

	column := bot.SelectMove(sess.Board, domain.Player2)
	if column < 0 {
		sess.mu.Unlock()
		return
	}
	row, err := domain.DropDisk(sess.Board, column, domain.Player2)
	if err != nil {
		log.Printf("[BOT] Move in session %s failed: %v", sessionID, err)
		sess.mu.Unlock()
		return
	}

	c.advanceLocked(sess, row, column, 1)
}

// HandleDisconnect resolves the connection to a username, purges any queue
// entry and arms the forfeit window if the player was in an Active session.
func (c *Controller) HandleDisconnect(connID string) {
	c.mu.Lock()
	username, ok := c.connUsers[connID]
	delete(c.connUsers, connID)
	c.mu.Unlock()
	if !ok {
		return
	}

	if c.queue.Remove(connID) {
		log.Printf("[MATCHMAKING] Removed %s from queue on disconnect", username)
	}

	sess, ok := c.store.ByConn(connID)
	if !ok {
		return
	}

	sess.mu.Lock()
	if sess.Status != domain.StatusActive {
		sess.mu.Unlock()
		return
	}
	slot, ok := sess.slotOfConnLocked(connID)
	if !ok {
		sess.mu.Unlock()
		return
	}
	sessionID := sess.ID
	sess.mu.Unlock()

	if c.forfeits.Schedule(username, sessionID, 1-slot, c.handleForfeit) {
		log.Printf("[RECONNECT] %s left session %s, forfeit window started", username, sessionID)
	}
}

// handleForfeit ends the session in favor of the remaining player. The
// registry has already re-claimed the timer; the session state is checked
// again here in case the game ended during the window.
func (c *Controller) handleForfeit(sessionID string, winnerSlot int) {
	sess, ok := c.store.Get(sessionID)
	if !ok {
		return
	}

	sess.mu.Lock()
	if sess.Status != domain.StatusActive {
		sess.mu.Unlock()
		return
	}
	c.finishLocked(sess, sess.Usernames[winnerSlot], domain.ReasonForfeit)
	sess.mu.Unlock()
	c.store.Remove(sessionID)
}

// finishLocked marks the session Finished, notifies both participants and
// hands the terminal event to the result sink. Called with sess.mu held.
// The sink publish runs in its own goroutine so a slow or dead sink can
// never stall gameplay or session cleanup.
func (c *Controller) finishLocked(sess *GameSession, winner, reason string) {
	sess.Status = domain.StatusFinished

	over := domain.ServerMessage{
		Type:   "game_over",
		GameID: sess.ID,
		Board:  domain.CopyBoard(sess.Board),
		Winner: winner,
		Reason: reason,
	}
	for slot, conn := range sess.Conns {
		if conn == BotConnID {
			continue
		}
		over.YourSlot = slot
		c.sender.Send(conn, over)
	}

	// stale disconnect timers die with the session
	for _, username := range sess.Usernames {
		if username != domain.BotUsername {
			c.forfeits.Cancel(username)
		}
	}

	event := events.GameFinished{
		Player1:         sess.Usernames[0],
		Player2:         sess.Usernames[1],
		Winner:          winner,
		Reason:          reason,
		MoveCount:       domain.MoveCount(sess.Board),
		DurationSeconds: int(time.Since(sess.CreatedAt).Seconds()),
		Timestamp:       time.Now().UTC(),
	}
	go c.publish(sess.ID, event)

	log.Printf("[SESSION] Session %s finished: winner=%s reason=%s moves=%d",
		sess.ID, winner, reason, event.MoveCount)
}

func (c *Controller) publish(sessionID string, event events.GameFinished) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.sink.Publish(ctx, event); err != nil {
		log.Printf("[SINK] Failed to publish result for session %s: %v", sessionID, err)
	}
}

// broadcastLocked sends the current state to both live connections with
// each recipient's own slot. Called with sess.mu held.
func (c *Controller) broadcastLocked(sess *GameSession, msgType string) {
	for slot, conn := range sess.Conns {
		if conn == BotConnID {
			continue
		}
		c.sender.Send(conn, sess.stateMessageLocked(msgType, slot))
	}
}
