package game

import (
	"sync"
	"time"

	"github.com/fourrow/game-server/internal/domain"
	"github.com/fourrow/game-server/pkg/uid"
)

// BotConnID is the placeholder connection id held by the bot's slot.
const BotConnID = "bot"

// GameSession is one match between two player slots. Conns and Usernames
// are parallel arrays: slot 0 moves first and plays as Player1, slot 1 as
// Player2. All mutable fields are guarded by mu; operations on different
// sessions never share a lock.
type GameSession struct {
	ID        string
	Conns     [2]string
	Usernames [2]string
	Turn      int
	VsBot     bool
	Status    domain.GameStatus
	Board     [][]domain.PlayerID
	CreatedAt time.Time

	mu sync.Mutex
}

// NewGameSession creates an Active session with slot 0 to move.
func NewGameSession(conn1, user1, conn2, user2 string, vsBot bool) *GameSession {
	if vsBot {
		conn2 = BotConnID
		user2 = domain.BotUsername
	}
	return &GameSession{
		ID:        uid.NewSessionID(),
		Conns:     [2]string{conn1, conn2},
		Usernames: [2]string{user1, user2},
		Turn:      0,
		VsBot:     vsBot,
		Status:    domain.StatusActive,
		Board:     domain.NewBoard(),
		CreatedAt: time.Now(),
	}
}

// callers must hold mu
func (gs *GameSession) slotOfConnLocked(connID string) (int, bool) {
	for slot, c := range gs.Conns {
		if c == connID && c != BotConnID {
			return slot, true
		}
	}
	return -1, false
}

// callers must hold mu
func (gs *GameSession) slotOfUsernameLocked(username string) (int, bool) {
	for slot, u := range gs.Usernames {
		if u == username && u != domain.BotUsername {
			return slot, true
		}
	}
	return -1, false
}

// PlayerForSlot maps a slot index to its disc color.
func PlayerForSlot(slot int) domain.PlayerID {
	if slot == 0 {
		return domain.Player1
	}
	return domain.Player2
}

// stateMessageLocked snapshots the session for one recipient slot. The
// board is deep-copied so later moves cannot race the socket write.
func (gs *GameSession) stateMessageLocked(msgType string, slot int) domain.ServerMessage {
	return domain.ServerMessage{
		Type:      msgType,
		GameID:    gs.ID,
		Board:     domain.CopyBoard(gs.Board),
		Usernames: []string{gs.Usernames[0], gs.Usernames[1]},
		Turn:      gs.Turn,
		YourSlot:  slot,
		VsBot:     gs.VsBot,
	}
}
