package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewSessionID randomly generates a unique game session ID.
func NewSessionID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("game_%d", time.Now().UnixNano())
	}
	return "game_" + hex.EncodeToString(bytes)
}

// NewConnID randomly generates an identifier for one websocket connection.
func NewConnID() string {
	bytes := make([]byte, 12)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("conn_%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(bytes)
}
