package domain

type ClientMessage struct {
	Type     string `json:"type"`
	Username string `json:"username,omitempty"`
	GameID   string `json:"gameId,omitempty"`
	Column   int    `json:"column"`
}

type ServerMessage struct {
	Type      string       `json:"type"`
	GameID    string       `json:"gameId,omitempty"`
	Board     [][]PlayerID `json:"board,omitempty"`
	Usernames []string     `json:"usernames,omitempty"`
	Turn      int          `json:"turn"`
	YourSlot  int          `json:"yourSlot"`
	VsBot     bool         `json:"vsBot"`
	Winner    string       `json:"winner,omitempty"`
	Reason    string       `json:"reason,omitempty"`
	Message   string       `json:"message,omitempty"`
}
