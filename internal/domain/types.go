package domain

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// BotUsername is the display name of the fallback opponent. The bot
// always occupies slot 1 and plays as Player2.
const BotUsername = "Competitive Bot"

// to represent the session status
type GameStatus string

const (
	StatusActive   GameStatus = "active"
	StatusFinished GameStatus = "finished"
)

// termination reasons carried in game_over messages
const (
	ReasonNormal  = "Normal"
	ReasonForfeit = "Opponent Forfeited"
)

// DrawWinner is the winner value broadcast when the board fills up.
const DrawWinner = "draw"

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove Error = "invalid move"
	ErrColumnFull  Error = "column is full"
)
