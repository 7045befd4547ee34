package bot

import (
	"github.com/fourrow/game-server/internal/domain"
)

// SelectMove picks a column for the bot using a fixed priority: take an
// immediate win, otherwise block the opponent's immediate win, otherwise
// play the middle of the open columns. Deterministic given the board.
// Returns -1 when no column is open; the caller must not reach that state.
func SelectMove(board [][]domain.PlayerID, botPlayer domain.PlayerID) int {
	validColumns := domain.ValidColumns(board)
	if len(validColumns) == 0 {
		return -1
	}

	opponent := getOpponent(botPlayer)

	// 1. win if possible
	for _, col := range validColumns {
		testBoard, row, err := domain.SimulateMove(board, col, botPlayer)
		if err != nil {
			continue
		}
		if domain.CheckWin(testBoard, row, col, botPlayer) {
			return col
		}
	}

	// 2. block the opponent's winning move
	for _, col := range validColumns {
		testBoard, row, err := domain.SimulateMove(board, col, opponent)
		if err != nil {
			continue
		}
		if domain.CheckWin(testBoard, row, col, opponent) {
			return col
		}
	}

	// 3. center-biased default
	return validColumns[len(validColumns)/2]
}

func getOpponent(p domain.PlayerID) domain.PlayerID {
	if p == domain.Player1 {
		return domain.Player2
	}
	return domain.Player1
}
