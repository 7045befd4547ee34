package domain

func NewBoard() [][]PlayerID {
	board := make([][]PlayerID, Rows)
	for i := range board {
		board[i] = make([]PlayerID, Columns)
	}
	return board
}

func IsValidMove(board [][]PlayerID, column int) bool {
	if column < 0 || column >= Columns {
		return false
	}

	// board[0] is the top row (0 -> top, 5 -> bottom)
	if board[0][column] != Empty {
		return false
	}

	return true
}

// LowestOpenRow returns the row a disk dropped in column would land on.
// Gravity rule: a legal move target is always the lowest empty cell.
func LowestOpenRow(board [][]PlayerID, column int) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}
	for row := Rows - 1; row >= 0; row-- {
		if board[row][column] == Empty {
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// ApplyMove sets the cell. The caller must have validated legality first.
func ApplyMove(board [][]PlayerID, row, column int, player PlayerID) {
	board[row][column] = player
}

// DropDisk places a disk in column at its lowest open row.
func DropDisk(board [][]PlayerID, column int, player PlayerID) (int, error) {
	row, err := LowestOpenRow(board, column)
	if err != nil {
		return -1, err
	}
	ApplyMove(board, row, column, player)
	return row, nil
}

func IsBoardFull(board [][]PlayerID) bool {
	for c := 0; c < Columns; c++ {
		if board[0][c] == Empty {
			return false
		}
	}

	return true
}

// MoveCount counts placed disks.
func MoveCount(board [][]PlayerID) int {
	count := 0
	for r := range board {
		for c := range board[r] {
			if board[r][c] != Empty {
				count++
			}
		}
	}
	return count
}

// this creates a deep copy of the board
func CopyBoard(board [][]PlayerID) [][]PlayerID {
	newBoard := make([][]PlayerID, len(board))
	for i := range board {
		newBoard[i] = make([]PlayerID, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}

// ValidColumns lists open columns left to right.
func ValidColumns(board [][]PlayerID) []int {
	valid := []int{}
	for col := 0; col < Columns; col++ {
		if board[0][col] == Empty {
			valid = append(valid, col)
		}
	}
	return valid
}

// SimulateMove drops a disk on a copy of the board and returns the copy.
func SimulateMove(board [][]PlayerID, column int, player PlayerID) ([][]PlayerID, int, error) {
	newBoard := CopyBoard(board)
	row, err := DropDisk(newBoard, column, player)
	if err != nil {
		return nil, -1, err
	}
	return newBoard, row, nil
}
