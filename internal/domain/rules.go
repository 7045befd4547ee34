package domain

// the four axes a run can lie on, as direction pairs
var winAxes = [4][2][2]int{
	{{0, 1}, {0, -1}},  // horizontal
	{{1, 0}, {-1, 0}},  // vertical
	{{1, 1}, {-1, -1}}, // diagonal \
	{{1, -1}, {-1, 1}}, // diagonal /
}

// CheckWin reports whether the disk just placed at (row, column) completed
// a run of at least ToWin same-player cells. Only lines through the placed
// cell are checked, counting outward in both directions.
func CheckWin(board [][]PlayerID, row, column int, player PlayerID) bool {
	for _, axis := range winAxes {
		count := 1
		for _, dir := range axis {
			count += countInDirection(board, row, column, dir[0], dir[1], player)
		}
		if count >= ToWin {
			return true
		}
	}
	return false
}

// countInDirection counts consecutive same-player disks starting one step
// away from (row, column), stopping at the board edge.
func countInDirection(board [][]PlayerID, row, column, deltaRow, deltaCol int, player PlayerID) int {
	count := 0
	r, c := row+deltaRow, column+deltaCol
	for r >= 0 && r < Rows && c >= 0 && c < Columns && board[r][c] == player {
		count++
		r += deltaRow
		c += deltaCol
	}
	return count
}
