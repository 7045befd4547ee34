package domain

import "testing"

// place writes disks bottom-up in the given column order for one player.
func place(t *testing.T, board [][]PlayerID, player PlayerID, cols ...int) (row, col int) {
	t.Helper()
	for _, c := range cols {
		r, err := DropDisk(board, c, player)
		if err != nil {
			t.Fatalf("drop in column %d: %v", c, err)
		}
		row, col = r, c
	}
	return row, col
}

func TestCheckWinHorizontal(t *testing.T) {
	board := NewBoard()
	row, col := place(t, board, Player1, 0, 1, 2, 3)
	if !CheckWin(board, row, col, Player1) {
		t.Fatal("horizontal run of 4 not detected")
	}
}

func TestCheckWinVertical(t *testing.T) {
	board := NewBoard()
	row, col := place(t, board, Player2, 5, 5, 5, 5)
	if !CheckWin(board, row, col, Player2) {
		t.Fatal("vertical run of 4 not detected")
	}
}

func TestCheckWinDiagonalUp(t *testing.T) {
	board := NewBoard()
	// build a / diagonal for Player1 ending at (2,3)
	place(t, board, Player2, 1, 2, 2, 3, 3, 3)
	place(t, board, Player1, 0, 1, 2)
	row, col := place(t, board, Player1, 3)
	if row != 2 || col != 3 {
		t.Fatalf("unexpected landing cell (%d,%d)", row, col)
	}
	if !CheckWin(board, row, col, Player1) {
		t.Fatal("/ diagonal run of 4 not detected")
	}
}

func TestCheckWinDiagonalDown(t *testing.T) {
	board := NewBoard()
	// build a \ diagonal for Player2 ending at (5,3)
	place(t, board, Player1, 0, 0, 0, 1, 1, 2)
	place(t, board, Player2, 0, 1, 2)
	row, col := place(t, board, Player2, 3)
	if !CheckWin(board, row, col, Player2) {
		t.Fatal("\\ diagonal run of 4 not detected")
	}
}

// The win must include the placed cell: a run completed in the middle
// counts outward from it.
func TestCheckWinCompletedInMiddle(t *testing.T) {
	board := NewBoard()
	place(t, board, Player1, 0, 1, 3)
	row, col := place(t, board, Player1, 2)
	if !CheckWin(board, row, col, Player1) {
		t.Fatal("run completed by a middle placement not detected")
	}
}

func TestCheckWinNoWraparound(t *testing.T) {
	board := NewBoard()
	// three disks at the right edge plus one at the left edge must not
	// join across the boundary
	place(t, board, Player1, 4, 5, 6)
	row, col := place(t, board, Player1, 0)
	if CheckWin(board, row, col, Player1) {
		t.Fatal("run detected across the board edge")
	}
}

func TestCheckWinThreeIsNotEnough(t *testing.T) {
	board := NewBoard()
	row, col := place(t, board, Player2, 2, 3, 4)
	if CheckWin(board, row, col, Player2) {
		t.Fatal("run of 3 reported as win")
	}
}

func TestCheckWinIgnoresOpponentDisks(t *testing.T) {
	board := NewBoard()
	place(t, board, Player1, 0, 1)
	place(t, board, Player2, 2)
	row, col := place(t, board, Player1, 3)
	if CheckWin(board, row, col, Player1) {
		t.Fatal("win reported through an opponent disk")
	}
}

// Scenario from the board-engine contract: four consecutive drops in the
// same column win on the fourth, with the landing row decreasing each time.
func TestFourDropsSameColumn(t *testing.T) {
	board := NewBoard()
	wantRows := []int{5, 4, 3, 2}
	for i := 0; i < 4; i++ {
		row, err := DropDisk(board, 3, Player1)
		if err != nil {
			t.Fatalf("drop %d: %v", i+1, err)
		}
		if row != wantRows[i] {
			t.Fatalf("drop %d: expected row %d, got %d", i+1, wantRows[i], row)
		}
		won := CheckWin(board, row, 3, Player1)
		if i < 3 && won {
			t.Fatalf("win reported after %d disks", i+1)
		}
		if i == 3 && !won {
			t.Fatal("no win reported after the 4th disk")
		}
	}
}
