// Package movegen produces legal knight destinations on the 8x8 board.
package movegen

import "knights/internal/core"

// Func yields the neighbours of a square; it names the edge function of the
// move graph so callers can swap in other move rules.
type Func func(sq core.Square) []core.Square

// knightOffsets is the fixed generation order as (row, col) deltas.
// Ties between equally short paths are broken by this order.
var knightOffsets = [8]struct {
	Dr, Dc int
}{
	{+2, +1},
	{+2, -1},
	{-2, +1},
	{-2, -1},
	{+1, +2},
	{+1, -2},
	{-1, +2},
	{-1, -2},
}

// LegalMoves returns every on-board knight destination from sq in offset order
func LegalMoves(sq core.Square) []core.Square {
	moves := make([]core.Square, 0, len(knightOffsets))
	for _, m := range knightOffsets {
		to := core.NewSquare(sq.Row()+m.Dr, sq.Col()+m.Dc)
		if !to.OnBoard() {
			continue
		}
		moves = append(moves, to)
	}
	return moves
}

// IsKnightMove reports whether a and b are one knight move apart
func IsKnightMove(a, b core.Square) bool {
	dr := abs(a.Row() - b.Row())
	dc := abs(a.Col() - b.Col())
	return (dr == 1 && dc == 2) || (dr == 2 && dc == 1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
