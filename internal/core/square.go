package core

import (
	"errors"
	"strconv"
	"strings"
)

// BoardSize is the number of ranks and files on the board
const BoardSize = 8

// ErrInvalidNotation is returned for tokens that do not name a board square
var ErrInvalidNotation = errors.New("Invalid chess notation.")

// Square is a board cell addressed by row (rank-1) and column (file-'A')
type Square struct {
	row int
	col int
}

// NewSquare builds a square without bounds checking
func NewSquare(row, col int) Square {
	return Square{row: row, col: col}
}

func (s Square) Row() int { return s.row }
func (s Square) Col() int { return s.col }

func (s Square) Equal(other Square) bool {
	return s.row == other.row && s.col == other.col
}

// OnBoard reports whether both coordinates are within [0, BoardSize)
func (s Square) OnBoard() bool {
	return s.row >= 0 && s.row < BoardSize && s.col >= 0 && s.col < BoardSize
}

// Index maps an on-board square to [0, 64)
func (s Square) Index() int {
	return s.row*BoardSize + s.col
}

// File returns the column letter, 'A' through 'H'
func (s Square) File() byte {
	return byte('A' + s.col)
}

// Rank returns the 1-based row number
func (s Square) Rank() int {
	return s.row + 1
}

// String renders the square in notation, e.g. "A1"
func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return string(s.File()) + strconv.Itoa(s.Rank())
}

// ParseSquare converts a file letter 'A'-'H' followed by a rank number 1-8
// into a Square.
func ParseSquare(token string) (Square, error) {
	token = strings.TrimSpace(token)
	if len(token) < 2 {
		return Square{}, ErrInvalidNotation
	}

	file := token[0]
	rank, err := strconv.Atoi(token[1:])
	if err != nil || token[1] == '+' || token[1] == '-' {
		return Square{}, ErrInvalidNotation
	}

	sq := NewSquare(rank-1, int(file)-'A')
	if !sq.OnBoard() {
		return Square{}, ErrInvalidNotation
	}
	return sq, nil
}

// MustParseSquare is ParseSquare for compile-time constants; it panics on bad input
func MustParseSquare(token string) Square {
	sq, err := ParseSquare(token)
	if err != nil {
		panic(err)
	}
	return sq
}

// FormatPath joins square names with single spaces
func FormatPath(path []Square) string {
	names := make([]string, len(path))
	for i, sq := range path {
		names[i] = sq.String()
	}
	return strings.Join(names, " ")
}
