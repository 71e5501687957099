// Package board renders knight positions and paths as text grids.
package board

import (
	"fmt"
	"strings"

	"knights/internal/core"
	"knights/internal/search"
)

const (
	KnightMarker = "K"
	EmptyMarker  = "."
)

// Render draws the board with the knight on sq, rank 1 on top
func Render(sq core.Square) string {
	return RenderMarked(sq, KnightMarker)
}

// RenderMarked draws the board using marker for the knight's square.
// The marker may carry terminal escape codes; it should print one cell wide.
func RenderMarked(sq core.Square, marker string) string {
	var sb strings.Builder

	sb.WriteString("\n   ")
	for file := 0; file < core.BoardSize; file++ {
		sb.WriteString(fmt.Sprintf(" %c ", 'A'+file))
	}
	sb.WriteString("\n")

	for row := 0; row < core.BoardSize; row++ {
		sb.WriteString(fmt.Sprintf(" %d ", row+1))
		for col := 0; col < core.BoardSize; col++ {
			if sq.Row() == row && sq.Col() == col {
				sb.WriteString(" " + marker + " ")
			} else {
				sb.WriteString(" " + EmptyMarker + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// Summary is the heading line of a report
func Summary(result search.Result) string {
	if !result.Found {
		return fmt.Sprintf("No path found from %s to %s.", result.Start, result.End)
	}
	return fmt.Sprintf("The shortest path from %s to %s is: %s", result.Start, result.End, core.FormatPath(result.Path))
}

// Report renders the summary, move count and one board per path square
func Report(result search.Result) string {
	return ReportMarked(result, KnightMarker)
}

// ReportMarked is Report with a custom knight marker
func ReportMarked(result search.Result, marker string) string {
	var sb strings.Builder
	sb.WriteString(Summary(result))
	sb.WriteString("\n")
	if !result.Found {
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Number of moves: %d\n", result.Moves()))
	for _, sq := range result.Path {
		sb.WriteString(fmt.Sprintf("\nThe Knight moves to %s:\n", sq))
		sb.WriteString(RenderMarked(sq, marker))
	}
	return sb.String()
}
