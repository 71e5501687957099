package display

import (
	"fmt"
	"io"
	"strings"
)

// RenderBoard prints a server board with colored labels and knight
func RenderBoard(w io.Writer, asciiBoard string) {
	lines := strings.Split(asciiBoard, "\n")

	header := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		for _, char := range line {
			switch {
			case header && char >= 'A' && char <= 'H':
				// File letters
				fmt.Fprintf(w, "%s%c%s", Cyan, char, Reset)
			case char == 'K':
				fmt.Fprintf(w, "%s%c%s", Green, char, Reset)
			case char >= '1' && char <= '8':
				// Rank numbers
				fmt.Fprintf(w, "%s%c%s", Cyan, char, Reset)
			default:
				fmt.Fprintf(w, "%c", char)
			}
		}
		fmt.Fprintln(w)
		header = false
	}
}

// RenderPath prints the squares of a path as numbered steps
func RenderPath(w io.Writer, squares []string) {
	for i, sq := range squares {
		if i > 0 {
			fmt.Fprint(w, " -> ")
		}
		fmt.Fprintf(w, "%s%d.%s%s", Cyan, i, Reset, sq)
	}
	fmt.Fprintln(w)
}
