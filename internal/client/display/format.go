package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON prints formatted JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(w, "%sError formatting JSON: %s%s\n", Red, err.Error(), Reset)
		return
	}
	fmt.Fprintln(w, string(data))
}

// RenderDistances prints an 8x8 move-count table, rank 1 on top
func RenderDistances(w io.Writer, table [8][8]int) {
	fmt.Fprint(w, "   ")
	for file := 0; file < 8; file++ {
		fmt.Fprintf(w, " %s%c%s ", Cyan, 'A'+file, Reset)
	}
	fmt.Fprintln(w)

	for row := 0; row < 8; row++ {
		fmt.Fprintf(w, " %s%d%s ", Cyan, row+1, Reset)
		for col := 0; col < 8; col++ {
			switch d := table[row][col]; {
			case d < 0:
				fmt.Fprint(w, " - ")
			case d == 0:
				fmt.Fprintf(w, " %sK%s ", Green, Reset)
			default:
				fmt.Fprintf(w, " %d ", d)
			}
		}
		fmt.Fprintln(w)
	}
}
