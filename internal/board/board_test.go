package board

import (
	"strings"
	"testing"

	"knights/internal/core"
	"knights/internal/search"
)

func TestRenderA1(t *testing.T) {
	got := Render(core.MustParseSquare("A1"))
	want := "\n" +
		"    A  B  C  D  E  F  G  H \n" +
		" 1  K  .  .  .  .  .  .  . \n" +
		" 2  .  .  .  .  .  .  .  . \n" +
		" 3  .  .  .  .  .  .  .  . \n" +
		" 4  .  .  .  .  .  .  .  . \n" +
		" 5  .  .  .  .  .  .  .  . \n" +
		" 6  .  .  .  .  .  .  .  . \n" +
		" 7  .  .  .  .  .  .  .  . \n" +
		" 8  .  .  .  .  .  .  .  . \n" +
		"\n"
	if got != want {
		t.Fatalf("unexpected board:\n%q\nwant:\n%q", got, want)
	}
}

func TestRenderMarksOneSquare(t *testing.T) {
	for row := 0; row < core.BoardSize; row++ {
		for col := 0; col < core.BoardSize; col++ {
			sq := core.NewSquare(row, col)
			out := Render(sq)
			if n := strings.Count(out, KnightMarker); n != 1 {
				t.Fatalf("%s: %d knight markers", sq, n)
			}

			lines := strings.Split(out, "\n")
			// lines[0] empty, lines[1] header, lines[2+row] is the rank
			rank := lines[2+row]
			cell := rank[3+3*col : 6+3*col]
			if cell != " K " {
				t.Fatalf("%s: cell %q in rank line %q", sq, cell, rank)
			}
		}
	}
}

func TestReport(t *testing.T) {
	result, err := search.New().Find(core.MustParseSquare("A1"), core.MustParseSquare("B3"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := Report(result)
	if !strings.HasPrefix(out, "The shortest path from A1 to B3 is: A1 B3\nNumber of moves: 1\n") {
		t.Fatalf("unexpected heading:\n%s", out)
	}
	if strings.Count(out, "The Knight moves to") != 2 {
		t.Fatalf("expected two boards:\n%s", out)
	}
	if !strings.Contains(out, "The Knight moves to B3:\n") {
		t.Fatalf("missing B3 board:\n%s", out)
	}
}

func TestReportSameSquare(t *testing.T) {
	d4 := core.MustParseSquare("D4")
	result, err := search.New().Find(d4, d4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := Report(result)
	if !strings.Contains(out, "is: D4\nNumber of moves: 0\n") {
		t.Fatalf("unexpected report:\n%s", out)
	}
	if strings.Count(out, "The Knight moves to") != 1 {
		t.Fatalf("expected one board:\n%s", out)
	}
}

func TestReportNoPath(t *testing.T) {
	result := search.Result{Start: core.MustParseSquare("A1"), End: core.MustParseSquare("H8")}
	out := Report(result)
	if out != "No path found from A1 to H8.\n" {
		t.Fatalf("unexpected report %q", out)
	}
}

func TestReportMarked(t *testing.T) {
	result, _ := search.New().Find(core.MustParseSquare("A1"), core.MustParseSquare("A1"))
	out := ReportMarked(result, "N")
	if strings.Contains(out, " K ") || !strings.Contains(out, " N ") {
		t.Fatalf("custom marker not applied:\n%s", out)
	}
}
