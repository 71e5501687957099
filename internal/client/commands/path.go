package commands

import (
	"fmt"
	"strconv"

	"knights/internal/client/display"
)

func (r *Registry) registerPathCommands() {
	r.Register(&Command{
		Name:        "path",
		ShortName:   "p",
		Group:       groupPath,
		Description: "Find the shortest knight path",
		Usage:       "path <from> <to>",
		Handler:     r.pathHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Group:       groupPath,
		Description: "Show the board at a step of the current path",
		Usage:       "show [step]",
		Handler:     r.showHandler,
	})

	r.Register(&Command{
		Name:        "dist",
		ShortName:   "t",
		Group:       groupPath,
		Description: "Show move distances from a square",
		Usage:       "dist <square>",
		Handler:     r.distHandler,
	})

	r.Register(&Command{
		Name:        "history",
		ShortName:   "y",
		Group:       groupPath,
		Description: "List recorded searches",
		Usage:       "history [start] [end]",
		Handler:     r.historyHandler,
	})
}

func (r *Registry) pathHandler(s Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: path <from> <to>")
	}

	resp, err := s.GetClient().FindPath(args[0], args[1])
	if err != nil {
		return err
	}
	s.SetCurrentPath(resp)

	if !resp.Found {
		r.printf("%sNo path found from %s to %s.%s\n", display.Yellow, resp.Start, resp.End, display.Reset)
		return nil
	}

	r.printf("%sPath %s%s\n", display.Green, resp.PathID, display.Reset)
	display.RenderPath(r.out, resp.Path)
	r.printf("Moves: %d | Expanded: %d | Discovered: %d\n", resp.Moves, resp.Expanded, resp.Discovered)
	return nil
}

func (r *Registry) showHandler(s Session, args []string) error {
	current := s.GetCurrentPath()
	if current == nil {
		return fmt.Errorf("no current path, use 'path <from> <to>'")
	}

	step := len(current.Path) - 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid step: %s", args[0])
		}
		step = n
	}
	if step < 0 {
		step = 0
	}

	board, err := s.GetClient().GetBoard(current.PathID, step)
	if err != nil {
		return err
	}

	r.printf("\n%sStep %d: %s%s\n", display.Cyan, board.Step, board.Square, display.Reset)
	display.RenderBoard(r.out, board.Board)
	return nil
}

func (r *Registry) distHandler(s Session, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: dist <square>")
	}

	resp, err := s.GetClient().Distances(args[0])
	if err != nil {
		return err
	}

	r.printf("\n%sMoves from %s:%s\n", display.Cyan, resp.From, display.Reset)
	display.RenderDistances(r.out, resp.Table)
	return nil
}

func (r *Registry) historyHandler(s Session, args []string) error {
	var start, end string
	if len(args) > 0 {
		start = args[0]
	}
	if len(args) > 1 {
		end = args[1]
	}

	resp, err := s.GetClient().History(start, end)
	if err != nil {
		return err
	}

	if resp.Count == 0 {
		r.printf("%sNo searches recorded%s\n", display.Yellow, display.Reset)
		return nil
	}

	for _, e := range resp.Searches {
		result := e.Path
		if !e.Found {
			result = "no path"
		}
		r.printf("  %s  %s -> %s  %s%s%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Start, e.End,
			display.Cyan, result, display.Reset)
	}
	r.printf("%d search(es)\n", resp.Count)
	return nil
}
