package search

import (
	"errors"
	"fmt"

	"knights/internal/core"
	"knights/internal/movegen"
)

const (
	noParent    = -1
	squareCount = core.BoardSize * core.BoardSize
)

// ErrNoPath is returned when the frontier empties before the goal is reached
var ErrNoPath = errors.New("no path found")

// Result contains the outcome of a search
type Result struct {
	Start      core.Square
	End        core.Square
	Path       []core.Square // start..end inclusive, nil if not found
	Found      bool
	Expanded   int // nodes dequeued
	Discovered int // nodes enqueued, including the root
}

// Moves returns the number of knight moves in the path, or -1 without a path
func (r Result) Moves() int {
	if !r.Found {
		return -1
	}
	return len(r.Path) - 1
}

// Options defines parameters for the finder
type Options struct {
	Moves movegen.Func
}

// Option is a function that modifies Options
type Option func(*Options)

// WithMoves replaces the knight move generator used as the edge function
func WithMoves(moves movegen.Func) Option {
	return func(o *Options) { o.Moves = moves }
}

// Finder runs breadth-first searches over the move graph.
// A Finder holds no per-search state and is safe for concurrent use.
type Finder struct {
	moves movegen.Func
}

// New creates a finder, defaulting to legal knight moves
func New(options ...Option) *Finder {
	opts := Options{Moves: movegen.LegalMoves}
	for _, option := range options {
		option(&opts)
	}
	return &Finder{moves: opts.Moves}
}

// pathNode is one step of the BFS tree; parent indexes the arena
type pathNode struct {
	square core.Square
	parent int
}

// state is owned by a single search invocation
type state struct {
	arena    []pathNode
	queue    *frontier
	visited  [squareCount]bool
	expanded int
}

func newState(start core.Square) *state {
	s := &state{
		arena: make([]pathNode, 0, squareCount),
		queue: newFrontier(squareCount),
	}
	s.discover(start, noParent)
	return s
}

// discover records sq as a child of parent and marks it visited immediately
func (s *state) discover(sq core.Square, parent int) {
	s.arena = append(s.arena, pathNode{square: sq, parent: parent})
	s.queue.Push(len(s.arena) - 1)
	s.visited[sq.Index()] = true
}

func (s *state) isVisited(sq core.Square) bool {
	return s.visited[sq.Index()]
}

// expand enqueues every unvisited neighbour of the node at idx, in generator order
func (s *state) expand(idx int, moves movegen.Func) {
	for _, next := range moves(s.arena[idx].square) {
		if !next.OnBoard() || s.isVisited(next) {
			continue
		}
		s.discover(next, idx)
	}
}

// reconstruct walks the predecessor chain from idx to the root and reverses it
func (s *state) reconstruct(idx int) []core.Square {
	var path []core.Square
	for i := idx; i != noParent; i = s.arena[i].parent {
		path = append(path, s.arena[i].square)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Find returns a shortest path from start to end. When the frontier is
// exhausted first, the result has Found == false and the error is ErrNoPath.
func (f *Finder) Find(start, end core.Square) (Result, error) {
	result := Result{Start: start, End: end}
	if !start.OnBoard() || !end.OnBoard() {
		return result, fmt.Errorf("search %s to %s: %w", start, end, core.ErrInvalidNotation)
	}

	s := newState(start)
	for {
		idx, ok := s.queue.Pop()
		if !ok {
			break
		}
		s.expanded++

		if s.arena[idx].square == end {
			result.Path = s.reconstruct(idx)
			result.Found = true
			result.Expanded = s.expanded
			result.Discovered = len(s.arena)
			return result, nil
		}

		s.expand(idx, f.moves)
	}

	result.Expanded = s.expanded
	result.Discovered = len(s.arena)
	return result, ErrNoPath
}

// Distance returns the knight distance between two squares
func (f *Finder) Distance(start, end core.Square) (int, error) {
	result, err := f.Find(start, end)
	if err != nil {
		return -1, err
	}
	return result.Moves(), nil
}

// Table holds knight distances indexed [row][col]; -1 marks unreachable squares
type Table [core.BoardSize][core.BoardSize]int

// At returns the distance to sq
func (t *Table) At(sq core.Square) int {
	return t[sq.Row()][sq.Col()]
}

// Distances explores the whole component of start and returns the distance
// to every square. It uses the same frontier discipline as Find.
func (f *Finder) Distances(start core.Square) (Table, error) {
	var table Table
	for r := range table {
		for c := range table[r] {
			table[r][c] = -1
		}
	}
	if !start.OnBoard() {
		return table, fmt.Errorf("distances from %s: %w", start, core.ErrInvalidNotation)
	}

	depth := make([]int, 0, squareCount)
	s := newState(start)
	depth = append(depth, 0)

	for {
		idx, ok := s.queue.Pop()
		if !ok {
			break
		}
		sq := s.arena[idx].square
		table[sq.Row()][sq.Col()] = depth[idx]

		before := len(s.arena)
		s.expand(idx, f.moves)
		for i := before; i < len(s.arena); i++ {
			depth = append(depth, depth[idx]+1)
		}
	}

	return table, nil
}
