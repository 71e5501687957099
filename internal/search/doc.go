// Package search finds shortest knight paths with breadth-first search.
//
// A search owns all of its state: an arena of path nodes linked to their BFS
// predecessor by index, a FIFO frontier of arena indices and a visited set
// keyed by square. A square is marked visited when it is first enqueued, so
// every square enters the frontier at most once and the first time the goal
// is dequeued its predecessor chain is a shortest path.
package search
