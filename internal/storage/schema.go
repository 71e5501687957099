package storage

import "time"

// SearchRecord represents a row in the searches table
type SearchRecord struct {
	SearchID    string    `db:"search_id"`
	StartSquare string    `db:"start_square"`
	EndSquare   string    `db:"end_square"`
	Found       bool      `db:"found"`
	Moves       int       `db:"moves"` // -1 when no path was found
	Path        string    `db:"path"`  // space separated notation
	Expanded    int       `db:"expanded"`
	Discovered  int       `db:"discovered"`
	CreatedAt   time.Time `db:"created_at"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS searches (
	search_id TEXT PRIMARY KEY,
	start_square TEXT NOT NULL,
	end_square TEXT NOT NULL,
	found INTEGER NOT NULL CHECK(found IN (0, 1)),
	moves INTEGER NOT NULL,
	path TEXT NOT NULL DEFAULT '',
	expanded INTEGER NOT NULL DEFAULT 0,
	discovered INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_searches_start ON searches(start_square);
CREATE INDEX IF NOT EXISTS idx_searches_end ON searches(end_square);
CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
`
