package storage

import (
	"database/sql"
	"fmt"
)

// RecordSearch asynchronously records a completed search
func (s *Store) RecordSearch(record SearchRecord) {
	s.enqueue("record search", func(tx *sql.Tx) error {
		query := `INSERT INTO searches (
			search_id, start_square, end_square, found, moves, path,
			expanded, discovered, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

		_, err := tx.Exec(query,
			record.SearchID, record.StartSquare, record.EndSquare, record.Found, record.Moves, record.Path,
			record.Expanded, record.Discovered, record.CreatedAt,
		)
		return err
	})
}

// GetSearch retrieves a single search by ID
func (s *Store) GetSearch(searchID string) (*SearchRecord, error) {
	var r SearchRecord
	query := `SELECT search_id, start_square, end_square, found, moves, path, expanded, discovered, created_at
		FROM searches WHERE search_id = ?`

	err := s.db.QueryRow(query, searchID).Scan(
		&r.SearchID, &r.StartSquare, &r.EndSquare, &r.Found, &r.Moves, &r.Path,
		&r.Expanded, &r.Discovered, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// QuerySearches retrieves searches with optional filtering; "" or "*" matches any square
func (s *Store) QuerySearches(start, end string, limit int) ([]SearchRecord, error) {
	query := `SELECT search_id, start_square, end_square, found, moves, path, expanded, discovered, created_at
		FROM searches WHERE 1=1`

	var args []any

	if start != "" && start != "*" {
		query += " AND start_square = ?"
		args = append(args, start)
	}
	if end != "" && end != "*" {
		query += " AND end_square = ?"
		args = append(args, end)
	}

	query += " ORDER BY created_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var searches []SearchRecord
	for rows.Next() {
		var r SearchRecord
		err := rows.Scan(
			&r.SearchID, &r.StartSquare, &r.EndSquare, &r.Found, &r.Moves, &r.Path,
			&r.Expanded, &r.Discovered, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		searches = append(searches, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return searches, nil
}

// DeleteSearches removes all recorded searches
func (s *Store) DeleteSearches() (int64, error) {
	result, err := s.db.Exec(`DELETE FROM searches`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
