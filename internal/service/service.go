// Package service coordinates knight path searches, the in-memory path cache
// and optional persistence.
package service

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"knights/internal/core"
	"knights/internal/search"
	"knights/internal/storage"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	MaxCachedPaths     = 1000
	DefaultHistorySize = 50
)

var (
	ErrPathNotFound    = errors.New("path not found")
	ErrStorageDisabled = errors.New("storage disabled")
)

// PathRecord is a completed search kept for later lookup
type PathRecord struct {
	ID        string
	Result    search.Result
	CreatedAt time.Time
}

// Service coordinates path finding, caching and storage
type Service struct {
	finder *search.Finder
	store  *storage.Store // nil if persistence disabled
	log    zerolog.Logger

	mu    sync.RWMutex
	paths map[string]*PathRecord
	order []string // cache insertion order for eviction

	jwtSecret []byte
	adminHash string // empty disables admin login
}

// New creates a new service instance with optional storage
func New(store *storage.Store, jwtSecret []byte, log zerolog.Logger) *Service {
	return &Service{
		finder:    search.New(),
		store:     store,
		log:       log.With().Str("component", "service").Logger(),
		paths:     make(map[string]*PathRecord),
		jwtSecret: jwtSecret,
	}
}

// GetStorageHealth returns the storage component status
func (s *Service) GetStorageHealth() string {
	if s.store == nil {
		return "disabled"
	}
	if s.store.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// FindPath searches for a shortest path and records the outcome. When no path
// exists the record is still returned together with search.ErrNoPath.
func (s *Service) FindPath(start, end core.Square) (*PathRecord, error) {
	result, err := s.finder.Find(start, end)
	if err != nil && !errors.Is(err, search.ErrNoPath) {
		return nil, err
	}

	record := &PathRecord{
		ID:        uuid.New().String(),
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	s.cache(record)

	s.log.Debug().
		Str("id", record.ID).
		Str("start", start.String()).
		Str("end", end.String()).
		Bool("found", result.Found).
		Int("moves", result.Moves()).
		Int("expanded", result.Expanded).
		Msg("search completed")

	if s.store != nil {
		s.store.RecordSearch(storage.SearchRecord{
			SearchID:    record.ID,
			StartSquare: start.String(),
			EndSquare:   end.String(),
			Found:       result.Found,
			Moves:       result.Moves(),
			Path:        core.FormatPath(result.Path),
			Expanded:    result.Expanded,
			Discovered:  result.Discovered,
			CreatedAt:   record.CreatedAt,
		})
	}

	return record, err
}

func (s *Service) cache(record *PathRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.order) >= MaxCachedPaths {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.paths, oldest)
	}
	s.paths[record.ID] = record
	s.order = append(s.order, record.ID)
}

// GetPath returns a cached path, falling back to storage for older searches
func (s *Service) GetPath(id string) (*PathRecord, error) {
	s.mu.RLock()
	record, ok := s.paths[id]
	s.mu.RUnlock()
	if ok {
		return record, nil
	}

	if s.store == nil {
		return nil, ErrPathNotFound
	}

	stored, err := s.store.GetSearch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPathNotFound
		}
		return nil, fmt.Errorf("failed to load search %s: %w", id, err)
	}

	return recordFromStorage(stored)
}

// recordFromStorage rebuilds a PathRecord from its stored notation
func recordFromStorage(r *storage.SearchRecord) (*PathRecord, error) {
	start, err := core.ParseSquare(r.StartSquare)
	if err != nil {
		return nil, fmt.Errorf("stored start %q: %w", r.StartSquare, err)
	}
	end, err := core.ParseSquare(r.EndSquare)
	if err != nil {
		return nil, fmt.Errorf("stored end %q: %w", r.EndSquare, err)
	}

	result := search.Result{
		Start:      start,
		End:        end,
		Found:      r.Found,
		Expanded:   r.Expanded,
		Discovered: r.Discovered,
	}
	if r.Found {
		for _, token := range strings.Fields(r.Path) {
			sq, err := core.ParseSquare(token)
			if err != nil {
				return nil, fmt.Errorf("stored path %q: %w", r.Path, err)
			}
			result.Path = append(result.Path, sq)
		}
	}

	return &PathRecord{ID: r.SearchID, Result: result, CreatedAt: r.CreatedAt}, nil
}

// Distances returns the knight distance table from sq
func (s *Service) Distances(sq core.Square) (search.Table, error) {
	return s.finder.Distances(sq)
}

// History lists recorded searches, newest first
func (s *Service) History(start, end string, limit int) ([]storage.SearchRecord, error) {
	if s.store == nil {
		return nil, ErrStorageDisabled
	}
	if limit <= 0 {
		limit = DefaultHistorySize
	}
	return s.store.QuerySearches(start, end, limit)
}

// PurgeHistory deletes all recorded searches
func (s *Service) PurgeHistory() (int64, error) {
	if s.store == nil {
		return 0, ErrStorageDisabled
	}
	deleted, err := s.store.DeleteSearches()
	if err != nil {
		return 0, err
	}
	s.log.Info().Int64("deleted", deleted).Msg("search history purged")
	return deleted, nil
}

// Shutdown releases the cache and closes storage
func (s *Service) Shutdown() error {
	var errs []error

	s.mu.Lock()
	s.paths = make(map[string]*PathRecord)
	s.order = nil
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	return errors.Join(errs...)
}
