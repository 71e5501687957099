package service

import (
	"errors"
	"path/filepath"
	"testing"

	"knights/internal/core"
	"knights/internal/storage"

	"github.com/lixenwraith/auth"
	"github.com/rs/zerolog"
)

func newStore(t *testing.T, path string) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(path, false, zerolog.Nop())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.InitDB(); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return store
}

func TestFindPathCachesResult(t *testing.T) {
	svc := New(nil, nil, zerolog.Nop())
	defer svc.Shutdown()

	record, err := svc.FindPath(core.MustParseSquare("A1"), core.MustParseSquare("H8"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.Result.Moves() != 6 {
		t.Fatalf("got %d moves, want 6", record.Result.Moves())
	}

	got, err := svc.GetPath(record.ID)
	if err != nil {
		t.Fatalf("get cached path: %v", err)
	}
	if got != record {
		t.Fatalf("expected the cached record")
	}

	if _, err := svc.GetPath("unknown"); !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("got %v, want ErrPathNotFound", err)
	}
}

func TestCacheEviction(t *testing.T) {
	svc := New(nil, nil, zerolog.Nop())
	a1 := core.MustParseSquare("A1")

	first, err := svc.FindPath(a1, a1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < MaxCachedPaths; i++ {
		if _, err := svc.FindPath(a1, a1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if _, err := svc.GetPath(first.ID); !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("oldest path should have been evicted, got %v", err)
	}
	if len(svc.paths) != MaxCachedPaths {
		t.Fatalf("cache holds %d entries, want %d", len(svc.paths), MaxCachedPaths)
	}
}

func TestGetPathFallsBackToStorage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	svc := New(newStore(t, path), nil, zerolog.Nop())
	record, err := svc.FindPath(core.MustParseSquare("A1"), core.MustParseSquare("D4"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Shutdown(); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	// A fresh service has an empty cache and must read the stored search
	svc = New(newStore(t, path), nil, zerolog.Nop())
	defer svc.Shutdown()

	got, err := svc.GetPath(record.ID)
	if err != nil {
		t.Fatalf("get stored path: %v", err)
	}
	if core.FormatPath(got.Result.Path) != "A1 B3 D4" || !got.Result.Found {
		t.Fatalf("unexpected stored path %+v", got.Result)
	}
	if got.Result.Start != core.MustParseSquare("A1") || got.Result.End != core.MustParseSquare("D4") {
		t.Fatalf("unexpected endpoints %+v", got.Result)
	}

	history, err := svc.History("A1", "", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 || history[0].SearchID != record.ID {
		t.Fatalf("unexpected history %+v", history)
	}

	deleted, err := svc.PurgeHistory()
	if err != nil || deleted != 1 {
		t.Fatalf("purge: deleted=%d err=%v", deleted, err)
	}
	if _, err := svc.GetPath(record.ID); !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("purged path should be gone, got %v", err)
	}
	if svc.GetStorageHealth() != "ok" {
		t.Fatalf("storage health: %s", svc.GetStorageHealth())
	}
}

func TestStorageDisabled(t *testing.T) {
	svc := New(nil, nil, zerolog.Nop())
	if _, err := svc.History("", "", 10); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("history: got %v, want ErrStorageDisabled", err)
	}
	if _, err := svc.PurgeHistory(); !errors.Is(err, ErrStorageDisabled) {
		t.Fatalf("purge: got %v, want ErrStorageDisabled", err)
	}
	if svc.GetStorageHealth() != "disabled" {
		t.Fatalf("storage health: %s", svc.GetStorageHealth())
	}
}

func TestDistances(t *testing.T) {
	svc := New(nil, nil, zerolog.Nop())
	table, err := svc.Distances(core.MustParseSquare("A1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.At(core.MustParseSquare("H8")) != 6 {
		t.Fatalf("A1->H8 distance %d, want 6", table.At(core.MustParseSquare("H8")))
	}
}

func TestAdminAuthentication(t *testing.T) {
	svc := New(nil, []byte("test-secret-minimum-32-characters-long"), zerolog.Nop())

	if _, _, err := svc.AuthenticateAdmin("anything"); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("got %v, want ErrAdminDisabled", err)
	}

	hash, err := auth.HashPassword("knight-tour-1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	svc.SetAdminHash(hash)

	if _, _, err := svc.AuthenticateAdmin("wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}

	token, _, err := svc.AuthenticateAdmin("knight-tour-1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	subject, _, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if subject != AdminSubject {
		t.Fatalf("subject %q, want %q", subject, AdminSubject)
	}

	if _, _, err := svc.ValidateToken(token + "x"); err == nil {
		t.Fatalf("tampered token accepted")
	}
}
