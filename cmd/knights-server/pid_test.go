package main

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestAcquirePIDFileLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knights.pid")

	first, err := acquirePIDFile(path, true)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}

	pid, err := readPID(path)
	if err != nil {
		t.Fatalf("read PID: %v", err)
	}
	if pid != os.Getpid() {
		t.Fatalf("got PID %d, want %d", pid, os.Getpid())
	}

	// This process is alive and holds the lock
	if _, err := acquirePIDFile(path, true); !errors.Is(err, errInstanceRunning) {
		t.Fatalf("second acquire: got %v, want errInstanceRunning", err)
	}

	first.release()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("PID file not removed on release: %v", err)
	}

	again, err := acquirePIDFile(path, true)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again.release()
}

func TestAcquirePIDFileExisting(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"stale process", "999999999\n", false},
		{"corrupted", "not-a-pid\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "knights.pid")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write PID file: %v", err)
			}

			p, err := acquirePIDFile(path, true)
			if tt.wantErr {
				if err == nil {
					p.release()
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("acquire: %v", err)
			}
			defer p.release()

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read PID file: %v", err)
			}
			if strings.TrimSpace(string(data)) != strconv.Itoa(os.Getpid()) {
				t.Errorf("PID file holds %q", data)
			}
		})
	}
}

func TestAcquirePIDFileWithoutLockOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "knights.pid")
	if err := os.WriteFile(path, []byte("not-a-pid\n"), 0644); err != nil {
		t.Fatalf("write PID file: %v", err)
	}

	p, err := acquirePIDFile(path, false)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer p.release()

	if pid, err := readPID(path); err != nil || pid != os.Getpid() {
		t.Errorf("got PID %d (%v), want %d", pid, err, os.Getpid())
	}
}
