package kv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func openBackends(t *testing.T) map[Backend]Store {
	t.Helper()

	dir := t.TempDir()
	stores := make(map[Backend]Store)
	for _, backend := range ValidBackends() {
		store, err := Open(backend, filepath.Join(dir, DefaultFilename(backend)+"-"+string(backend)))
		if err != nil {
			t.Fatalf("failed to open %s store: %v", backend, err)
		}
		t.Cleanup(func() { store.Close() })
		stores[backend] = store
	}
	return stores
}

func TestStore_GetSetDelete(t *testing.T) {
	for backend, store := range openBackends(t) {
		t.Run(string(backend), func(t *testing.T) {
			if _, found, err := store.Get("tasks"); err != nil || found {
				t.Fatalf("expected missing key, got found=%v err=%v", found, err)
			}

			if err := store.Set("tasks", `[{"id":"1"}]`); err != nil {
				t.Fatalf("failed to set: %v", err)
			}
			if err := store.Set("darkMode", "true"); err != nil {
				t.Fatalf("failed to set: %v", err)
			}
			if err := store.Set("tasks", `[]`); err != nil {
				t.Fatalf("failed to overwrite: %v", err)
			}

			value, found, err := store.Get("tasks")
			if err != nil || !found || value != `[]` {
				t.Errorf("Get(tasks) = %q, %v, %v", value, found, err)
			}

			if err := store.Delete("tasks"); err != nil {
				t.Fatalf("failed to delete: %v", err)
			}
			if _, found, _ := store.Get("tasks"); found {
				t.Error("expected key removed")
			}
			if value, _, _ := store.Get("darkMode"); value != "true" {
				t.Errorf("expected other keys kept, got %q", value)
			}
			if err := store.Delete("never-set"); err != nil {
				t.Errorf("expected deleting a missing key to succeed, got %v", err)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	if _, err := Open("redis", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestParseBackend(t *testing.T) {
	if got, err := ParseBackend(""); err != nil || got != BackendFile {
		t.Errorf("ParseBackend(\"\") = %q, %v", got, err)
	}
	if got, err := ParseBackend(" SQLite "); err != nil || got != BackendSQLite {
		t.Errorf("ParseBackend(SQLite) = %q, %v", got, err)
	}
	_, err := ParseBackend("redis")
	if !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if !strings.Contains(err.Error(), "file, sqlite, memory") {
		t.Errorf("expected valid values listed, got %q", err)
	}
}

func TestMemory_FailWrites(t *testing.T) {
	store := NewMemory()
	if err := store.Set("k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}

	store.FailWrites(true)
	if err := store.Set("k", "v2"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if err := store.Delete("k"); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if value, _, _ := store.Get("k"); value != "v1" {
		t.Errorf("expected failed writes to leave v1, got %q", value)
	}

	store.FailWrites(false)
	if err := store.Set("k", "v3"); err != nil {
		t.Errorf("expected writes to recover, got %v", err)
	}
}

func TestMemory_Closed(t *testing.T) {
	store := NewMemory()
	store.Close()
	if _, _, err := store.Get("k"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestFile_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tasks.json")

	first, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, found, err := first.Get("tasks"); err != nil || found {
		t.Fatalf("expected empty store before the directory exists, got %v %v", found, err)
	}
	if err := first.Set("tasks", "[]"); err != nil {
		t.Fatalf("set: %v", err)
	}

	second, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if value, found, err := second.Get("tasks"); err != nil || !found || value != "[]" {
		t.Errorf("Get after reopen = %q, %v, %v", value, found, err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp") {
			t.Errorf("unexpected temp file left behind: %s", entry.Name())
		}
	}
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, _, err := store.Get("tasks"); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestFile_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store, err := OpenFile(path)
			if err != nil {
				t.Errorf("open: %v", err)
				return
			}
			key := string(rune('a' + i))
			if err := store.Set(key, key); err != nil {
				t.Errorf("set %s: %v", key, err)
			}
		}(i)
	}
	wg.Wait()

	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 0; i < 8; i++ {
		key := string(rune('a' + i))
		if value, found, err := store.Get(key); err != nil || !found || value != key {
			t.Errorf("Get(%s) = %q, %v, %v", key, value, found, err)
		}
	}
}

func TestSQLite_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tasks.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Set("darkMode", "false"); err != nil {
		t.Fatalf("set: %v", err)
	}
	first.Close()

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()
	if value, found, err := second.Get("darkMode"); err != nil || !found || value != "false" {
		t.Errorf("Get after reopen = %q, %v, %v", value, found, err)
	}
}

func TestSQLiteDSN(t *testing.T) {
	dsn := sqliteDSN("/tmp/tasks.db")
	if !strings.HasPrefix(dsn, "file:///tmp/tasks.db?") {
		t.Errorf("unexpected dsn %q", dsn)
	}
	if !strings.Contains(dsn, "mode=rwc") || !strings.Contains(dsn, "busy_timeout") {
		t.Errorf("expected mode and busy timeout in %q", dsn)
	}
	if got := sqliteDSN("file::memory:"); got != "file::memory:" {
		t.Errorf("expected file: DSNs passed through, got %q", got)
	}
}
