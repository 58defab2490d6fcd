package kv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// File stores every key in a single JSON object on disk. Each operation
// takes an exclusive lock on a sibling .lock file, so several processes can
// share one file.
type File struct {
	path string
	lock *flock.Flock
}

// OpenFile opens (without creating) the JSON file at path. The parent
// directory is created on first write.
func OpenFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("file store path is empty")
	}
	return &File{path: path, lock: flock.New(path + ".lock")}, nil
}

// Path returns the data file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := f.withLock(false, func() error {
		values, err := f.read()
		if err != nil {
			return err
		}
		value, found = values[key]
		return nil
	})
	return value, found, err
}

func (f *File) Set(key, value string) error {
	return f.update(func(values map[string]string) {
		values[key] = value
	})
}

func (f *File) Delete(key string) error {
	return f.update(func(values map[string]string) {
		delete(values, key)
	})
}

// Close releases nothing; each operation locks and unlocks on its own.
func (f *File) Close() error {
	return nil
}

func (f *File) update(fn func(values map[string]string)) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return f.withLock(true, func() error {
		values, err := f.read()
		if err != nil {
			return err
		}
		fn(values)
		return f.write(values)
	})
}

func (f *File) withLock(exclusive bool, fn func() error) error {
	if !exclusive {
		if _, err := os.Stat(filepath.Dir(f.path)); errors.Is(err, os.ErrNotExist) {
			return fn()
		}
	}

	var err error
	if exclusive {
		err = f.lock.Lock()
	} else {
		err = f.lock.RLock()
	}
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = f.lock.Unlock() }()

	return fn()
}

func (f *File) read() (map[string]string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]string), nil
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("unmarshal data file %s: %w", f.path, err)
	}
	return values, nil
}

func (f *File) write(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal data file: %w", err)
	}
	data = append(data, '\n')

	if existing, err := os.ReadFile(f.path); err == nil {
		if bytes.Equal(existing, data) {
			return nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read data file: %w", err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp data file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp data file: %w", err)
	}

	if err := os.Rename(name, f.path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename data file: %w", err)
	}
	return nil
}
