package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"
)

const (
	fileMode = 0o600
	dirMode  = 0o750
)

// FS is the filesystem a File store persists to.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(name string, perm fs.FileMode) error
}

// OSFS is the operating system filesystem.
type OSFS struct{}

func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.FromSlash(name))
}

func (OSFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(filepath.FromSlash(name), data, perm)
}

func (OSFS) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(filepath.FromSlash(name), perm)
}

// File keeps every key in one JSON object file, rewritten on each change.
type File struct {
	mu   sync.Mutex
	fsys FS
	name string
}

// NewFile returns a store persisting to the slash-separated file name on fsys.
// The file is created on first write.
func NewFile(fsys FS, name string) *File {
	return &File{fsys: fsys, name: name}
}

func (f *File) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return nil, false, err
	}

	value, ok := data[key]
	if !ok {
		return nil, false, nil
	}

	return []byte(value), true, nil
}

func (f *File) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	data[key] = string(value)

	return f.save(data)
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return err
	}

	if _, ok := data[key]; !ok {
		return nil
	}

	delete(data, key)

	return f.save(data)
}

func (f *File) load() (map[string]string, error) {
	data := make(map[string]string)

	raw, err := f.fsys.ReadFile(f.name)
	if errors.Is(err, fs.ErrNotExist) {
		return data, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("corrupt store file %s: %w", f.name, err)
	}

	return data, nil
}

func (f *File) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	if dir := path.Dir(f.name); dir != "." && dir != "/" {
		if err := f.fsys.MkdirAll(dir, dirMode); err != nil {
			return err
		}
	}

	return f.fsys.WriteFile(f.name, raw, fileMode)
}
