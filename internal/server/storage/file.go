package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dmitrijs2005/guildchat/internal/common"
)

const fileExt = ".json"

// FileStore persists each document as "<root>/<prefix>/<name>.json".
//
// Writes go through a temp file followed by os.Rename, so a reader never
// observes a partially written document. On top of that, a per-key mutex
// serializes Put/Delete for the same key; without it two concurrent
// writers could still interleave read-modify-write cycles at the caller.
type FileStore struct {
	root  string
	locks sync.Map // key -> *sync.Mutex
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &FileStore{root: dir}, nil
}

func (s *FileStore) lock(key string) *sync.Mutex {
	// Mutexes are never evicted. The key space is small (one per live
	// entity) and a stale mutex costs a few dozen bytes.
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// splitKey validates the "<prefix>/<name>" shape and guards against path
// escapes. Repositories validate names before calling the store, but the
// store must not rely on that.
func splitKey(key string) (prefix, name string, err error) {
	prefix, name, ok := strings.Cut(key, "/")
	if !ok || prefix == "" || name == "" {
		return "", "", fmt.Errorf("malformed storage key %q", key)
	}
	for _, part := range []string{prefix, name} {
		if part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", "", fmt.Errorf("malformed storage key %q", key)
		}
	}
	return prefix, name, nil
}

func (s *FileStore) path(key string) (string, error) {
	prefix, name, err := splitKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, prefix, name+fileExt), nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

func (s *FileStore) Put(ctx context.Context, key string, data []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", key, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	mu := s.lock(key)
	mu.Lock()
	defer mu.Unlock()

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *FileStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	if prefix == "" || strings.ContainsAny(prefix, `/\`) {
		return nil, fmt.Errorf("malformed storage prefix %q", prefix)
	}

	entries, err := os.ReadDir(filepath.Join(s.root, prefix))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, fileExt))
	}
	return keys, nil
}
