package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Blob is a string key/value store holding whole serialized values.
type Blob interface {
	// Get returns the value of key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set replaces the value of key in a single write.
	Set(ctx context.Context, key, value string) error
}

// MemoryBlob keeps values in process memory.
type MemoryBlob struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryBlob creates an empty MemoryBlob.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{values: make(map[string]string)}
}

func (b *MemoryBlob) Get(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	return v, ok, nil
}

func (b *MemoryBlob) Set(_ context.Context, key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return nil
}

// FileBlob stores each key as a file in Dir. The key "complaints" maps to
// "<Dir>/complaints.json".
type FileBlob struct {
	Dir string
}

func (b FileBlob) path(key string) string {
	return filepath.Join(b.Dir, key+".json")
}

func (b FileBlob) Get(_ context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes to a temporary file and renames it over the old one, so a reader
// sees either the previous or the new array.
func (b FileBlob) Set(_ context.Context, key, value string) error {
	if err := os.MkdirAll(b.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(b.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), b.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", b.path(key), err)
	}
	return nil
}

// RedisBlob stores each key as a Redis string.
type RedisBlob struct {
	Client *redis.Client
}

func (b RedisBlob) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := b.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (b RedisBlob) Set(ctx context.Context, key, value string) error {
	return b.Client.Set(ctx, key, value, 0).Err()
}
