package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"

	"complaintportal/backend/internal/models"
)

// KVStore keeps every record as one JSON array under a single key of a Blob.
//
// Appends read the whole array, add one record and write the whole array
// back. Within one process the mutex serialises that sequence; two processes
// sharing the same blob can still interleave and the last writer wins.
type KVStore struct {
	blob Blob
	key  string
	mu   sync.Mutex
}

// NewKVStore creates a store over blob using key.
func NewKVStore(blob Blob, key string) *KVStore {
	return &KVStore{blob: blob, key: key}
}

// Load returns every record. A missing or empty value is an empty store.
func (s *KVStore) Load(ctx context.Context) ([]models.Complaint, error) {
	raw, ok, err := s.blob.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.key, err)
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []models.Complaint{}, nil
	}

	var records []models.Complaint
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: key %s: %v", ErrCorruptStore, s.key, err)
	}
	if records == nil {
		records = []models.Complaint{}
	}
	return records, nil
}

// Append adds c at the end of the array.
func (s *KVStore) Append(ctx context.Context, c *models.Complaint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == c.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
	}
	records = append(records, *c)

	if err := s.write(ctx, records); err != nil {
		log.Printf("ERROR: Failed to save complaint %s: %v", c.ID, err)
		return err
	}
	return nil
}

// FindByID scans the array for an exact identifier match.
func (s *KVStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	records, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			found := records[i]
			return &found, nil
		}
	}
	return nil, nil
}

// UpdateStatus rewrites the status of one record in place.
func (s *KVStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.Load(ctx)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == id {
			records[i].Status = status
			return s.write(ctx, records)
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (s *KVStore) write(ctx context.Context, records []models.Complaint) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode complaints: %w", err)
	}
	if err := s.blob.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.key, err)
	}
	return nil
}
