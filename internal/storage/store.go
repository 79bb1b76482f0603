// Package storage persists complaint records. Every backend keeps records in
// insertion order, never edits them except for operator status changes, and
// never deletes them.
package storage

import (
	"context"
	"errors"

	"complaintportal/backend/internal/models"
)

var (
	// ErrCorruptStore means the persisted records could not be decoded.
	ErrCorruptStore = errors.New("complaint store is corrupt")
	// ErrDuplicateID means a record with the same identifier is already stored.
	ErrDuplicateID = errors.New("complaint identifier already exists")
	// ErrNotFound is returned by operator updates that target a missing record.
	ErrNotFound = errors.New("complaint not found")
)

// Store is the record store used by the submission and tracking flows.
type Store interface {
	// Load returns all records in insertion order. A store that was never
	// written returns an empty slice.
	Load(ctx context.Context) ([]models.Complaint, error)
	// Append adds c to the end of the store. It never replaces an existing
	// record with the same identifier.
	Append(ctx context.Context, c *models.Complaint) error
	// FindByID returns the record with exactly this identifier, or nil, nil.
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
}

// Backend is a Store that also accepts operator status changes.
type Backend interface {
	Store
	UpdateStatus(ctx context.Context, id string, status models.Status) error
}
