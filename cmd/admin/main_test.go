package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"complaintportal/backend/internal/models"
	"complaintportal/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) *storage.KVStore {
	t.Helper()
	s := storage.NewKVStore(storage.NewMemoryBlob(), "complaints")
	for _, id := range []string{"COMP-1700000000000-1", "COMP-1700000000001-2"} {
		require.NoError(t, s.Append(context.Background(), &models.Complaint{
			ID:          id,
			Category:    models.CategoryOthers,
			District:    "Banke",
			Priority:    models.PriorityLow,
			Status:      models.StatusPending,
			SubmittedAt: time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC),
		}))
	}
	return s
}

func run(t *testing.T, store storage.Backend, args ...string) (string, error) {
	t.Helper()
	closed := false
	cmd := rootCmd(func(context.Context) (storage.Backend, func() error, error) {
		return store, func() error { closed = true; return nil }, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	if err == nil {
		assert.True(t, closed, "store is closed after the command")
	}
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, seededStore(t), "list")

	require.NoError(t, err)
	assert.Contains(t, out, "COMP-1700000000000-1")
	assert.Contains(t, out, "COMP-1700000000001-2")
	assert.Contains(t, out, "November 14, 2023, 10:13 PM")
	assert.Less(t, bytes.Index([]byte(out), []byte("-1 ")), bytes.Index([]byte(out), []byte("-2 ")))
}

func TestShow(t *testing.T) {
	out, err := run(t, seededStore(t), "show", "COMP-1700000000001-2")
	require.NoError(t, err)

	var c models.Complaint
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Equal(t, "COMP-1700000000001-2", c.ID)

	_, err = run(t, seededStore(t), "show", "COMP-9-9")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSetStatus(t *testing.T) {
	store := seededStore(t)

	out, err := run(t, store, "set-status", "COMP-1700000000000-1", "in progress")
	require.NoError(t, err)
	assert.Contains(t, out, "is now In Progress")

	c, err := store.FindByID(context.Background(), "COMP-1700000000000-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, c.Status)

	_, err = run(t, store, "set-status", "COMP-1700000000000-1", "escalated")
	assert.ErrorContains(t, err, "unknown status")

	_, err = run(t, store, "set-status", "COMP-9-9", "Completed")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestOpenFailure(t *testing.T) {
	cmd := rootCmd(func(context.Context) (storage.Backend, func() error, error) {
		return nil, nil, errors.New("no database")
	})
	cmd.SetArgs([]string{"list"})
	cmd.SetOut(&bytes.Buffer{})

	assert.ErrorContains(t, cmd.ExecuteContext(context.Background()), "no database")
}
