package complaint_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/idgen"
	"complaintportal/backend/internal/models"
	"complaintportal/backend/internal/reference"
	"complaintportal/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// A 1x1 transparent PNG as a data URL.
const tinyPNG = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

var fixedNow = time.Date(2026, time.February, 3, 4, 5, 6, 789_654_321, time.UTC)

func validDraft() complaint.Draft {
	return complaint.Draft{
		FullName:     "Sita Sharma",
		Email:        "sita@example.com",
		Phone:        "9800000000",
		Category:     "infrastructure",
		District:     "Kathmandu",
		Municipality: "Kathmandu Metropolitan City",
		Location:     "New Road",
		Description:  "Large pothole near the junction.",
		Priority:     "urgent",
	}
}

func newService(store *MockStore, opts ...idgen.Option) *complaint.Service {
	opts = append([]idgen.Option{
		idgen.WithClock(func() time.Time { return fixedNow }),
		idgen.WithRandom(func(int) int { return 42 }),
	}, opts...)
	return complaint.NewService(store, reference.Default(), opts...).
		WithClock(func() time.Time { return fixedNow })
}

func TestSubmit_StoresPendingComplaint(t *testing.T) {
	// Arrange
	store := new(MockStore)
	store.On("FindByID", mock.Anything, "COMP-1770091506789-42").Return(nil, nil)
	store.On("Append", mock.Anything, mock.AnythingOfType("*models.Complaint")).Return(nil)
	svc := newService(store)

	// Act
	c, err := svc.Submit(context.Background(), validDraft())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "COMP-1770091506789-42", c.ID)
	assert.True(t, idgen.Valid(c.ID))
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, models.CategoryInfrastructure, c.Category)
	assert.Equal(t, models.PriorityUrgent, c.Priority)
	assert.Nil(t, c.PhotoURL)
	assert.Equal(t, fixedNow.Truncate(time.Millisecond), c.SubmittedAt)
	store.AssertCalled(t, "Append", mock.Anything, c)
}

func TestSubmit_TrimsFieldsAndKeepsPhoto(t *testing.T) {
	store := new(MockStore)
	store.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)
	store.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := newService(store)

	d := validDraft()
	d.FullName = "  Sita Sharma \n"
	d.PhotoURL = tinyPNG

	c, err := svc.Submit(context.Background(), d)

	require.NoError(t, err)
	assert.Equal(t, "Sita Sharma", c.FullName)
	require.NotNil(t, c.PhotoURL)
	assert.Equal(t, d.PhotoURL, *c.PhotoURL)
}

func TestSubmit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*complaint.Draft)
		field  string
	}{
		{"missing name", func(d *complaint.Draft) { d.FullName = "   " }, "full_name"},
		{"bad email", func(d *complaint.Draft) { d.Email = "not-an-email" }, "email"},
		{"unknown category", func(d *complaint.Draft) { d.Category = "potholes" }, "category"},
		{"unknown priority", func(d *complaint.Draft) { d.Priority = "critical" }, "priority"},
		{"unknown district", func(d *complaint.Draft) { d.District = "Atlantis" }, "district"},
		{"municipality from another district", func(d *complaint.Draft) { d.Municipality = "Pokhara Metropolitan City" }, "municipality"},
		{"missing municipality", func(d *complaint.Draft) { d.Municipality = "" }, "municipality"},
		{"photo is not a data url", func(d *complaint.Draft) { d.PhotoURL = "https://example.com/x.png" }, "photo_url"},
		{"photo payload is not base64", func(d *complaint.Draft) { d.PhotoURL = "data:image/png;base64,<not base64!>" }, "photo_url"},
		{"photo payload is not an image", func(d *complaint.Draft) { d.PhotoURL = "data:image/png;base64,aGVsbG8sIHdvcmxk" }, "photo_url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			svc := newService(store)
			d := validDraft()
			tt.mutate(&d)

			c, err := svc.Submit(context.Background(), d)

			assert.Nil(t, c)
			var verr *complaint.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_PhotoOverLimitIsRejected(t *testing.T) {
	store := new(MockStore)
	svc := newService(store).WithPhotoLimit(32)
	d := validDraft()
	d.PhotoURL = tinyPNG

	c, err := svc.Submit(context.Background(), d)

	assert.Nil(t, c)
	var verr *complaint.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at most 32 bytes", verr.Fields["photo_url"])
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestSubmit_RetriesOnIdentifierCollision(t *testing.T) {
	draws := []int{7, 7, 8}
	i := 0
	store := new(MockStore)
	store.On("FindByID", mock.Anything, "COMP-1770091506789-7").Return(&models.Complaint{ID: "COMP-1770091506789-7"}, nil)
	store.On("FindByID", mock.Anything, "COMP-1770091506789-8").Return(nil, nil)
	store.On("Append", mock.Anything, mock.Anything).Return(nil)
	svc := newService(store, idgen.WithRandom(func(int) int { n := draws[i]; i++; return n }))

	c, err := svc.Submit(context.Background(), validDraft())

	require.NoError(t, err)
	assert.Equal(t, "COMP-1770091506789-8", c.ID)
}

func TestSubmit_StorageFailure(t *testing.T) {
	store := new(MockStore)
	store.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)
	store.On("Append", mock.Anything, mock.Anything).Return(storage.ErrCorruptStore)
	svc := newService(store)

	c, err := svc.Submit(context.Background(), validDraft())

	assert.Nil(t, c)
	assert.ErrorIs(t, err, storage.ErrCorruptStore)
	var verr *complaint.ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestSubmit_IdentifierCheckFailure(t *testing.T) {
	store := new(MockStore)
	store.On("FindByID", mock.Anything, mock.Anything).Return(nil, errors.New("disk unavailable"))
	svc := newService(store)

	_, err := svc.Submit(context.Background(), validDraft())

	assert.ErrorContains(t, err, "disk unavailable")
	store.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}

func TestTrack(t *testing.T) {
	stored := &models.Complaint{ID: "COMP-1-1", Status: models.StatusInProgress}

	t.Run("empty query", func(t *testing.T) {
		store := new(MockStore)
		svc := newService(store)

		_, err := svc.Track(context.Background(), "   ")

		assert.ErrorIs(t, err, complaint.ErrEmptyQuery)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("found after trimming", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindByID", mock.Anything, "COMP-1-1").Return(stored, nil)
		svc := newService(store)

		c, err := svc.Track(context.Background(), " COMP-1-1 ")

		require.NoError(t, err)
		assert.Equal(t, stored, c)
	})

	t.Run("not found", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindByID", mock.Anything, "COMP-9-9").Return(nil, nil)
		svc := newService(store)

		c, err := svc.Track(context.Background(), "COMP-9-9")

		assert.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("storage error", func(t *testing.T) {
		store := new(MockStore)
		store.On("FindByID", mock.Anything, "COMP-1-1").Return(nil, storage.ErrCorruptStore)
		svc := newService(store)

		_, err := svc.Track(context.Background(), "COMP-1-1")

		assert.ErrorIs(t, err, storage.ErrCorruptStore)
	})
}

func TestSubmitThenTrack_WithRealStore(t *testing.T) {
	store := storage.NewKVStore(storage.NewMemoryBlob(), "complaints")
	svc := complaint.NewService(store, reference.Default())

	created, err := svc.Submit(context.Background(), validDraft())
	require.NoError(t, err)

	found, err := svc.Track(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	all, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, models.StatusPending, all[0].Status)
}
