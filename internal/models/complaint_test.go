package models_test

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"complaintportal/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComplaintJSONTags verifies the persisted field names stay snake_case.
func TestComplaintJSONTags(t *testing.T) {
	want := map[string]string{
		"ID":           "id",
		"FullName":     "full_name",
		"Email":        "email",
		"Phone":        "phone",
		"Category":     "category",
		"District":     "district",
		"Municipality": "municipality",
		"Location":     "location",
		"Description":  "description",
		"Priority":     "priority",
		"PhotoURL":     "photo_url",
		"Status":       "status",
		"SubmittedAt":  "submitted_at",
	}

	typ := reflect.TypeOf(models.Complaint{})
	assert.Equal(t, len(want), typ.NumField(), "every field should have an expected tag")
	for field, tag := range want {
		f, found := typ.FieldByName(field)
		require.True(t, found, "%s field should exist", field)
		assert.Equal(t, tag, f.Tag.Get("json"), "json tag of %s", field)
	}
}

// TestComplaintJSON_NullPhoto verifies an absent photo is written as null.
func TestComplaintJSON_NullPhoto(t *testing.T) {
	c := models.Complaint{
		ID:          "COMP-1-1",
		Status:      models.StatusPending,
		Priority:    models.PriorityLow,
		SubmittedAt: time.Date(2026, 1, 2, 3, 4, 5, 6e6, time.UTC),
	}

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "photo_url")
	assert.Nil(t, raw["photo_url"])
	assert.Equal(t, "2026-01-02T03:04:05.006Z", raw["submitted_at"])
	assert.False(t, c.HasPhoto())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want models.Status
		ok   bool
	}{
		{"Pending", models.StatusPending, true},
		{"in progress", models.StatusInProgress, true},
		{" COMPLETED ", models.StatusCompleted, true},
		{"rejected", models.StatusRejected, true},
		{"archived", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := models.ParseStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityDisplay(t *testing.T) {
	assert.Equal(t, "Urgent", models.PriorityUrgent.Display())
	assert.Equal(t, "Low", models.PriorityLow.Display())
	assert.Equal(t, "", models.Priority("").Display())
	assert.Equal(t, "Élevée", models.Priority("élevée").Display())
	assert.Equal(t, "तत्काल", models.Priority("तत्काल").Display())
}
