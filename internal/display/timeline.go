package display

import (
	"time"

	"complaintportal/backend/internal/config"
	"complaintportal/backend/internal/models"
)

// Stage identifies one milestone of the timeline.
type Stage string

const (
	StageSubmitted Stage = "submitted"
	StageReview    Stage = "review"
	StageAction    Stage = "action"
	StageResolved  Stage = "resolved"
	StageRejected  Stage = "rejected"
)

const (
	dotDefault  = "bg-nepal-blue"
	dotResolved = "bg-green-500"
	dotRejected = "bg-red-500"
)

// Milestone is one synthetic timeline entry.
type Milestone struct {
	Stage Stage
	At    time.Time
}

// Dot is the colour of the milestone marker.
func (m Milestone) Dot() string {
	switch m.Stage {
	case StageResolved:
		return dotResolved
	case StageRejected:
		return dotRejected
	default:
		return dotDefault
	}
}

// TitleKey and TextKey are the localization keys for the milestone.
func (m Milestone) TitleKey() string { return "timeline." + string(m.Stage) + ".title" }
func (m Milestone) TextKey() string  { return "timeline." + string(m.Stage) + ".text" }

// Timeline derives the milestones for a complaint from its submission time and
// current status. Offsets are fixed; they do not reflect when the status
// actually changed.
func Timeline(submittedAt time.Time, status string) []Milestone {
	out := []Milestone{{Stage: StageSubmitted, At: submittedAt}}

	st, known := models.ParseStatus(status)
	if known && st == models.StatusPending {
		return out
	}
	out = append(out, Milestone{Stage: StageReview, At: submittedAt.Add(config.ReviewOffset)})

	switch st {
	case models.StatusInProgress:
		out = append(out, Milestone{Stage: StageAction, At: submittedAt.Add(config.ActionOffset)})
	case models.StatusCompleted:
		out = append(out, Milestone{Stage: StageResolved, At: submittedAt.Add(config.ResolutionOffset)})
	case models.StatusRejected:
		out = append(out, Milestone{Stage: StageRejected, At: submittedAt.Add(config.RejectionOffset)})
	}
	return out
}
