package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Category is the kind of problem a complaint reports.
type Category string

const (
	CategoryInfrastructure Category = "infrastructure"
	CategorySanitation     Category = "sanitation"
	CategoryPublicServices Category = "public-services"
	CategoryCorruption     Category = "corruption"
	CategoryOthers         Category = "others"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryInfrastructure,
	CategorySanitation,
	CategoryPublicServices,
	CategoryCorruption,
	CategoryOthers,
}

// Priority is the urgency chosen by the submitter.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every priority from least to most urgent.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// DefaultPriority is preselected on a fresh form.
const DefaultPriority = PriorityMedium

// Display returns the priority with its first letter upper-cased ("urgent" -> "Urgent").
func (p Priority) Display() string {
	if p == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(string(p))
	return string(unicode.ToUpper(r)) + string(p)[size:]
}

// Status is where a complaint is in its handling. The portal itself only ever
// writes StatusPending; every other value is set by an operator.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusRejected   Status = "Rejected"
)

// Statuses lists every known status.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusRejected}

// ParseStatus matches s case-insensitively against the known statuses.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), string(st)) {
			return st, true
		}
	}
	return "", false
}

// Complaint is a single submitted complaint. The JSON form is the persisted
// layout of the record store.
type Complaint struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Category     Category  `json:"category"`
	District     string    `json:"district"`
	Municipality string    `json:"municipality"`
	Location     string    `json:"location"`
	Description  string    `json:"description"`
	Priority     Priority  `json:"priority"`
	PhotoURL     *string   `json:"photo_url"` // data URL or nil
	Status       Status    `json:"status"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// HasPhoto reports whether an image is attached.
func (c *Complaint) HasPhoto() bool {
	return c.PhotoURL != nil && *c.PhotoURL != ""
}
