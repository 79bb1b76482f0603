package display

import (
	"time"

	"complaintportal/backend/internal/localization"
	"complaintportal/backend/internal/models"
)

// MilestoneView is a timeline entry ready for rendering.
type MilestoneView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	At          string `json:"at"`
	Dot         string `json:"dot"`
}

// View is the presentation of a complaint.
type View struct {
	StatusColor   string          `json:"status_color"`
	PriorityColor string          `json:"priority_color"`
	PriorityLabel string          `json:"priority_label"`
	CategoryLabel string          `json:"category_label"`
	SubmittedAt   string          `json:"submitted_at"`
	Timeline      []MilestoneView `json:"timeline"`
}

// Presenter builds views in one language and time zone.
type Presenter struct {
	Loc      *localization.Localizer
	Location *time.Location
}

// NewPresenter returns a Presenter rendering times in loc's zone (UTC if nil).
func NewPresenter(l *localization.Localizer, tz *time.Location) *Presenter {
	if tz == nil {
		tz = time.UTC
	}
	return &Presenter{Loc: l, Location: tz}
}

// Build derives the view of c in lang.
func (p *Presenter) Build(lang string, c *models.Complaint) View {
	milestones := Timeline(c.SubmittedAt, string(c.Status))
	tl := make([]MilestoneView, 0, len(milestones))
	for _, m := range milestones {
		tl = append(tl, MilestoneView{
			Title:       p.Loc.GetString(lang, m.TitleKey()),
			Description: p.Loc.GetString(lang, m.TextKey()),
			At:          FormatDate(m.At.In(p.Location)),
			Dot:         m.Dot(),
		})
	}

	return View{
		StatusColor:   StatusColor(string(c.Status)),
		PriorityColor: PriorityColor(string(c.Priority)),
		PriorityLabel: PriorityLabel(p.Loc, lang, c.Priority),
		CategoryLabel: CategoryLabel(p.Loc, lang, c.Category),
		SubmittedAt:   FormatDate(c.SubmittedAt.In(p.Location)),
		Timeline:      tl,
	}
}
