// Package display derives everything the tracker shows about a complaint that
// is not stored on the record itself: badge colours, labels and the status
// timeline. Nothing here is persisted; it is recomputed on every view.
package display

import (
	"strings"
	"time"

	"complaintportal/backend/internal/config"
	"complaintportal/backend/internal/localization"
	"complaintportal/backend/internal/models"
)

// DateLayout renders "March 4, 2026, 09:05 AM".
const DateLayout = "January 2, 2006, 03:04 PM"

// StatusColor returns the badge colour for a status. Unknown values get the
// neutral default.
func StatusColor(status string) string {
	return lookupColor(config.StatusColors, status)
}

// PriorityColor returns the badge colour for a priority. Unknown values get
// the neutral default.
func PriorityColor(priority string) string {
	return lookupColor(config.PriorityColors, priority)
}

func lookupColor(colors map[string]string, key string) string {
	if c, ok := colors[strings.ToLower(strings.TrimSpace(key))]; ok {
		return c
	}
	return config.DefaultBadgeColor
}

// CategoryLabel returns the human label for a category in lang. A category
// without a translation is shown as stored.
func CategoryLabel(loc *localization.Localizer, lang string, category models.Category) string {
	if v, ok := loc.Lookup(lang, "category."+string(category)); ok {
		return v
	}
	return string(category)
}

// PriorityLabel returns e.g. "Urgent Priority".
func PriorityLabel(loc *localization.Localizer, lang string, p models.Priority) string {
	if p == "" {
		return ""
	}
	return p.Display() + " " + loc.GetString(lang, "priority_suffix")
}

// FormatDate renders t in its own location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
