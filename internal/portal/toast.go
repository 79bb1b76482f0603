// Package portal holds the per-visitor state of the complaint portal: the
// draft complaint form, the tracker and the page that ties them together.
package portal

import (
	"complaintportal/backend/internal/localization"
)

// Variant selects how a toast is styled.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is a transient notification shown once to the visitor.
type Toast struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Notify receives toasts raised by a Form or Tracker.
type Notify func(Toast)

// texts builds toasts in one language.
type texts struct {
	loc  *localization.Localizer
	lang string
}

func (t texts) submitted(id string) Toast {
	return Toast{
		Title:       t.loc.GetString(t.lang, "toast.submitted.title"),
		Description: t.loc.Format(t.lang, "toast.submitted.text", id),
		Variant:     VariantDefault,
	}
}

func (t texts) errorToast(key string) Toast {
	return Toast{
		Title:       t.loc.GetString(t.lang, "toast.error.title"),
		Description: t.loc.GetString(t.lang, key),
		Variant:     VariantDestructive,
	}
}

func (t texts) invalid(msg string) Toast {
	return Toast{
		Title:       t.loc.GetString(t.lang, "toast.error.title"),
		Description: msg,
		Variant:     VariantDestructive,
	}
}

func (t texts) submitFailed() Toast { return t.errorToast("toast.submit_failed.text") }
func (t texts) emptyQuery() Toast   { return t.errorToast("toast.empty_query.text") }
func (t texts) searchFailed() Toast { return t.errorToast("toast.search_failed.text") }
func (t texts) photoFailed() Toast  { return t.errorToast("toast.photo_failed.text") }

func (t texts) notFound() Toast {
	return Toast{
		Title:       t.loc.GetString(t.lang, "toast.not_found.title"),
		Description: t.loc.GetString(t.lang, "toast.not_found.text"),
		Variant:     VariantDefault,
	}
}
