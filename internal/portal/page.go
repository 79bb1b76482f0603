package portal

import (
	"context"
	"errors"
	"sync"
	"time"

	"complaintportal/backend/internal/localization"
	"complaintportal/backend/internal/models"
	"complaintportal/backend/internal/reference"
)

// Tab is the visible section of the page.
type Tab string

const (
	TabSubmit Tab = "submit"
	TabTrack  Tab = "track"
)

// ErrUnknownTab is returned by SetTab for anything but submit or track.
var ErrUnknownTab = errors.New("unknown tab")

// Deps are shared by every Page.
type Deps struct {
	Submitter     Submitter
	Finder        Finder
	Catalog       *reference.Catalog
	Localizer     *localization.Localizer
	SearchDelay   time.Duration
	PhotoMaxBytes int64
}

// Page is everything one visitor sees: the active tab, the form, the tracker
// and pending toasts.
type Page struct {
	Form    *Form
	Tracker *Tracker

	mu     sync.Mutex
	lang   string
	text   texts
	tab    Tab
	toasts []Toast
}

// NewPage creates a page on the submit tab.
func NewPage(deps Deps, lang string) *Page {
	text := texts{loc: deps.Localizer, lang: lang}
	p := &Page{lang: lang, text: text, tab: TabSubmit}
	p.Form = newForm(deps.Submitter, deps.Catalog, text, p.push, deps.PhotoMaxBytes)
	p.Tracker = newTracker(deps.Finder, deps.SearchDelay, text, p.push)
	return p
}

func (p *Page) push(t Toast) {
	p.mu.Lock()
	p.toasts = append(p.toasts, t)
	p.mu.Unlock()
}

// Invalid shows err to the visitor as a validation toast.
func (p *Page) Invalid(err error) {
	p.push(p.text.invalid(err.Error()))
}

// Lang is the page language.
func (p *Page) Lang() string {
	return p.lang
}

// Tab returns the active tab.
func (p *Page) Tab() Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tab
}

// SetTab switches the active tab.
func (p *Page) SetTab(name string) error {
	tab := Tab(name)
	if tab != TabSubmit && tab != TabTrack {
		return ErrUnknownTab
	}
	p.mu.Lock()
	p.tab = tab
	p.mu.Unlock()
	return nil
}

// DrainToasts returns the pending toasts and clears them.
func (p *Page) DrainToasts() []Toast {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.toasts
	p.toasts = nil
	return out
}

// Submit files the form. A successful submission fills the tracker with the
// new identifier and switches to the track tab.
func (p *Page) Submit(ctx context.Context) (*models.Complaint, error) {
	return p.Form.Submit(ctx, func(id string) {
		p.Tracker.SetQuery(id)
		p.mu.Lock()
		p.tab = TabTrack
		p.mu.Unlock()
	})
}
