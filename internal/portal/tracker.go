package portal

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/models"
)

// ErrSuperseded is returned by a search whose result was discarded because a
// newer search started while it was running.
var ErrSuperseded = errors.New("search superseded by a newer one")

// Finder looks up a complaint by identifier, returning nil, nil when absent.
type Finder interface {
	Track(ctx context.Context, query string) (*models.Complaint, error)
}

// TrackerState is a snapshot of the tracker for rendering.
type TrackerState struct {
	Query     string
	Result    *models.Complaint
	Searched  string
	Searching bool
}

// Tracker is the complaint lookup of one visitor.
type Tracker struct {
	mu     sync.Mutex
	svc    Finder
	delay  time.Duration
	text   texts
	notify Notify

	query     string
	result    *models.Complaint
	searched  string
	searching bool
	gen       uint64
}

func newTracker(svc Finder, delay time.Duration, text texts, notify Notify) *Tracker {
	return &Tracker{svc: svc, delay: delay, text: text, notify: notify}
}

// SetQuery replaces the search input.
func (t *Tracker) SetQuery(q string) {
	t.mu.Lock()
	t.query = q
	t.mu.Unlock()
}

// State returns a snapshot of the tracker.
func (t *Tracker) State() TrackerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return TrackerState{
		Query:     t.query,
		Result:    t.result,
		Searched:  t.searched,
		Searching: t.searching,
	}
}

// Search looks up the current query. A blank query only raises a toast and
// leaves the displayed result untouched. If another search starts before this
// one finishes, this one's result is dropped and ErrSuperseded is returned.
func (t *Tracker) Search(ctx context.Context) (*models.Complaint, error) {
	t.mu.Lock()
	q := strings.TrimSpace(t.query)
	if q == "" {
		t.mu.Unlock()
		t.notify(t.text.emptyQuery())
		return nil, complaint.ErrEmptyQuery
	}
	t.gen++
	gen := t.gen
	t.searching = true
	t.mu.Unlock()

	if err := t.wait(ctx); err != nil {
		t.finish(gen)
		return nil, err
	}

	c, err := t.svc.Track(ctx, q)

	t.mu.Lock()
	if gen != t.gen {
		t.mu.Unlock()
		return nil, ErrSuperseded
	}
	if err == nil {
		t.result = c
		t.searched = q
	}
	t.searching = false
	t.mu.Unlock()

	switch {
	case err != nil:
		t.notify(t.text.searchFailed())
		return nil, err
	case c == nil:
		t.notify(t.text.notFound())
	}
	return c, nil
}

func (t *Tracker) wait(ctx context.Context) error {
	if t.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(t.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (t *Tracker) finish(gen uint64) {
	t.mu.Lock()
	if gen == t.gen {
		t.searching = false
	}
	t.mu.Unlock()
}
