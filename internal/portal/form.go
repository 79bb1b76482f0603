package portal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/models"
	"complaintportal/backend/internal/photo"
	"complaintportal/backend/internal/reference"
)

var (
	// ErrDistrictRequired is returned when a municipality is chosen before a district.
	ErrDistrictRequired = errors.New("select a district first")
	// ErrUnknownDistrict is returned for a district outside the catalog.
	ErrUnknownDistrict = errors.New("unknown district")
	// ErrUnknownMunicipality is returned for a municipality outside the selected district.
	ErrUnknownMunicipality = errors.New("municipality is not in the selected district")
	// ErrSubmitInProgress is returned while a previous submission has not finished.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
)

// Submitter files a complaint.
type Submitter interface {
	Submit(ctx context.Context, d complaint.Draft) (*models.Complaint, error)
}

// Form is the draft complaint of one visitor.
type Form struct {
	mu         sync.Mutex
	svc        Submitter
	catalog    *reference.Catalog
	text       texts
	notify     Notify
	maxPhoto   int64
	draft      complaint.Draft
	submitting bool
}

func newForm(svc Submitter, catalog *reference.Catalog, text texts, notify Notify, maxPhoto int64) *Form {
	f := &Form{
		svc:      svc,
		catalog:  catalog,
		text:     text,
		notify:   notify,
		maxPhoto: maxPhoto,
	}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.draft = complaint.Draft{Priority: string(models.DefaultPriority)}
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() complaint.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// SetFields copies the free-text and enum fields of d into the draft. The
// district, municipality and photo are left alone; they have their own setters.
func (f *Form) SetFields(d complaint.Draft) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.draft.FullName = d.FullName
	f.draft.Email = d.Email
	f.draft.Phone = d.Phone
	f.draft.Category = d.Category
	f.draft.Location = d.Location
	f.draft.Description = d.Description
	if d.Priority != "" {
		f.draft.Priority = d.Priority
	}
}

// SelectDistrict sets the district and clears the municipality. An empty
// district clears both.
func (f *Form) SelectDistrict(district string) error {
	if district != "" && !f.catalog.HasDistrict(district) {
		return fmt.Errorf("%w: %s", ErrUnknownDistrict, district)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.District = district
	f.draft.Municipality = ""
	return nil
}

// SelectMunicipality sets the municipality, which must belong to the selected
// district.
func (f *Form) SelectMunicipality(municipality string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.draft.District == "" {
		return ErrDistrictRequired
	}
	if !f.catalog.Contains(f.draft.District, municipality) {
		return fmt.Errorf("%w: %s", ErrUnknownMunicipality, municipality)
	}
	f.draft.Municipality = municipality
	return nil
}

// Municipalities returns the choices for the selected district; none when no
// district is selected.
func (f *Form) Municipalities() []string {
	f.mu.Lock()
	district := f.draft.District
	f.mu.Unlock()

	if district == "" {
		return nil
	}
	return f.catalog.Municipalities(district)
}

// AttachPhoto converts the image read from r into a data URL and sets it as the
// draft photo. On failure the previous photo is kept.
func (f *Form) AttachPhoto(r io.Reader) error {
	url, err := photo.EncodeDataURL(r, f.maxPhoto)
	if err != nil {
		f.notify(f.text.photoFailed())
		return fmt.Errorf("failed to attach photo: %w", err)
	}

	f.mu.Lock()
	f.draft.PhotoURL = url
	f.mu.Unlock()
	return nil
}

// ClearPhoto removes the attached photo.
func (f *Form) ClearPhoto() {
	f.mu.Lock()
	f.draft.PhotoURL = ""
	f.mu.Unlock()
}

// Submit files the current draft. Only one submission runs at a time. On
// success the draft is reset and onSuccess is called with the new identifier;
// on failure the draft is kept so the visitor can retry.
func (f *Form) Submit(ctx context.Context, onSuccess func(id string)) (*models.Complaint, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	f.submitting = true
	draft := f.draft
	f.mu.Unlock()

	c, err := f.svc.Submit(ctx, draft)

	f.mu.Lock()
	f.submitting = false
	if err == nil {
		f.reset()
	}
	f.mu.Unlock()

	if err != nil {
		var verr *complaint.ValidationError
		if errors.As(err, &verr) {
			f.notify(f.text.invalid(verr.Error()))
		} else {
			f.notify(f.text.submitFailed())
		}
		return nil, err
	}

	f.notify(f.text.submitted(c.ID))
	if onSuccess != nil {
		onSuccess(c.ID)
	}
	return c, nil
}
