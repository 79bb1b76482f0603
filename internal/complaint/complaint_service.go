// Package complaint provides the core logic for filing complaints and looking
// them up by identifier.
package complaint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"sort"
	"strings"
	"time"

	"complaintportal/backend/internal/config"
	"complaintportal/backend/internal/idgen"
	"complaintportal/backend/internal/metrics"
	"complaintportal/backend/internal/models"
	"complaintportal/backend/internal/photo"
	"complaintportal/backend/internal/reference"
	"complaintportal/backend/internal/storage"

	"github.com/go-playground/validator/v10"
)

// ErrEmptyQuery is returned by Track for a blank identifier.
var ErrEmptyQuery = errors.New("complaint identifier is required")

// Draft is what a citizen fills in. PhotoURL, when set, must be a base64
// image data URL no larger than the service's photo limit.
type Draft struct {
	FullName     string `json:"full_name" form:"full_name" validate:"required"`
	Email        string `json:"email" form:"email" validate:"required,email"`
	Phone        string `json:"phone" form:"phone" validate:"required"`
	Category     string `json:"category" form:"category" validate:"required,oneof=infrastructure sanitation public-services corruption others"`
	District     string `json:"district" form:"district" validate:"required"`
	Municipality string `json:"municipality" form:"municipality" validate:"required"`
	Location     string `json:"location" form:"location" validate:"required"`
	Description  string `json:"description" form:"description" validate:"required"`
	Priority     string `json:"priority" form:"priority" validate:"required,oneof=low medium high urgent"`
	PhotoURL     string `json:"photo_url" form:"-"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
// except the photo.
func (d Draft) Trimmed() Draft {
	d.FullName = strings.TrimSpace(d.FullName)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
	d.Category = strings.TrimSpace(d.Category)
	d.District = strings.TrimSpace(d.District)
	d.Municipality = strings.TrimSpace(d.Municipality)
	d.Location = strings.TrimSpace(d.Location)
	d.Description = strings.TrimSpace(d.Description)
	d.Priority = strings.TrimSpace(d.Priority)
	return d
}

// ValidationError lists the draft fields that must be corrected.
type ValidationError struct {
	// Fields maps the json field name to a short reason.
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid complaint: " + strings.Join(parts, ", ")
}

// Service handles the business logic for complaints.
type Service struct {
	Storage storage.Store
	IDs     *idgen.Generator
	Catalog *reference.Catalog
	// PhotoMaxBytes caps the decoded size of a draft's photo.
	PhotoMaxBytes int64
	validate      *validator.Validate
	now           func() time.Time
}

// NewService creates a new complaint service. Identifiers are checked against
// s before use.
func NewService(s storage.Store, catalog *reference.Catalog, opts ...idgen.Option) *Service {
	svc := &Service{
		Storage:       s,
		Catalog:       catalog,
		PhotoMaxBytes: config.DefaultPhotoMaxBytes,
		validate:      newValidator(),
		now:           time.Now,
	}
	svc.IDs = idgen.New(svc.exists, opts...)
	return svc
}

// WithClock replaces the clock used for SubmittedAt. It is meant for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithPhotoLimit sets the largest photo, in decoded bytes, a draft may carry.
func (s *Service) WithPhotoLimit(maxBytes int64) *Service {
	s.PhotoMaxBytes = maxBytes
	return s
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Service) exists(ctx context.Context, id string) (bool, error) {
	c, err := s.Storage.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return c != nil, nil
}

// Validate checks d and returns a *ValidationError describing every problem.
func (s *Service) Validate(d Draft) error {
	fields := map[string]string{}

	if err := s.validate.Struct(d); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("failed to validate complaint: %w", err)
		}
		for _, fe := range verrs {
			fields[fe.Field()] = describe(fe)
		}
	}

	if _, bad := fields["district"]; !bad && !s.Catalog.HasDistrict(d.District) {
		fields["district"] = "unknown district"
	}
	if _, bad := fields["municipality"]; !bad {
		if _, badDistrict := fields["district"]; !badDistrict && !s.Catalog.Contains(d.District, d.Municipality) {
			fields["municipality"] = "not in the selected district"
		}
	}
	if d.PhotoURL != "" {
		if err := photo.CheckDataURL(d.PhotoURL, s.PhotoMaxBytes); err != nil {
			fields["photo_url"] = describePhoto(err, s.PhotoMaxBytes)
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "invalid"
	}
}

func describePhoto(err error, maxBytes int64) string {
	switch {
	case errors.Is(err, photo.ErrTooLarge):
		return fmt.Sprintf("must be at most %d bytes", maxBytes)
	case errors.Is(err, photo.ErrNotImage), errors.Is(err, photo.ErrEmpty):
		return "must be an image"
	default:
		return "must be an image data URL"
	}
}

// Submit validates d, assigns an identifier and stores the new complaint with
// status Pending.
func (s *Service) Submit(ctx context.Context, d Draft) (*models.Complaint, error) {
	d = d.Trimmed()
	if err := s.Validate(d); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return nil, err
	}

	id, err := s.IDs.Generate(ctx)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.Printf("ERROR: Failed to generate complaint id: %v", err)
		return nil, fmt.Errorf("failed to generate identifier: %w", err)
	}

	c := &models.Complaint{
		ID:           id,
		FullName:     d.FullName,
		Email:        d.Email,
		Phone:        d.Phone,
		Category:     models.Category(d.Category),
		District:     d.District,
		Municipality: d.Municipality,
		Location:     d.Location,
		Description:  d.Description,
		Priority:     models.Priority(d.Priority),
		Status:       models.StatusPending,
		SubmittedAt:  s.now().UTC().Truncate(time.Millisecond),
	}
	if d.PhotoURL != "" {
		p := d.PhotoURL
		c.PhotoURL = &p
	}

	if err := s.Storage.Append(ctx, c); err != nil {
		metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.Printf("ERROR: Failed to store complaint %s: %v", id, err)
		return nil, fmt.Errorf("failed to store complaint: %w", err)
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.OutcomeCreated).Inc()
	log.Printf("INFO: Complaint %s filed (%s, %s/%s)", c.ID, c.Category, c.District, c.Municipality)
	return c, nil
}

// Track looks up a complaint by identifier. It returns nil, nil when no
// complaint has that identifier.
func (s *Service) Track(ctx context.Context, query string) (*models.Complaint, error) {
	id := strings.TrimSpace(query)
	if id == "" {
		return nil, ErrEmptyQuery
	}

	c, err := s.Storage.FindByID(ctx, id)
	if err != nil {
		metrics.LookupsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		log.Printf("ERROR: Failed to look up complaint %s: %v", id, err)
		return nil, fmt.Errorf("failed to look up complaint: %w", err)
	}
	if c == nil {
		metrics.LookupsTotal.WithLabelValues(metrics.OutcomeNotFound).Inc()
		return nil, nil
	}
	metrics.LookupsTotal.WithLabelValues(metrics.OutcomeFound).Inc()
	return c, nil
}
