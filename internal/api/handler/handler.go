package handler

import (
	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/display"
	"complaintportal/backend/internal/localization"
	"complaintportal/backend/internal/reference"
)

// Handler serves the portal pages and the JSON API.
type Handler struct {
	Complaints  *complaint.Service
	Catalog     *reference.Catalog
	Localizer   *localization.Localizer
	Presenter   *display.Presenter
	DefaultLang string
}

func NewHandler(svc *complaint.Service, catalog *reference.Catalog, loc *localization.Localizer, defaultLang string) *Handler {
	return &Handler{
		Complaints:  svc,
		Catalog:     catalog,
		Localizer:   loc,
		Presenter:   display.NewPresenter(loc, nil),
		DefaultLang: defaultLang,
	}
}
