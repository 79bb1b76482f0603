package handler

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strings"

	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/display"
	"complaintportal/backend/internal/models"
	"complaintportal/backend/internal/photo"
	"complaintportal/backend/internal/portal"
	"complaintportal/backend/internal/session"

	"github.com/gin-gonic/gin"
)

type option struct {
	Value string
	Label string
}

// pageData is what index.tmpl renders.
type pageData struct {
	Lang   string
	Tab    string
	Toasts []portal.Toast

	Draft          complaint.Draft
	PhotoPreview   template.URL
	Submitting     bool
	Districts      []string
	Municipalities []string
	Categories     []option
	Priorities     []option

	Tracker    portal.TrackerState
	Complaint  *models.Complaint
	View       display.View
	Photo      template.URL
	EmptyTitle string
	EmptyText  string
}

// dataURL marks a photo as safe for an img src. Anything that is not an
// embedded image is dropped.
func dataURL(s string) template.URL {
	if !photo.IsDataURL(s) {
		return ""
	}
	return template.URL(s)
}

func (h *Handler) buildPage(page *portal.Page) pageData {
	lang := page.Lang()
	draft := page.Form.Draft()
	tracker := page.Tracker.State()

	data := pageData{
		Lang:           lang,
		Tab:            string(page.Tab()),
		Toasts:         page.DrainToasts(),
		Draft:          draft,
		PhotoPreview:   dataURL(draft.PhotoURL),
		Submitting:     page.Form.Submitting(),
		Districts:      h.Catalog.Districts(),
		Municipalities: page.Form.Municipalities(),
		Tracker:        tracker,
		Complaint:      tracker.Result,
	}

	for _, cat := range models.Categories {
		data.Categories = append(data.Categories, option{
			Value: string(cat),
			Label: h.Localizer.GetString(lang, "category_option."+string(cat)),
		})
	}
	for _, p := range models.Priorities {
		data.Priorities = append(data.Priorities, option{Value: string(p), Label: p.Display()})
	}

	switch {
	case tracker.Result != nil:
		data.View = h.Presenter.Build(lang, tracker.Result)
		if tracker.Result.HasPhoto() {
			data.Photo = dataURL(*tracker.Result.PhotoURL)
		}
	case strings.TrimSpace(tracker.Query) != "" && !tracker.Searching:
		shown := tracker.Searched
		if shown == "" {
			shown = strings.TrimSpace(tracker.Query)
		}
		data.EmptyTitle = h.Localizer.Format(lang, "tracker.not_found.title", shown)
		data.EmptyText = h.Localizer.GetString(lang, "tracker.not_found.text")
	case strings.TrimSpace(tracker.Query) == "":
		data.EmptyTitle = h.Localizer.GetString(lang, "tracker.empty.title")
		data.EmptyText = h.Localizer.GetString(lang, "tracker.empty.text")
	}
	return data
}

func backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// ShowPage renders the visitor's page.
func (h *Handler) ShowPage(c *gin.Context) {
	page := session.PageFrom(c)
	c.HTML(http.StatusOK, "index.tmpl", h.buildPage(page))
}

// SwitchTab changes the visible tab.
func (h *Handler) SwitchTab(c *gin.Context) {
	page := session.PageFrom(c)
	if err := page.SetTab(c.Param("name")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown tab"})
		return
	}
	backToPage(c)
}

// postedDraft overlays the draft inputs present in the request onto d. Inputs
// the request does not carry keep their saved value.
func postedDraft(c *gin.Context, d complaint.Draft) complaint.Draft {
	inputs := map[string]*string{
		"full_name":   &d.FullName,
		"email":       &d.Email,
		"phone":       &d.Phone,
		"category":    &d.Category,
		"location":    &d.Location,
		"description": &d.Description,
		"priority":    &d.Priority,
	}
	for name, field := range inputs {
		if v, ok := c.GetPostForm(name); ok {
			*field = v
		}
	}
	return d
}

// SelectDistrict keeps whatever the visitor has typed so far and narrows the
// municipality list to the chosen district.
func (h *Handler) SelectDistrict(c *gin.Context) {
	page := session.PageFrom(c)

	page.Form.SetFields(postedDraft(c, page.Form.Draft()))
	if err := page.Form.SelectDistrict(c.PostForm("district")); err != nil {
		page.Invalid(err)
	}
	backToPage(c)
}

// SubmitForm files the visitor's complaint from a multipart form.
func (h *Handler) SubmitForm(c *gin.Context) {
	page := session.PageFrom(c)

	var d complaint.Draft
	if err := c.ShouldBind(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form"})
		return
	}
	page.Form.SetFields(d)

	if d.District != page.Form.Draft().District {
		if err := page.Form.SelectDistrict(d.District); err != nil {
			page.Invalid(err)
			backToPage(c)
			return
		}
	}
	if d.Municipality != "" {
		if err := page.Form.SelectMunicipality(d.Municipality); err != nil {
			page.Invalid(err)
			backToPage(c)
			return
		}
	}

	if fh, err := c.FormFile("photo"); err == nil && fh.Size > 0 {
		f, err := fh.Open()
		if err != nil {
			log.Printf("ERROR: Failed to open uploaded photo: %v", err)
			backToPage(c)
			return
		}
		defer f.Close()
		if err := page.Form.AttachPhoto(f); err != nil {
			log.Printf("WARNING: Photo rejected: %v", err)
			backToPage(c)
			return
		}
	}

	if _, err := page.Submit(c.Request.Context()); errors.Is(err, portal.ErrSubmitInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": "A submission is already in progress"})
		return
	}
	backToPage(c)
}

func (h *Handler) search(c *gin.Context, query string) {
	page := session.PageFrom(c)
	page.Tracker.SetQuery(query)
	_ = page.SetTab(string(portal.TabTrack))
	// Outcomes are reported to the visitor as toasts.
	_, _ = page.Tracker.Search(c.Request.Context())
}

// TrackForm searches for the posted identifier.
func (h *Handler) TrackForm(c *gin.Context) {
	h.search(c, c.PostForm("id"))
	backToPage(c)
}

// TrackQuery searches for ?id= and renders the result directly, so the URL can
// be bookmarked.
func (h *Handler) TrackQuery(c *gin.Context) {
	h.search(c, c.Query("id"))
	c.HTML(http.StatusOK, "index.tmpl", h.buildPage(session.PageFrom(c)))
}
