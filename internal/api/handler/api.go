package handler

import (
	"encoding/base64"
	"errors"
	"net/http"
	"slices"

	"complaintportal/backend/internal/complaint"
	"complaintportal/backend/internal/display"
	"complaintportal/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type createResponse struct {
	ID        string            `json:"id"`
	Complaint *models.Complaint `json:"complaint"`
}

type lookupResponse struct {
	Complaint *models.Complaint `json:"complaint"`
	View      display.View      `json:"view"`
}

func (h *Handler) lang(c *gin.Context) string {
	if l := c.Query("lang"); slices.Contains(h.Localizer.Languages(), l) {
		return l
	}
	return h.DefaultLang
}

// textFieldsBytes bounds everything in a JSON complaint but the photo.
const textFieldsBytes = 64 << 10

// maxBodyBytes is the largest JSON complaint body: an encoded photo at the
// service's limit plus the text fields.
func (h *Handler) maxBodyBytes() int64 {
	return int64(base64.StdEncoding.EncodedLen(int(h.Complaints.PhotoMaxBytes))) + textFieldsBytes
}

// CreateComplaint files a complaint from a JSON body.
func (h *Handler) CreateComplaint(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes())

	var d complaint.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	created, err := h.Complaints.Submit(c.Request.Context(), d)
	if err != nil {
		var verr *complaint.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint", "fields": verr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}

	c.JSON(http.StatusCreated, createResponse{ID: created.ID, Complaint: created})
}

// GetComplaint returns a complaint and its derived view.
func (h *Handler) GetComplaint(c *gin.Context) {
	found, err := h.Complaints.Track(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, complaint.ErrEmptyQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Complaint ID is required"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up complaint"})
		return
	case found == nil:
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	c.JSON(http.StatusOK, lookupResponse{Complaint: found, View: h.Presenter.Build(h.lang(c), found)})
}

// ListDistricts returns every district with its municipalities.
func (h *Handler) ListDistricts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"districts": h.Catalog.All()})
}

// ListMunicipalities returns the municipalities of one district.
func (h *Handler) ListMunicipalities(c *gin.Context) {
	district := c.Param("district")
	if !h.Catalog.HasDistrict(district) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown district"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"district":       district,
		"municipalities": h.Catalog.Municipalities(district),
	})
}
