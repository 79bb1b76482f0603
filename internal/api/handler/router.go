package handler

import (
	"html/template"
	"net/http"

	"complaintportal/backend/internal/metrics"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. sessions must attach a portal.Page to the
// request; it is applied to the HTML routes only.
func NewRouter(h *Handler, tmpl *template.Template, sessions gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())
	r.SetHTMLTemplate(tmpl)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", metrics.Handler())

	pages := r.Group("/", sessions)
	pages.GET("/", h.ShowPage)
	pages.GET("/tab/:name", h.SwitchTab)
	pages.POST("/form/district", h.SelectDistrict)
	pages.POST("/form/submit", h.SubmitForm)
	pages.POST("/track", h.TrackForm)
	pages.GET("/track", h.TrackQuery)

	api := r.Group("/api")
	api.POST("/complaints", h.CreateComplaint)
	api.GET("/complaints/:id", h.GetComplaint)
	api.GET("/districts", h.ListDistricts)
	api.GET("/districts/:district/municipalities", h.ListMunicipalities)

	return r
}
