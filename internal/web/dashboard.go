package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/metrics"
	"kickswap/internal/models"
)

func (s *Server) dashboard(c *gin.Context) {
	d, err := s.svc.Dashboard(c.Request.Context(), currentProfile(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "dashboard.tmpl", s.withUser(c, ViewData{"Dashboard": d}))
}

// myListings groups every listing of the signed-in seller by status.
func (s *Server) myListings(c *gin.Context) {
	me := currentProfile(c)
	all, err := s.store.ListingsBySeller(c.Request.Context(), me.ID, false)
	if err != nil {
		s.fail(c, err)
		return
	}
	var active, inactive, closed []models.Listing
	for _, l := range all {
		switch l.Status {
		case models.StatusActive:
			active = append(active, l)
		case models.StatusInactive:
			inactive = append(inactive, l)
		default:
			closed = append(closed, l)
		}
	}
	c.HTML(http.StatusOK, "my_listings.tmpl", s.withUser(c, ViewData{
		"Active":   active,
		"Inactive": inactive,
		"Closed":   closed,
		"Total":    len(all),
	}))
}

func (s *Server) changeListingStatus(c *gin.Context) {
	status := models.ListingStatus(c.PostForm("status"))
	err := s.svc.ChangeListingStatus(c.Request.Context(), currentProfile(c), c.Param("id"), status)
	metrics.Operation("listing_status", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/dashboard/listings")
}

func (s *Server) deleteListing(c *gin.Context) {
	err := s.svc.DeleteListing(c.Request.Context(), currentProfile(c), c.Param("id"))
	metrics.Operation("listing_delete", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	flash(c, "Listing deleted.")
	c.Redirect(http.StatusSeeOther, "/dashboard/listings")
}

func (s *Server) settingsForm(c *gin.Context) {
	me := currentProfile(c)
	c.HTML(http.StatusOK, "settings.tmpl", s.withUser(c, ViewData{
		"Form": catalog.SettingsInput{
			FullName: me.FullName,
			Bio:      me.Bio,
			Location: me.Location,
			State:    me.State,
		},
		"States": models.States,
	}))
}

func (s *Server) updateSettings(c *gin.Context) {
	var in catalog.SettingsInput
	_ = c.ShouldBind(&in)
	_, err := s.svc.UpdateSettings(c.Request.Context(), currentProfile(c), in)
	if err != nil {
		if isInvalid(err) {
			c.HTML(http.StatusBadRequest, "settings.tmpl", s.withUser(c, ViewData{
				"Form":   in,
				"States": models.States,
				"Error":  message(err, http.StatusBadRequest),
			}))
			return
		}
		s.fail(c, err)
		return
	}
	flash(c, "Profile updated.")
	c.Redirect(http.StatusSeeOther, "/dashboard/settings")
}
