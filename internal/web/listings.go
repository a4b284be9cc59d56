package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/metrics"
	"kickswap/internal/models"
)

func (s *Server) listingForm(c *gin.Context, status int, in catalog.ListingInput, errMsg string) {
	c.HTML(status, "listing_form.tmpl", s.withUser(c, ViewData{
		"Form":       in,
		"Error":      errMsg,
		"Brands":     models.Brands,
		"Sizes":      models.Sizes,
		"Conditions": models.Conditions,
		"MaxImages":  catalog.MaxImages,
	}))
}

func (s *Server) newListingForm(c *gin.Context) {
	s.listingForm(c, http.StatusOK, catalog.ListingInput{OpenToTrades: true}, "")
}

func (s *Server) createListing(c *gin.Context) {
	var in catalog.ListingInput
	if err := c.ShouldBind(&in); err != nil {
		s.listingForm(c, http.StatusBadRequest, in, err.Error())
		return
	}
	l, err := s.svc.CreateListing(c.Request.Context(), currentProfile(c), in)
	metrics.Operation("listing_create", err)
	if err != nil {
		if isInvalid(err) {
			s.listingForm(c, http.StatusBadRequest, in, message(err, http.StatusBadRequest))
			return
		}
		s.fail(c, err)
		return
	}
	s.log.Info("listing created", "id", l.ID, "slug", l.Slug, "seller", l.SellerID)
	c.Redirect(http.StatusSeeOther, "/listing/"+l.Slug)
}

func (s *Server) makeOffer(c *gin.Context) {
	slug := c.Param("slug")
	var in catalog.OfferInput
	if err := c.ShouldBind(&in); err != nil {
		s.fail(c, err)
		return
	}
	o, err := s.svc.MakeOffer(c.Request.Context(), currentProfile(c), slug, in)
	metrics.Operation("offer_create", err)
	if err != nil {
		if isInvalid(err) {
			flash(c, message(err, http.StatusBadRequest))
			c.Redirect(http.StatusSeeOther, "/listing/"+slug)
			return
		}
		s.fail(c, err)
		return
	}
	s.log.Info("trade offer made", "id", o.ID, "listing", o.ListingID, "offerer", o.OffererID)
	flash(c, "Offer sent! The seller will review it.")
	c.Redirect(http.StatusSeeOther, "/listing/"+slug)
}
