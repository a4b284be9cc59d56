package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/metrics"
	"kickswap/internal/models"
	"kickswap/internal/search"
)

func (s *Server) home(c *gin.Context) {
	featured, err := s.store.FeaturedListings(c.Request.Context(), catalog.FeaturedCount)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "home.tmpl", s.withUser(c, ViewData{
		"Listings": featured,
		"Brands":   models.Brands,
	}))
}

func (s *Server) browse(c *gin.Context) {
	f := search.FromQuery(c.Request.URL.Query())
	listings, err := s.store.FetchListings(c.Request.Context(), f)
	if err != nil {
		s.fail(c, err)
		return
	}
	metrics.Search(f.Criteria(), len(listings))
	c.HTML(http.StatusOK, "browse.tmpl", s.withUser(c, ViewData{
		"Title":      "Browse",
		"Listings":   listings,
		"Filter":     f,
		"Brands":     models.Brands,
		"Sizes":      models.Sizes,
		"Conditions": models.Conditions,
		"States":     models.States,
	}))
}

func (s *Server) howItWorks(c *gin.Context) {
	c.HTML(http.StatusOK, "how_it_works.tmpl", s.withUser(c, nil))
}

func (s *Server) listingDetail(c *gin.Context) {
	ctx := c.Request.Context()
	l, err := s.store.ListingBySlug(ctx, c.Param("slug"))
	if err != nil {
		s.fail(c, err)
		return
	}
	data := ViewData{"Listing": l, "Title": l.Title}

	// Pairs the viewer could put up in a trade offer.
	if me := currentProfile(c); me != nil && me.ID != l.SellerID {
		mine, err := s.store.ListingsBySeller(ctx, me.ID, true)
		if err != nil {
			s.fail(c, err)
			return
		}
		data["MyListings"] = mine
		data["CanOffer"] = l.Status == models.StatusActive
		data["CanMessage"] = true
	}
	c.HTML(http.StatusOK, "listing.tmpl", s.withUser(c, data))
}

func (s *Server) sellerProfile(c *gin.Context) {
	ctx := c.Request.Context()
	p, err := s.store.ProfileByUsername(ctx, c.Param("username"))
	if err != nil {
		s.fail(c, err)
		return
	}
	listings, err := s.store.ListingsBySeller(ctx, p.ID, true)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "seller.tmpl", s.withUser(c, ViewData{
		"Title":    p.Username,
		"Seller":   p,
		"Listings": listings,
	}))
}

func (s *Server) sellers(c *gin.Context) {
	list, err := s.store.Sellers(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "sellers.tmpl", s.withUser(c, ViewData{"Sellers": list}))
}
