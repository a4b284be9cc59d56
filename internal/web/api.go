package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/metrics"
	"kickswap/internal/search"
)

func (s *Server) apiError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	s.log.Error("api request failed", "path", c.Request.URL.Path, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// apiListings runs the browse query and returns the matches as JSON.
func (s *Server) apiListings(c *gin.Context) {
	f := search.FromQuery(c.Request.URL.Query())
	listings, err := s.store.FetchListings(c.Request.Context(), f)
	if err != nil {
		s.apiError(c, err)
		return
	}
	metrics.Search(f.Criteria(), len(listings))
	c.JSON(http.StatusOK, gin.H{"count": len(listings), "listings": listings})
}

func (s *Server) apiListing(c *gin.Context) {
	l, err := s.store.ListingBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (s *Server) apiSellers(c *gin.Context) {
	list, err := s.store.Sellers(c.Request.Context())
	if err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
