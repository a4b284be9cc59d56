package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kickswap/internal/metrics"
	"kickswap/internal/models"
)

func (s *Server) trades(c *gin.Context) {
	ctx := c.Request.Context()
	me := currentProfile(c)
	incoming, err := s.store.IncomingTradeOffers(ctx, me.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	outgoing, err := s.store.OutgoingTradeOffers(ctx, me.ID)
	if err != nil {
		s.fail(c, err)
		return
	}
	pending := 0
	for _, o := range incoming {
		if o.Status == models.OfferPending {
			pending++
		}
	}
	c.HTML(http.StatusOK, "trades.tmpl", s.withUser(c, ViewData{
		"Incoming": incoming,
		"Outgoing": outgoing,
		"Pending":  pending,
	}))
}

func (s *Server) respondToOffer(accept bool) gin.HandlerFunc {
	op, msg := "offer_reject", "Offer rejected."
	if accept {
		op, msg = "offer_accept", "Offer accepted!"
	}
	return func(c *gin.Context) {
		err := s.svc.RespondToOffer(c.Request.Context(), currentProfile(c), c.Param("id"), accept)
		metrics.Operation(op, err)
		if err != nil {
			s.fail(c, err)
			return
		}
		flash(c, msg)
		c.Redirect(http.StatusSeeOther, "/dashboard/trades")
	}
}

func (s *Server) cancelOffer(c *gin.Context) {
	err := s.svc.CancelOffer(c.Request.Context(), currentProfile(c), c.Param("id"))
	metrics.Operation("offer_cancel", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	flash(c, "Offer cancelled.")
	c.Redirect(http.StatusSeeOther, "/dashboard/trades")
}
