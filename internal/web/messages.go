package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kickswap/internal/metrics"
)

// sendMessage handles the "Message seller" form on a listing page.
func (s *Server) sendMessage(c *gin.Context) {
	slug := c.Param("slug")
	m, err := s.svc.SendMessage(c.Request.Context(), currentProfile(c), slug, c.PostForm("content"))
	metrics.Operation("message_send", err)
	if err != nil {
		if isInvalid(err) {
			flash(c, message(err, http.StatusBadRequest))
			c.Redirect(http.StatusSeeOther, "/listing/"+slug)
			return
		}
		s.fail(c, err)
		return
	}
	s.log.Info("message sent", "id", m.ID, "listing", m.ListingID, "sender", m.SenderID)
	flash(c, "Message sent to the seller.")
	c.Redirect(http.StatusSeeOther, "/listing/"+slug)
}

func (s *Server) inbox(c *gin.Context) {
	msgs, err := s.svc.Inbox(c.Request.Context(), currentProfile(c))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "messages.tmpl", s.withUser(c, ViewData{"Messages": msgs, "Title": "Messages"}))
}
