package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/models"
)

const (
	sessionProfileKey = "profile_id"
	profileKey        = "profile"
)

// identify resolves the signed-in profile from the auth proxy header or the
// session and stores it on the context.
func (s *Server) identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id := ""
		if s.cfg.AuthHeader != "" {
			id = strings.TrimSpace(c.GetHeader(s.cfg.AuthHeader))
		}
		if id == "" {
			id, _ = sess.Get(sessionProfileKey).(string)
		}
		if id == "" {
			c.Next()
			return
		}
		p, err := s.store.ProfileByID(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(profileKey, p)
		case errors.Is(err, catalog.ErrNotFound):
			sess.Delete(sessionProfileKey)
			_ = sess.Save()
		default:
			s.log.Error("resolve profile", "id", id, "err", err)
		}
		c.Next()
	}
}

func mustLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentProfile(c) == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentProfile(c *gin.Context) *models.Profile {
	if v, ok := c.Get(profileKey); ok {
		return v.(*models.Profile)
	}
	return nil
}

func signIn(c *gin.Context, p *models.Profile) {
	sess := sessions.Default(c)
	sess.Set(sessionProfileKey, p.ID)
	_ = sess.Save()
}

func flash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
}

// withUser adds the signed-in profile and pending flash messages to data.
func (s *Server) withUser(c *gin.Context, data ViewData) ViewData {
	if data == nil {
		data = ViewData{}
	}
	data["User"] = currentProfile(c)
	data["Demo"] = s.cfg.Demo()

	sess := sessions.Default(c)
	if fl := sess.Flashes(); len(fl) > 0 {
		data["Flashes"] = fl
		_ = sess.Save()
	}
	return data
}

// fail maps a service error to a response page.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, catalog.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, catalog.ErrInvalidInput), errors.Is(err, catalog.ErrOfferClosed):
		status = http.StatusBadRequest
	default:
		s.log.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	if status == http.StatusNotFound {
		c.HTML(status, "not_found.tmpl", s.withUser(c, nil))
		return
	}
	c.HTML(status, "error.tmpl", s.withUser(c, ViewData{
		"Status":  status,
		"Message": message(err, status),
	}))
}

// message is the user-facing text for err.
func message(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "Something went wrong. Please try again."
	}
	if status == http.StatusForbidden {
		return "You can't do that."
	}
	msg := strings.TrimPrefix(err.Error(), catalog.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func isInvalid(err error) bool {
	return errors.Is(err, catalog.ErrInvalidInput)
}
