package web

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/models"
)

func (s *Server) loginForm(c *gin.Context) {
	if currentProfile(c) != nil {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.HTML(http.StatusOK, "login.tmpl", s.withUser(c, nil))
}

func (s *Server) login(c *gin.Context) {
	email := c.PostForm("email")
	p, err := s.svc.SignIn(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		if !isInvalid(err) {
			s.fail(c, err)
			return
		}
		c.HTML(http.StatusBadRequest, "login.tmpl", s.withUser(c, ViewData{
			"Error": message(err, http.StatusBadRequest),
			"Email": email,
		}))
		return
	}
	signIn(c, p)
	s.log.Info("demo sign-in", "username", p.Username)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) registerForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.tmpl", s.withUser(c, ViewData{"States": models.States}))
}

func (s *Server) register(c *gin.Context) {
	var in catalog.RegisterInput
	if err := c.ShouldBind(&in); err != nil {
		c.HTML(http.StatusBadRequest, "register.tmpl", s.withUser(c, ViewData{"Error": err.Error(), "States": models.States}))
		return
	}
	p, err := s.svc.Register(c.Request.Context(), in)
	if err != nil {
		if !isInvalid(err) && !errors.Is(err, catalog.ErrUsernameTaken) {
			s.fail(c, err)
			return
		}
		msg := message(err, http.StatusBadRequest)
		if errors.Is(err, catalog.ErrUsernameTaken) {
			msg = "Username taken"
		}
		c.HTML(http.StatusBadRequest, "register.tmpl", s.withUser(c, ViewData{
			"Error":  msg,
			"Form":   in,
			"States": models.States,
		}))
		return
	}
	signIn(c, p)
	flash(c, "Welcome to KickSwap, "+p.Username+"!")
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (s *Server) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, "/")
}
