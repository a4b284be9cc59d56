// Package web serves the storefront pages and the JSON API.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/config"
	"kickswap/internal/logger"
	"kickswap/internal/metrics"
	"kickswap/internal/models"
	"kickswap/internal/search"
)

//go:embed views/*.tmpl
var views embed.FS

const sessionName = "kickswap_session"

type ViewData map[string]any

// Server holds the handlers' dependencies.
type Server struct {
	cfg   *config.Config
	svc   *catalog.Service
	store catalog.Store
	log   *slog.Logger

	// Ping reports database health for /health; nil in demo mode.
	Ping func() error
}

func NewServer(cfg *config.Config, svc *catalog.Service, log *slog.Logger) *Server {
	return &Server{cfg: cfg, svc: svc, store: svc.Store(), log: log}
}

var funcs = template.FuncMap{
	"price": models.FormatPrice,
	"value": search.Value,
	"add":   func(a, b int) int { return a + b },
	"date":  func(t time.Time) string { return t.Format("Jan 2, 2006") },
}

func parseViews() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(views, "views/*.tmpl"))
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.Middleware(s.log), metrics.Middleware())

	store := cookie.NewStore([]byte(s.cfg.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 30 * 24 * 3600, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(s.identify())

	r.SetHTMLTemplate(parseViews())
	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not_found.tmpl", s.withUser(c, nil))
	})

	r.GET("/health", s.health)
	r.GET("/metrics", metrics.Handler())

	r.GET("/", s.home)
	r.GET("/browse", s.browse)
	r.GET("/how-it-works", s.howItWorks)
	r.GET("/listing/:slug", s.listingDetail)
	r.GET("/seller/:username", s.sellerProfile)
	r.GET("/sellers", s.sellers)

	r.GET("/login", s.loginForm)
	r.GET("/logout", s.logout)
	if s.cfg.Demo() {
		r.POST("/login", s.login)
		r.GET("/register", s.registerForm)
		r.POST("/register", s.register)
	}

	auth := r.Group("/", mustLogin())
	auth.GET("/listings/new", s.newListingForm)
	auth.POST("/listings", s.createListing)
	auth.POST("/listing/:slug/offers", s.makeOffer)
	auth.POST("/listing/:slug/messages", s.sendMessage)

	dash := r.Group("/dashboard", mustLogin())
	dash.GET("", s.dashboard)
	dash.GET("/listings", s.myListings)
	dash.POST("/listings/:id/status", s.changeListingStatus)
	dash.POST("/listings/:id/delete", s.deleteListing)
	dash.GET("/trades", s.trades)
	dash.GET("/messages", s.inbox)
	dash.POST("/trades/:id/accept", s.respondToOffer(true))
	dash.POST("/trades/:id/reject", s.respondToOffer(false))
	dash.POST("/trades/:id/cancel", s.cancelOffer)
	dash.GET("/settings", s.settingsForm)
	dash.POST("/settings", s.updateSettings)

	api := r.Group("/api")
	api.GET("/listings", s.apiListings)
	api.GET("/listings/:slug", s.apiListing)
	api.GET("/sellers", s.apiSellers)

	return r
}

func (s *Server) health(c *gin.Context) {
	if s.Ping != nil {
		if err := s.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "mode": s.cfg.DataMode})
}
