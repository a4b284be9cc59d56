package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddlewareCountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/listing/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", Handler())

	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/listing/:slug", "200"))
	for _, slug := range []string{"a", "b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/listing/"+slug, nil))
	}
	if got := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/listing/:slug", "200")); got != before+2 {
		t.Errorf("counter = %v, want %v", got, before+2)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "kickswap_http_requests_total") {
		t.Error("scrape output missing request counter")
	}
}

func TestOperation(t *testing.T) {
	before := testutil.ToFloat64(OperationsTotal.WithLabelValues("offer_create", "error"))
	Operation("offer_create", errors.New("boom"))
	if got := testutil.ToFloat64(OperationsTotal.WithLabelValues("offer_create", "error")); got != before+1 {
		t.Errorf("counter = %v", got)
	}
}
