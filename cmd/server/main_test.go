package main

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"kickswap/internal/config"
)

func TestRunReturnsDatabaseErrors(t *testing.T) {
	lg := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name, driver, dsn, want string
	}{
		{"unknown driver", "bogus", "x", "unknown DB_DRIVER"},
		{"empty dsn", "sqlite", "", "DB_DSN is empty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{
				DataMode:      config.ModeDatabase,
				DBDriver:      tc.driver,
				DBDSN:         tc.dsn,
				GinMode:       gin.TestMode,
				SessionSecret: "test-secret",
			}
			err := run(cfg, lg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("run err = %v, want %q", err, tc.want)
			}
			if !strings.HasPrefix(err.Error(), "open database: ") {
				t.Errorf("run err not wrapped: %v", err)
			}
		})
	}
}
