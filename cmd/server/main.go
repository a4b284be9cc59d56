package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"kickswap/internal/catalog"
	"kickswap/internal/config"
	mydb "kickswap/internal/db"
	"kickswap/internal/logger"
	"kickswap/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err := run(cfg, lg); err != nil {
		lg.Error("server stopped", "err", err)
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred cleanup always happens.
func run(cfg *config.Config, lg *slog.Logger) error {
	gin.SetMode(cfg.GinMode)

	var (
		store catalog.Store
		ping  func() error
	)
	if cfg.Demo() {
		store = catalog.NewMemoryStore(catalog.DemoFixture(time.Now()))
		lg.Info("running in demo mode with in-memory data")
	} else {
		db, err := mydb.Open(cfg.DBDriver, cfg.DBDSN)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("database handle: %w", err)
		}
		defer sqlDB.Close()

		if err := mydb.Migrate(db); err != nil {
			return err
		}
		gs := catalog.NewGormStore(db)
		if cfg.SeedDemo {
			if err := gs.Seed(context.Background(), catalog.DemoFixture(time.Now())); err != nil {
				return fmt.Errorf("seed demo data: %w", err)
			}
			lg.Info("demo data seeded")
		}
		store = gs
		ping = sqlDB.Ping
	}

	srv := web.NewServer(cfg, catalog.NewService(store), lg)
	srv.Ping = ping

	lg.Info("server listening", "port", cfg.AppPort, "mode", cfg.DataMode)
	return srv.Router().Run(":" + cfg.AppPort)
}
