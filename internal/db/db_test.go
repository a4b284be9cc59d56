package db

import (
	"testing"

	"kickswap/internal/models"
)

func TestOpenRejectsBadInput(t *testing.T) {
	if _, err := Open("postgres", ""); err == nil {
		t.Error("empty DSN accepted")
	}
	if _, err := Open("mysql", "whatever"); err == nil {
		t.Error("unknown driver accepted")
	}
}

func TestOpenSqliteAndMigrate(t *testing.T) {
	gdb, err := Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, m := range []any{&models.Profile{}, &models.Listing{}, &models.TradeOffer{}, &models.Message{}} {
		if !gdb.Migrator().HasTable(m) {
			t.Errorf("table for %T missing", m)
		}
	}
}
