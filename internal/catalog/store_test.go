package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"kickswap/internal/db"
	"kickswap/internal/models"
	"kickswap/internal/search"
)

func ptr(s string) *string { return &s }

func newMemory(t *testing.T) Store {
	t.Helper()
	return NewMemoryStore(DemoFixture(time.Now()))
}

func newGorm(t *testing.T) Store {
	t.Helper()
	gdb, err := db.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	s := NewGormStore(gdb)
	if err := s.Seed(context.Background(), DemoFixture(time.Now())); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

var stores = map[string]func(*testing.T) Store{
	"memory": newMemory,
	"gorm":   newGorm,
}

func slugs(ls []models.Listing) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Slug
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestStore_FetchListings(t *testing.T) {
	ctx := context.Background()
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			s := mk(t)
			all, err := s.FetchListings(ctx, search.Filter{})
			if err != nil {
				t.Fatalf("FetchListings: %v", err)
			}
			if len(all) != 12 || all[0].Slug != "jordan-1-chicago" || all[11].Slug != "chuck-70-black" {
				t.Fatalf("catalog = %v", slugs(all))
			}
			if all[0].Seller.Username != "SneakerKing" {
				t.Errorf("seller not attached: %+v", all[0].Seller)
			}

			jordans, _ := s.FetchListings(ctx, search.Filter{Brand: ptr("Jordan")})
			want := []string{"jordan-1-chicago", "jordan-4-black-cat", "jordan-11-bred", "jordan-3-fire-red"}
			if !equal(slugs(jordans), want) {
				t.Errorf("Jordan = %v, want %v", slugs(jordans), want)
			}

			ny, _ := s.FetchListings(ctx, search.Filter{State: ptr("NY"), OpenToTrades: true})
			if !equal(slugs(ny), []string{"jordan-1-chicago", "jordan-11-bred"}) {
				t.Errorf("NY trades = %v", slugs(ny))
			}

			featured, _ := s.FeaturedListings(ctx, FeaturedCount)
			if !equal(slugs(featured), slugs(all[:4])) {
				t.Errorf("featured = %v", slugs(featured))
			}
		})
	}
}

func TestStore_Lookups(t *testing.T) {
	ctx := context.Background()
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			s := mk(t)
			l, err := s.ListingBySlug(ctx, "dunk-low-panda")
			if err != nil || l.ID != "listing-3" || l.ModelName() != "Dunk Low" || l.Seller.State != "IL" {
				t.Fatalf("ListingBySlug = %+v, %v", l, err)
			}
			if len(l.Images) != 1 {
				t.Errorf("images = %v", l.Images)
			}
			if _, err := s.ListingBySlug(ctx, "nope"); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing slug err = %v", err)
			}
			if _, err := s.ListingByID(ctx, "listing-99"); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing id err = %v", err)
			}
			p, err := s.ProfileByUsername(ctx, "sneakerking")
			if err != nil || p.ID != "demo-user-1" {
				t.Fatalf("ProfileByUsername = %+v, %v", p, err)
			}
			if _, err := s.ProfileByID(ctx, "ghost"); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing profile err = %v", err)
			}

			sellers, err := s.Sellers(ctx)
			if err != nil || len(sellers) != 6 {
				t.Fatalf("Sellers = %d, %v", len(sellers), err)
			}
			for _, sum := range sellers {
				if sum.ListingCount != 2 {
					t.Errorf("%s has %d listings, want 2", sum.Username, sum.ListingCount)
				}
			}
		})
	}
}

func TestStore_ListingWrites(t *testing.T) {
	ctx := context.Background()
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			s := mk(t)
			l := &models.Listing{
				SellerID:   "demo-user-6",
				Title:      "Vans Old Skool",
				Brand:      "Vans",
				Size:       "9M",
				Condition:  models.ConditionWorn,
				PriceCents: 4000,
				Images:     []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
				Slug:       "vans-old-skool-1",
			}
			if err := s.CreateListing(ctx, l); err != nil {
				t.Fatalf("CreateListing: %v", err)
			}
			if l.ID == "" || l.Status != models.StatusActive || l.Seller.Username != "DunkDaily" {
				t.Errorf("created = %+v", l)
			}
			all, _ := s.FetchListings(ctx, search.Filter{})
			if len(all) != 13 || all[0].Slug != "vans-old-skool-1" {
				t.Errorf("new listing not first: %v", slugs(all))
			}
			got, _ := s.ListingBySlug(ctx, "vans-old-skool-1")
			if got == nil || len(got.Images) != 2 || got.Images[1] != "https://example.com/b.jpg" || got.Model != nil {
				t.Errorf("round trip = %+v", got)
			}

			dup := *l
			dup.ID = ""
			if err := s.CreateListing(ctx, &dup); !errors.Is(err, ErrSlugTaken) {
				t.Errorf("duplicate slug err = %v", err)
			}
			orphan := &models.Listing{SellerID: "ghost", Title: "x", Brand: "x", Size: "9M", Condition: models.ConditionUsed, PriceCents: 1, Slug: "orphan-1"}
			if err := s.CreateListing(ctx, orphan); !errors.Is(err, ErrNotFound) {
				t.Errorf("orphan err = %v", err)
			}

			if err := s.SetListingStatus(ctx, "listing-1", models.StatusInactive); err != nil {
				t.Fatalf("SetListingStatus: %v", err)
			}
			all, _ = s.FetchListings(ctx, search.Filter{Search: ptr("chicago")})
			if len(all) != 0 {
				t.Errorf("inactive listing still browsable")
			}
			mine, _ := s.ListingsBySeller(ctx, "demo-user-1", false)
			active, _ := s.ListingsBySeller(ctx, "demo-user-1", true)
			if len(mine) != 2 || len(active) != 1 {
				t.Errorf("seller listings all=%d active=%d", len(mine), len(active))
			}
			if err := s.SetListingStatus(ctx, "listing-99", models.StatusSold); !errors.Is(err, ErrNotFound) {
				t.Errorf("status on missing listing err = %v", err)
			}

			if err := s.DeleteListing(ctx, "listing-7"); err != nil {
				t.Fatalf("DeleteListing: %v", err)
			}
			if _, err := s.TradeOfferByID(ctx, "trade-1"); !errors.Is(err, ErrNotFound) {
				t.Errorf("offer on deleted listing survived: %v", err)
			}
			if err := s.DeleteListing(ctx, "listing-7"); !errors.Is(err, ErrNotFound) {
				t.Errorf("second delete err = %v", err)
			}
		})
	}
}

func TestStore_Profiles(t *testing.T) {
	ctx := context.Background()
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			s := mk(t)
			p := &models.Profile{Username: "FreshPair", State: "WA"}
			if err := s.CreateProfile(ctx, p); err != nil || p.ID == "" {
				t.Fatalf("CreateProfile: %+v, %v", p, err)
			}
			if err := s.CreateProfile(ctx, &models.Profile{Username: "freshpair"}); !errors.Is(err, ErrUsernameTaken) {
				t.Errorf("duplicate username err = %v", err)
			}

			king, _ := s.ProfileByID(ctx, "demo-user-1")
			king.State = "NJ"
			king.Bio = "moved"
			if err := s.UpdateProfile(ctx, king); err != nil {
				t.Fatalf("UpdateProfile: %v", err)
			}
			nj, _ := s.FetchListings(ctx, search.Filter{State: ptr("NJ")})
			if len(nj) != 2 {
				t.Errorf("listings follow seller state: got %v", slugs(nj))
			}
			king.Username = "FreshPair"
			if err := s.UpdateProfile(ctx, king); !errors.Is(err, ErrUsernameTaken) {
				t.Errorf("rename onto taken username err = %v", err)
			}
			if err := s.UpdateProfile(ctx, &models.Profile{Base: models.Base{ID: "ghost"}, Username: "ghost"}); !errors.Is(err, ErrNotFound) {
				t.Errorf("update missing profile err = %v", err)
			}
		})
	}
}

func TestStore_TradeOffers(t *testing.T) {
	ctx := context.Background()
	for name, mk := range stores {
		t.Run(name, func(t *testing.T) {
			s := mk(t)
			in, err := s.IncomingTradeOffers(ctx, "demo-user-1")
			if err != nil || len(in) != 1 {
				t.Fatalf("incoming = %d, %v", len(in), err)
			}
			o := in[0]
			if o.ID != "trade-1" || o.Listing.Title != "Jordan 11 Retro Bred" || o.Offerer.Username != "KicksMaster" {
				t.Errorf("incoming offer = %+v", o)
			}
			if o.OfferedListing == nil || o.OfferedListing.Slug != "dunk-low-panda" {
				t.Errorf("offered listing = %+v", o.OfferedListing)
			}
			if o.CashOfferCents == nil || *o.CashOfferCents != 5000 {
				t.Errorf("cash = %v", o.CashOfferCents)
			}

			out, _ := s.OutgoingTradeOffers(ctx, "demo-user-3")
			if len(out) != 2 || out[0].ID != "trade-1" || out[1].ID != "trade-2" {
				t.Errorf("outgoing newest first = %+v", out)
			}

			cash := int64(2500)
			n := &models.TradeOffer{ListingID: "listing-5", OffererID: "demo-user-6", CashOfferCents: &cash}
			if err := s.CreateTradeOffer(ctx, n); err != nil {
				t.Fatalf("CreateTradeOffer: %v", err)
			}
			if n.ID == "" || n.Status != models.OfferPending {
				t.Errorf("created offer = %+v", n)
			}
			if err := s.SetTradeOfferStatus(ctx, n.ID, models.OfferRejected); err != nil {
				t.Fatalf("SetTradeOfferStatus: %v", err)
			}
			got, _ := s.TradeOfferByID(ctx, n.ID)
			if got.Status != models.OfferRejected || got.OfferedListing != nil || got.Listing.Seller.Username != "J4Collector" {
				t.Errorf("reloaded offer = %+v", got)
			}
			if err := s.SetTradeOfferStatus(ctx, "trade-99", models.OfferAccepted); !errors.Is(err, ErrNotFound) {
				t.Errorf("missing offer err = %v", err)
			}
		})
	}
}

func TestMemoryStore_FixtureNotShared(t *testing.T) {
	f := DemoFixture(time.Now())
	s := NewMemoryStore(f)
	ctx := context.Background()
	before, _ := s.FetchListings(ctx, search.Filter{})
	if err := s.SetListingStatus(ctx, "listing-1", models.StatusSold); err != nil {
		t.Fatal(err)
	}
	if f.Listings[0].Status != models.StatusActive {
		t.Error("fixture mutated by store write")
	}
	if before[0].Status != models.StatusActive {
		t.Error("earlier snapshot mutated by store write")
	}
}

func TestGormStore_SeedIsIdempotent(t *testing.T) {
	s := newGorm(t).(*GormStore)
	if err := s.Seed(context.Background(), DemoFixture(time.Now())); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	all, _ := s.FetchListings(context.Background(), search.Filter{})
	if len(all) != 12 {
		t.Errorf("listings after reseed = %d", len(all))
	}
}

func TestGormStore_LookupErrorsSurface(t *testing.T) {
	gs := newGorm(t).(*GormStore)
	errBoom := errors.New("boom")
	err := gs.db.Callback().Query().Before("gorm:query").Register("test:fail_profiles", func(db *gorm.DB) {
		if db.Statement.Table == "profiles" {
			db.AddError(errBoom)
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	l := &models.Listing{SellerID: "demo-user-6", Title: "Vans", Brand: "Vans", Size: "9M",
		Condition: models.ConditionWorn, PriceCents: 100, Slug: "vans-1"}
	err = gs.CreateListing(context.Background(), l)
	if !errors.Is(err, errBoom) || errors.Is(err, ErrNotFound) {
		t.Errorf("CreateListing err = %v", err)
	}
	err = gs.CreateProfile(context.Background(), &models.Profile{Username: "fresh"})
	if !errors.Is(err, errBoom) {
		t.Errorf("CreateProfile err = %v", err)
	}
}
