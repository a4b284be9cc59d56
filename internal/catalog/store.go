// Package catalog is the data layer behind the storefront: one Store interface
// with an in-memory demo implementation and a gorm-backed one.
package catalog

import (
	"context"
	"errors"

	"kickswap/internal/models"
	"kickswap/internal/search"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username taken")
	ErrSlugTaken     = errors.New("slug taken")
)

// MaxSellers caps the verified sellers page.
const MaxSellers = 20

type ListingStore interface {
	// FetchListings returns active listings, newest first, narrowed by f.
	FetchListings(ctx context.Context, f search.Filter) ([]models.Listing, error)
	FeaturedListings(ctx context.Context, n int) ([]models.Listing, error)
	ListingBySlug(ctx context.Context, slug string) (*models.Listing, error)
	ListingByID(ctx context.Context, id string) (*models.Listing, error)
	ListingsBySeller(ctx context.Context, sellerID string, activeOnly bool) ([]models.Listing, error)
	CreateListing(ctx context.Context, l *models.Listing) error
	SetListingStatus(ctx context.Context, id string, status models.ListingStatus) error
	DeleteListing(ctx context.Context, id string) error
}

type ProfileStore interface {
	ProfileByID(ctx context.Context, id string) (*models.Profile, error)
	// ProfileByUsername matches case-insensitively.
	ProfileByUsername(ctx context.Context, username string) (*models.Profile, error)
	CreateProfile(ctx context.Context, p *models.Profile) error
	UpdateProfile(ctx context.Context, p *models.Profile) error
	// Sellers lists verified profiles with their active listing counts.
	Sellers(ctx context.Context) ([]models.SellerSummary, error)
}

type TradeStore interface {
	CreateTradeOffer(ctx context.Context, o *models.TradeOffer) error
	TradeOfferByID(ctx context.Context, id string) (*models.TradeOffer, error)
	// IncomingTradeOffers lists offers on the seller's listings, newest first.
	IncomingTradeOffers(ctx context.Context, sellerID string) ([]models.TradeOffer, error)
	// OutgoingTradeOffers lists offers made by the profile, newest first.
	OutgoingTradeOffers(ctx context.Context, offererID string) ([]models.TradeOffer, error)
	SetTradeOfferStatus(ctx context.Context, id string, status models.OfferStatus) error
	// AcceptTradeOffer accepts a pending offer in one step: the target listing
	// becomes traded (sold for cash-only offers), the offered pair traded, and
	// other pending offers involving either listing are rejected. Both
	// listings must still be active.
	AcceptTradeOffer(ctx context.Context, id string) error
}

// acceptance returns the listing statuses accepting o leads to, or
// ErrListingUnavailable when a listing involved is gone or no longer active.
func acceptance(o models.TradeOffer, lookup func(id string) (*models.Listing, bool)) (map[string]models.ListingStatus, error) {
	target, ok := lookup(o.ListingID)
	if !ok || target.Status != models.StatusActive {
		return nil, ErrListingUnavailable
	}
	closed := map[string]models.ListingStatus{o.ListingID: models.StatusSold}
	if o.OfferedListingID != nil {
		offered, ok := lookup(*o.OfferedListingID)
		if !ok || offered.Status != models.StatusActive {
			return nil, ErrListingUnavailable
		}
		closed[o.ListingID] = models.StatusTraded
		closed[offered.ID] = models.StatusTraded
	}
	return closed, nil
}

// closedBy reports whether o involves one of the closed listings.
func closedBy(o models.TradeOffer, closed map[string]models.ListingStatus) bool {
	if _, ok := closed[o.ListingID]; ok {
		return true
	}
	if o.OfferedListingID != nil {
		_, ok := closed[*o.OfferedListingID]
		return ok
	}
	return false
}

type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	// InboxMessages lists messages sent to the profile, newest first.
	InboxMessages(ctx context.Context, receiverID string) ([]models.Message, error)
}

// Store is the data provider chosen once at startup.
type Store interface {
	ListingStore
	ProfileStore
	TradeStore
	MessageStore
}
