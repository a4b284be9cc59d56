package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kickswap/internal/models"
	"kickswap/internal/search"
)

// MemoryStore serves the demo catalog from memory. Writes swap in new slices,
// so a snapshot taken by a reader is never modified afterwards.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles []models.Profile
	listings []models.Listing // catalog order, newest first
	offers   []models.TradeOffer
	messages []models.Message
	now      func() time.Time
}

// NewMemoryStore copies f into a new store.
func NewMemoryStore(f Fixture) *MemoryStore {
	return &MemoryStore{
		profiles: append([]models.Profile(nil), f.Profiles...),
		listings: append([]models.Listing(nil), f.Listings...),
		offers:   append([]models.TradeOffer(nil), f.TradeOffers...),
		now:      time.Now,
	}
}

func (s *MemoryStore) snapshot() ([]models.Profile, []models.Listing, []models.TradeOffer) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profiles, s.listings, s.offers
}

func findProfile(profiles []models.Profile, id string) (models.Profile, bool) {
	for _, p := range profiles {
		if p.ID == id {
			return p, true
		}
	}
	return models.Profile{}, false
}

func findListing(listings []models.Listing, match func(*models.Listing) bool) (int, bool) {
	for i := range listings {
		if match(&listings[i]) {
			return i, true
		}
	}
	return -1, false
}

// hydrate attaches the current seller profile.
func hydrate(profiles []models.Profile, l models.Listing) models.Listing {
	if p, ok := findProfile(profiles, l.SellerID); ok {
		l.Seller = p
	}
	return l
}

func (s *MemoryStore) FetchListings(ctx context.Context, f search.Filter) ([]models.Listing, error) {
	profiles, listings, _ := s.snapshot()
	active := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Status == models.StatusActive {
			active = append(active, hydrate(profiles, l))
		}
	}
	return search.Apply(active, f), nil
}

func (s *MemoryStore) FeaturedListings(ctx context.Context, n int) ([]models.Listing, error) {
	all, _ := s.FetchListings(ctx, search.Filter{})
	if len(all) > n {
		all = all[:n]
	}
	return all, nil
}

func (s *MemoryStore) ListingBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	profiles, listings, _ := s.snapshot()
	i, ok := findListing(listings, func(l *models.Listing) bool { return l.Slug == slug })
	if !ok {
		return nil, fmt.Errorf("listing %q: %w", slug, ErrNotFound)
	}
	l := hydrate(profiles, listings[i])
	return &l, nil
}

func (s *MemoryStore) ListingByID(ctx context.Context, id string) (*models.Listing, error) {
	profiles, listings, _ := s.snapshot()
	i, ok := findListing(listings, func(l *models.Listing) bool { return l.ID == id })
	if !ok {
		return nil, fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	l := hydrate(profiles, listings[i])
	return &l, nil
}

func (s *MemoryStore) ListingsBySeller(ctx context.Context, sellerID string, activeOnly bool) ([]models.Listing, error) {
	profiles, listings, _ := s.snapshot()
	var out []models.Listing
	for _, l := range listings {
		if l.SellerID != sellerID || (activeOnly && l.Status != models.StatusActive) {
			continue
		}
		out = append(out, hydrate(profiles, l))
	}
	return out, nil
}

func (s *MemoryStore) CreateListing(ctx context.Context, l *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findProfile(s.profiles, l.SellerID); !ok {
		return fmt.Errorf("seller %s: %w", l.SellerID, ErrNotFound)
	}
	if _, taken := findListing(s.listings, func(x *models.Listing) bool { return x.Slug == l.Slug }); taken {
		return fmt.Errorf("slug %q: %w", l.Slug, ErrSlugTaken)
	}
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = models.StatusActive
	}
	now := s.now()
	l.CreatedAt, l.UpdatedAt = now, now
	l.Seller, _ = findProfile(s.profiles, l.SellerID)

	next := make([]models.Listing, 0, len(s.listings)+1)
	next = append(next, *l)
	s.listings = append(next, s.listings...)
	return nil
}

func (s *MemoryStore) SetListingStatus(ctx context.Context, id string, status models.ListingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := findListing(s.listings, func(l *models.Listing) bool { return l.ID == id })
	if !ok {
		return fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	next := append([]models.Listing(nil), s.listings...)
	next[i].Status = status
	next[i].UpdatedAt = s.now()
	s.listings = next
	return nil
}

// DeleteListing removes the listing and any offers or messages that
// reference it.
func (s *MemoryStore) DeleteListing(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := findListing(s.listings, func(l *models.Listing) bool { return l.ID == id })
	if !ok {
		return fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	next := make([]models.Listing, 0, len(s.listings)-1)
	next = append(next, s.listings[:i]...)
	s.listings = append(next, s.listings[i+1:]...)

	offers := make([]models.TradeOffer, 0, len(s.offers))
	for _, o := range s.offers {
		if o.ListingID == id || (o.OfferedListingID != nil && *o.OfferedListingID == id) {
			continue
		}
		offers = append(offers, o)
	}
	s.offers = offers

	messages := make([]models.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if m.ListingID != id {
			messages = append(messages, m)
		}
	}
	s.messages = messages
	return nil
}

func (s *MemoryStore) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	profiles, _, _ := s.snapshot()
	p, ok := findProfile(profiles, id)
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (s *MemoryStore) ProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	profiles, _, _ := s.snapshot()
	for _, p := range profiles {
		if strings.EqualFold(p.Username, username) {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", username, ErrNotFound)
}

func usernameTaken(profiles []models.Profile, username, exceptID string) bool {
	for _, p := range profiles {
		if p.ID != exceptID && strings.EqualFold(p.Username, username) {
			return true
		}
	}
	return false
}

func (s *MemoryStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if usernameTaken(s.profiles, p.Username, "") {
		return fmt.Errorf("profile %q: %w", p.Username, ErrUsernameTaken)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	next := make([]models.Profile, 0, len(s.profiles)+1)
	next = append(next, s.profiles...)
	s.profiles = append(next, *p)
	return nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i := range s.profiles {
		if s.profiles[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("profile %s: %w", p.ID, ErrNotFound)
	}
	if usernameTaken(s.profiles, p.Username, p.ID) {
		return fmt.Errorf("profile %q: %w", p.Username, ErrUsernameTaken)
	}
	p.CreatedAt = s.profiles[idx].CreatedAt
	p.UpdatedAt = s.now()
	next := append([]models.Profile(nil), s.profiles...)
	next[idx] = *p
	s.profiles = next
	return nil
}

func (s *MemoryStore) Sellers(ctx context.Context) ([]models.SellerSummary, error) {
	profiles, listings, _ := s.snapshot()
	var out []models.SellerSummary
	for _, p := range profiles {
		if !p.IsVerified {
			continue
		}
		sum := models.SellerSummary{Profile: p}
		for _, l := range listings {
			if l.SellerID == p.ID && l.Status == models.StatusActive {
				sum.ListingCount++
			}
		}
		out = append(out, sum)
		if len(out) == MaxSellers {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) hydrateOffer(profiles []models.Profile, listings []models.Listing, o models.TradeOffer) models.TradeOffer {
	if i, ok := findListing(listings, func(l *models.Listing) bool { return l.ID == o.ListingID }); ok {
		o.Listing = hydrate(profiles, listings[i])
	}
	if o.OfferedListingID != nil {
		if i, ok := findListing(listings, func(l *models.Listing) bool { return l.ID == *o.OfferedListingID }); ok {
			offered := hydrate(profiles, listings[i])
			o.OfferedListing = &offered
		}
	}
	o.Offerer, _ = findProfile(profiles, o.OffererID)
	return o
}

func (s *MemoryStore) CreateTradeOffer(ctx context.Context, o *models.TradeOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findListing(s.listings, func(l *models.Listing) bool { return l.ID == o.ListingID }); !ok {
		return fmt.Errorf("listing %s: %w", o.ListingID, ErrNotFound)
	}
	if _, ok := findProfile(s.profiles, o.OffererID); !ok {
		return fmt.Errorf("profile %s: %w", o.OffererID, ErrNotFound)
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = models.OfferPending
	}
	now := s.now()
	o.CreatedAt, o.UpdatedAt = now, now
	next := make([]models.TradeOffer, 0, len(s.offers)+1)
	next = append(next, s.offers...)
	s.offers = append(next, *o)
	return nil
}

func (s *MemoryStore) TradeOfferByID(ctx context.Context, id string) (*models.TradeOffer, error) {
	profiles, listings, offers := s.snapshot()
	for _, o := range offers {
		if o.ID == id {
			h := s.hydrateOffer(profiles, listings, o)
			return &h, nil
		}
	}
	return nil, fmt.Errorf("trade offer %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) collectOffers(keep func(o models.TradeOffer, target models.Listing) bool) []models.TradeOffer {
	profiles, listings, offers := s.snapshot()
	var out []models.TradeOffer
	for _, o := range offers {
		h := s.hydrateOffer(profiles, listings, o)
		if keep(o, h.Listing) {
			out = append(out, h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *MemoryStore) IncomingTradeOffers(ctx context.Context, sellerID string) ([]models.TradeOffer, error) {
	return s.collectOffers(func(_ models.TradeOffer, target models.Listing) bool {
		return target.SellerID == sellerID
	}), nil
}

func (s *MemoryStore) OutgoingTradeOffers(ctx context.Context, offererID string) ([]models.TradeOffer, error) {
	return s.collectOffers(func(o models.TradeOffer, _ models.Listing) bool {
		return o.OffererID == offererID
	}), nil
}

func (s *MemoryStore) SetTradeOfferStatus(ctx context.Context, id string, status models.OfferStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.offers {
		if s.offers[i].ID != id {
			continue
		}
		next := append([]models.TradeOffer(nil), s.offers...)
		next[i].Status = status
		next[i].UpdatedAt = s.now()
		s.offers = next
		return nil
	}
	return fmt.Errorf("trade offer %s: %w", id, ErrNotFound)
}

func (s *MemoryStore) AcceptTradeOffer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	oi := -1
	for i := range s.offers {
		if s.offers[i].ID == id {
			oi = i
			break
		}
	}
	if oi < 0 {
		return fmt.Errorf("trade offer %s: %w", id, ErrNotFound)
	}
	o := s.offers[oi]
	if o.Status != models.OfferPending {
		return ErrOfferClosed
	}
	closed, err := acceptance(o, func(id string) (*models.Listing, bool) {
		i, ok := findListing(s.listings, func(l *models.Listing) bool { return l.ID == id })
		if !ok {
			return nil, false
		}
		return &s.listings[i], true
	})
	if err != nil {
		return err
	}

	now := s.now()
	listings := append([]models.Listing(nil), s.listings...)
	for i := range listings {
		if st, ok := closed[listings[i].ID]; ok {
			listings[i].Status = st
			listings[i].UpdatedAt = now
		}
	}
	offers := append([]models.TradeOffer(nil), s.offers...)
	for i := range offers {
		switch {
		case i == oi:
			offers[i].Status = models.OfferAccepted
		case offers[i].Status == models.OfferPending && closedBy(offers[i], closed):
			offers[i].Status = models.OfferRejected
		default:
			continue
		}
		offers[i].UpdatedAt = now
	}
	s.listings, s.offers = listings, offers
	return nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, m *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := findListing(s.listings, func(l *models.Listing) bool { return l.ID == m.ListingID }); !ok {
		return fmt.Errorf("listing %s: %w", m.ListingID, ErrNotFound)
	}
	for _, id := range []string{m.SenderID, m.ReceiverID} {
		if _, ok := findProfile(s.profiles, id); !ok {
			return fmt.Errorf("profile %s: %w", id, ErrNotFound)
		}
	}
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	now := s.now()
	m.CreatedAt, m.UpdatedAt = now, now
	next := make([]models.Message, 0, len(s.messages)+1)
	next = append(next, s.messages...)
	s.messages = append(next, *m)
	return nil
}

func (s *MemoryStore) InboxMessages(ctx context.Context, receiverID string) ([]models.Message, error) {
	s.mu.RLock()
	profiles, listings, messages := s.profiles, s.listings, s.messages
	s.mu.RUnlock()

	var out []models.Message
	for _, m := range messages {
		if m.ReceiverID != receiverID {
			continue
		}
		m.Sender, _ = findProfile(profiles, m.SenderID)
		if i, ok := findListing(listings, func(l *models.Listing) bool { return l.ID == m.ListingID }); ok {
			m.Listing = listings[i]
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
