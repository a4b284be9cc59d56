package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"kickswap/internal/models"
)

const (
	MaxImages         = 6
	MinPasswordLength = 6
	FeaturedCount     = 4
	MaxMessageLength  = 2000
)

var (
	ErrForbidden   = errors.New("forbidden")
	ErrOfferClosed = errors.New("offer is no longer pending")

	// ErrInvalidInput is wrapped by every validation error below.
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingFields      = fmt.Errorf("%w: fill in all required fields", ErrInvalidInput)
	ErrInvalidCondition   = fmt.Errorf("%w: unknown condition", ErrInvalidInput)
	ErrInvalidPrice       = fmt.Errorf("%w: price must be a positive amount", ErrInvalidInput)
	ErrNoImages           = fmt.Errorf("%w: please add at least one photo", ErrInvalidInput)
	ErrTooManyImages      = fmt.Errorf("%w: at most %d photos", ErrInvalidInput, MaxImages)
	ErrInvalidImageURL    = fmt.Errorf("%w: photos must be http(s) URLs", ErrInvalidInput)
	ErrInvalidStatus      = fmt.Errorf("%w: unknown status", ErrInvalidInput)
	ErrInvalidState       = fmt.Errorf("%w: unknown state", ErrInvalidInput)
	ErrListingUnavailable = fmt.Errorf("%w: listing is not active", ErrInvalidInput)
	ErrOwnListing         = fmt.Errorf("%w: cannot make an offer on your own listing", ErrInvalidInput)
	ErrEmptyOffer         = fmt.Errorf("%w: offer a pair, cash, or both", ErrInvalidInput)
	ErrNotYourListing     = fmt.Errorf("%w: offered pair must be one of your active listings", ErrInvalidInput)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrInvalidInput)
	ErrEmptyMessage       = fmt.Errorf("%w: message is empty", ErrInvalidInput)
	ErrMessageTooLong     = fmt.Errorf("%w: message is longer than %d characters", ErrInvalidInput, MaxMessageLength)
	ErrMessageSelf        = fmt.Errorf("%w: cannot message yourself about your own listing", ErrInvalidInput)
)

// Service applies the storefront rules on top of a Store.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Store() Store { return s.store }

// ListingInput is the new-listing form.
type ListingInput struct {
	Title        string `form:"title"`
	Description  string `form:"description"`
	Brand        string `form:"brand"`
	Model        string `form:"model"`
	Size         string `form:"size"`
	Condition    string `form:"condition"`
	Price        string `form:"price"`
	OpenToTrades bool   `form:"open_to_trades"`
	Images       string `form:"images"` // one URL per line
}

func (in ListingInput) imageURLs() []string {
	var out []string
	for _, line := range strings.FieldsFunc(in.Images, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if u := strings.TrimSpace(line); u != "" {
			out = append(out, u)
		}
	}
	return out
}

func (s *Service) CreateListing(ctx context.Context, seller *models.Profile, in ListingInput) (*models.Listing, error) {
	title := strings.TrimSpace(in.Title)
	brand := strings.TrimSpace(in.Brand)
	size := strings.TrimSpace(in.Size)
	if title == "" || brand == "" || size == "" || in.Condition == "" || strings.TrimSpace(in.Price) == "" {
		return nil, ErrMissingFields
	}
	cond := models.Condition(in.Condition)
	if !cond.Valid() {
		return nil, ErrInvalidCondition
	}
	cents, err := models.ParsePrice(in.Price)
	if err != nil || cents <= 0 {
		return nil, ErrInvalidPrice
	}
	images := in.imageURLs()
	switch {
	case len(images) == 0:
		return nil, ErrNoImages
	case len(images) > MaxImages:
		return nil, ErrTooManyImages
	}
	for _, raw := range images {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, ErrInvalidImageURL
		}
	}

	l := &models.Listing{
		SellerID:     seller.ID,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Brand:        brand,
		Size:         size,
		Condition:    cond,
		PriceCents:   cents,
		OpenToTrades: in.OpenToTrades,
		Images:       images,
		Slug:         models.Slugify(title, s.now()),
		Status:       models.StatusActive,
	}
	if m := strings.TrimSpace(in.Model); m != "" {
		l.Model = &m
	}
	if err := s.store.CreateListing(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) ownedListing(ctx context.Context, seller *models.Profile, id string) (*models.Listing, error) {
	l, err := s.store.ListingByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.SellerID != seller.ID {
		return nil, fmt.Errorf("listing %s: %w", id, ErrForbidden)
	}
	return l, nil
}

// ChangeListingStatus moves one of the seller's listings to status.
func (s *Service) ChangeListingStatus(ctx context.Context, seller *models.Profile, id string, status models.ListingStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := s.ownedListing(ctx, seller, id); err != nil {
		return err
	}
	return s.store.SetListingStatus(ctx, id, status)
}

func (s *Service) DeleteListing(ctx context.Context, seller *models.Profile, id string) error {
	if _, err := s.ownedListing(ctx, seller, id); err != nil {
		return err
	}
	return s.store.DeleteListing(ctx, id)
}

// OfferInput is the trade offer form.
type OfferInput struct {
	OfferedListingID string `form:"offered_listing_id"`
	CashOffer        string `form:"cash_offer"`
	Message          string `form:"message"`
}

// MakeOffer records a pending offer on the listing identified by slug.
func (s *Service) MakeOffer(ctx context.Context, offerer *models.Profile, slug string, in OfferInput) (*models.TradeOffer, error) {
	target, err := s.store.ListingBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if target.Status != models.StatusActive {
		return nil, ErrListingUnavailable
	}
	if target.SellerID == offerer.ID {
		return nil, ErrOwnListing
	}

	o := &models.TradeOffer{
		ListingID: target.ID,
		OffererID: offerer.ID,
		Status:    models.OfferPending,
	}
	if id := strings.TrimSpace(in.OfferedListingID); id != "" {
		offered, err := s.store.ListingByID(ctx, id)
		if err != nil || offered.SellerID != offerer.ID || offered.Status != models.StatusActive {
			return nil, ErrNotYourListing
		}
		o.OfferedListingID = &id
	}
	if cash := strings.TrimSpace(in.CashOffer); cash != "" {
		cents, err := models.ParsePrice(cash)
		if err != nil || cents <= 0 {
			return nil, ErrInvalidPrice
		}
		o.CashOfferCents = &cents
	}
	if o.OfferedListingID == nil && o.CashOfferCents == nil {
		return nil, ErrEmptyOffer
	}
	if msg := strings.TrimSpace(in.Message); msg != "" {
		o.Message = &msg
	}
	if err := s.store.CreateTradeOffer(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// RespondToOffer accepts or rejects a pending offer on one of the seller's
// listings. Accepting closes both listings and rejects competing offers, see
// TradeStore.AcceptTradeOffer.
func (s *Service) RespondToOffer(ctx context.Context, seller *models.Profile, id string, accept bool) error {
	o, err := s.store.TradeOfferByID(ctx, id)
	if err != nil {
		return err
	}
	if o.Listing.SellerID != seller.ID {
		return fmt.Errorf("trade offer %s: %w", id, ErrForbidden)
	}
	if o.Status != models.OfferPending {
		return ErrOfferClosed
	}
	if accept {
		return s.store.AcceptTradeOffer(ctx, id)
	}
	return s.store.SetTradeOfferStatus(ctx, id, models.OfferRejected)
}

// CancelOffer withdraws a pending offer made by offerer.
func (s *Service) CancelOffer(ctx context.Context, offerer *models.Profile, id string) error {
	o, err := s.store.TradeOfferByID(ctx, id)
	if err != nil {
		return err
	}
	if o.OffererID != offerer.ID {
		return fmt.Errorf("trade offer %s: %w", id, ErrForbidden)
	}
	if o.Status != models.OfferPending {
		return ErrOfferClosed
	}
	return s.store.SetTradeOfferStatus(ctx, id, models.OfferCancelled)
}

// SendMessage delivers content to the seller of the listing identified by slug.
func (s *Service) SendMessage(ctx context.Context, sender *models.Profile, slug, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(content) > MaxMessageLength {
		return nil, ErrMessageTooLong
	}
	l, err := s.store.ListingBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if l.SellerID == sender.ID {
		return nil, ErrMessageSelf
	}
	m := &models.Message{
		SenderID:   sender.ID,
		ReceiverID: l.SellerID,
		ListingID:  l.ID,
		Content:    content,
	}
	if err := s.store.CreateMessage(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Inbox(ctx context.Context, p *models.Profile) ([]models.Message, error) {
	return s.store.InboxMessages(ctx, p.ID)
}

// Dashboard is the summary shown on the seller dashboard.
type Dashboard struct {
	Profile       *models.Profile
	Listings      []models.Listing
	PendingOffers int
	Messages      int
}

func (s *Service) Dashboard(ctx context.Context, p *models.Profile) (*Dashboard, error) {
	listings, err := s.store.ListingsBySeller(ctx, p.ID, true)
	if err != nil {
		return nil, err
	}
	offers, err := s.store.IncomingTradeOffers(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	messages, err := s.store.InboxMessages(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d := &Dashboard{Profile: p, Listings: listings, Messages: len(messages)}
	for _, o := range offers {
		if o.Status == models.OfferPending {
			d.PendingOffers++
		}
	}
	return d, nil
}

// SettingsInput is the profile settings form.
type SettingsInput struct {
	FullName string `form:"full_name"`
	Bio      string `form:"bio"`
	Location string `form:"location"`
	State    string `form:"state"`
}

func (s *Service) UpdateSettings(ctx context.Context, p *models.Profile, in SettingsInput) (*models.Profile, error) {
	state := strings.ToUpper(strings.TrimSpace(in.State))
	if state != "" && !models.ValidState(state) {
		return nil, ErrInvalidState
	}
	next := *p
	next.FullName = strings.TrimSpace(in.FullName)
	next.Bio = strings.TrimSpace(in.Bio)
	next.Location = strings.TrimSpace(in.Location)
	next.State = state
	if err := s.store.UpdateProfile(ctx, &next); err != nil {
		return nil, err
	}
	return &next, nil
}

// RegisterInput is the demo sign-up form.
type RegisterInput struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Username string `form:"username"`
	State    string `form:"state"`
}

// Register creates a demo profile. Credentials are checked for shape only;
// real accounts live with the external auth provider.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Profile, error) {
	username := strings.TrimSpace(in.Username)
	state := strings.ToUpper(strings.TrimSpace(in.State))
	if strings.TrimSpace(in.Email) == "" || len(in.Password) < MinPasswordLength || username == "" || state == "" {
		return nil, ErrMissingFields
	}
	if !models.ValidState(state) {
		return nil, ErrInvalidState
	}
	p := &models.Profile{Username: username, State: state}
	if err := s.store.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// SignIn accepts any email with a long enough password. The username is the
// email's local part; an existing profile with that name is reused.
func (s *Service) SignIn(ctx context.Context, email, password string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) < MinPasswordLength {
		return nil, ErrInvalidCredentials
	}
	username, _, _ := strings.Cut(email, "@")
	if username == "" {
		return nil, ErrInvalidCredentials
	}
	p, err := s.store.ProfileByUsername(ctx, username)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	p = &models.Profile{
		Username: username,
		FullName: "Demo User",
		Bio:      "This is a demo account. Sign up to create your real profile!",
		Location: "Demo City",
		State:    "CA",
	}
	if err := s.store.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
