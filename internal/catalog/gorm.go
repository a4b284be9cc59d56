package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kickswap/internal/models"
	"kickswap/internal/search"
)

// GormStore reads and writes the catalog through gorm (postgres or sqlite).
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

func (s *GormStore) listings(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Listing{}).Preload("Seller")
}

// FetchListings loads the active catalog and narrows it in memory, the same
// way the demo store does.
func (s *GormStore) FetchListings(ctx context.Context, f search.Filter) ([]models.Listing, error) {
	var items []models.Listing
	if err := s.listings(ctx).Where("status = ?", models.StatusActive).Order("created_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("fetch listings: %w", err)
	}
	return search.Apply(items, f), nil
}

func (s *GormStore) FeaturedListings(ctx context.Context, n int) ([]models.Listing, error) {
	var items []models.Listing
	if err := s.listings(ctx).Where("status = ?", models.StatusActive).Order("created_at desc").Limit(n).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("featured listings: %w", err)
	}
	return items, nil
}

func (s *GormStore) ListingBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	var l models.Listing
	if err := s.listings(ctx).Where("slug = ?", slug).First(&l).Error; err != nil {
		return nil, notFound(err, "listing "+slug)
	}
	return &l, nil
}

func (s *GormStore) ListingByID(ctx context.Context, id string) (*models.Listing, error) {
	var l models.Listing
	if err := s.listings(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, notFound(err, "listing "+id)
	}
	return &l, nil
}

func (s *GormStore) ListingsBySeller(ctx context.Context, sellerID string, activeOnly bool) ([]models.Listing, error) {
	q := s.listings(ctx).Where("seller_id = ?", sellerID)
	if activeOnly {
		q = q.Where("status = ?", models.StatusActive)
	}
	var items []models.Listing
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("seller listings: %w", err)
	}
	return items, nil
}

func (s *GormStore) CreateListing(ctx context.Context, l *models.Listing) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&models.Profile{}).Where("id = ?", l.SellerID).Count(&cnt).Error; err != nil {
			return fmt.Errorf("look up seller %s: %w", l.SellerID, err)
		}
		if cnt == 0 {
			return fmt.Errorf("seller %s: %w", l.SellerID, ErrNotFound)
		}
		if err := tx.Model(&models.Listing{}).Where("slug = ?", l.Slug).Count(&cnt).Error; err != nil {
			return fmt.Errorf("check slug %q: %w", l.Slug, err)
		}
		if cnt > 0 {
			return fmt.Errorf("slug %q: %w", l.Slug, ErrSlugTaken)
		}
		if l.Status == "" {
			l.Status = models.StatusActive
		}
		if err := tx.Omit(clause.Associations).Create(l).Error; err != nil {
			return fmt.Errorf("create listing: %w", err)
		}
		return tx.First(&l.Seller, "id = ?", l.SellerID).Error
	})
}

func (s *GormStore) SetListingStatus(ctx context.Context, id string, status models.ListingStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("listing %s status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("listing %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteListing removes the listing and any offers or messages that
// reference it.
func (s *GormStore) DeleteListing(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ? OR offered_listing_id = ?", id, id).Delete(&models.TradeOffer{}).Error; err != nil {
			return fmt.Errorf("delete offers of %s: %w", id, err)
		}
		if err := tx.Where("listing_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return fmt.Errorf("delete messages of %s: %w", id, err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Listing{})
		if res.Error != nil {
			return fmt.Errorf("delete listing %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("listing %s: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (s *GormStore) ProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "profile "+id)
	}
	return &p, nil
}

func (s *GormStore) ProfileByUsername(ctx context.Context, username string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).Where("LOWER(username) = ?", strings.ToLower(username)).First(&p).Error; err != nil {
		return nil, notFound(err, "profile "+username)
	}
	return &p, nil
}

func (s *GormStore) usernameTaken(tx *gorm.DB, username, exceptID string) (bool, error) {
	var cnt int64
	q := tx.Model(&models.Profile{}).Where("LOWER(username) = ?", strings.ToLower(username))
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, fmt.Errorf("check username %q: %w", username, err)
	}
	return cnt > 0, nil
}

func (s *GormStore) CreateProfile(ctx context.Context, p *models.Profile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.usernameTaken(tx, p.Username, "")
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("profile %q: %w", p.Username, ErrUsernameTaken)
		}
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
}

func (s *GormStore) UpdateProfile(ctx context.Context, p *models.Profile) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := s.usernameTaken(tx, p.Username, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("profile %q: %w", p.Username, ErrUsernameTaken)
		}
		res := tx.Model(&models.Profile{}).Where("id = ?", p.ID).Updates(map[string]any{
			"username":  p.Username,
			"full_name": p.FullName,
			"bio":       p.Bio,
			"location":  p.Location,
			"state":     p.State,
		})
		if res.Error != nil {
			return fmt.Errorf("update profile %s: %w", p.ID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("profile %s: %w", p.ID, ErrNotFound)
		}
		return nil
	})
}

func (s *GormStore) Sellers(ctx context.Context) ([]models.SellerSummary, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Where("is_verified = ?", true).Order("created_at asc").Limit(MaxSellers).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("sellers: %w", err)
	}
	out := make([]models.SellerSummary, 0, len(profiles))
	for _, p := range profiles {
		sum := models.SellerSummary{Profile: p}
		if err := s.db.WithContext(ctx).Model(&models.Listing{}).
			Where("seller_id = ? AND status = ?", p.ID, models.StatusActive).
			Count(&sum.ListingCount).Error; err != nil {
			return nil, fmt.Errorf("count listings of %s: %w", p.Username, err)
		}
		out = append(out, sum)
	}
	return out, nil
}

func (s *GormStore) offers(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.TradeOffer{}).
		Preload("Listing.Seller").Preload("OfferedListing.Seller").Preload("Offerer")
}

func (s *GormStore) CreateTradeOffer(ctx context.Context, o *models.TradeOffer) error {
	if o.Status == "" {
		o.Status = models.OfferPending
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error; err != nil {
		return fmt.Errorf("create trade offer: %w", err)
	}
	return nil
}

func (s *GormStore) TradeOfferByID(ctx context.Context, id string) (*models.TradeOffer, error) {
	var o models.TradeOffer
	if err := s.offers(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, notFound(err, "trade offer "+id)
	}
	return &o, nil
}

func (s *GormStore) IncomingTradeOffers(ctx context.Context, sellerID string) ([]models.TradeOffer, error) {
	var out []models.TradeOffer
	err := s.offers(ctx).
		Where("listing_id IN (?)", s.db.WithContext(ctx).Model(&models.Listing{}).Select("id").Where("seller_id = ?", sellerID)).
		Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("incoming offers: %w", err)
	}
	return out, nil
}

func (s *GormStore) OutgoingTradeOffers(ctx context.Context, offererID string) ([]models.TradeOffer, error) {
	var out []models.TradeOffer
	if err := s.offers(ctx).Where("offerer_id = ?", offererID).Order("created_at desc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("outgoing offers: %w", err)
	}
	return out, nil
}

func (s *GormStore) SetTradeOfferStatus(ctx context.Context, id string, status models.OfferStatus) error {
	res := s.db.WithContext(ctx).Model(&models.TradeOffer{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("trade offer %s status: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("trade offer %s: %w", id, ErrNotFound)
	}
	return nil
}

// AcceptTradeOffer runs the acceptance in one transaction. Every update is
// conditioned on the row still being pending or active, so a concurrent
// acceptance makes this one fail instead of overwriting it.
func (s *GormStore) AcceptTradeOffer(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o models.TradeOffer
		if err := tx.First(&o, "id = ?", id).Error; err != nil {
			return notFound(err, "trade offer "+id)
		}
		if o.Status != models.OfferPending {
			return ErrOfferClosed
		}
		var involved []models.Listing
		ids := []string{o.ListingID}
		if o.OfferedListingID != nil {
			ids = append(ids, *o.OfferedListingID)
		}
		if err := tx.Where("id IN ?", ids).Find(&involved).Error; err != nil {
			return fmt.Errorf("load listings of offer %s: %w", id, err)
		}
		closed, err := acceptance(o, func(id string) (*models.Listing, bool) {
			for i := range involved {
				if involved[i].ID == id {
					return &involved[i], true
				}
			}
			return nil, false
		})
		if err != nil {
			return err
		}

		res := tx.Model(&models.TradeOffer{}).Where("id = ? AND status = ?", id, models.OfferPending).Update("status", models.OfferAccepted)
		if res.Error != nil {
			return fmt.Errorf("accept offer %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrOfferClosed
		}
		closedIDs := make([]string, 0, len(closed))
		for lid, st := range closed {
			res := tx.Model(&models.Listing{}).Where("id = ? AND status = ?", lid, models.StatusActive).Update("status", st)
			if res.Error != nil {
				return fmt.Errorf("close listing %s: %w", lid, res.Error)
			}
			if res.RowsAffected == 0 {
				return ErrListingUnavailable
			}
			closedIDs = append(closedIDs, lid)
		}
		if err := tx.Model(&models.TradeOffer{}).
			Where("status = ? AND id <> ?", models.OfferPending, id).
			Where("listing_id IN ? OR offered_listing_id IN ?", closedIDs, closedIDs).
			Update("status", models.OfferRejected).Error; err != nil {
			return fmt.Errorf("reject competing offers: %w", err)
		}
		return nil
	})
}

// Seed inserts the fixture rows that are not there yet. Rows are matched by id.
func (s *GormStore) Seed(ctx context.Context, f Fixture) error {
	db := s.db.WithContext(ctx)
	for i := range f.Profiles {
		p := f.Profiles[i]
		var cnt int64
		if err := db.Model(&models.Profile{}).Where("id = ?", p.ID).Count(&cnt).Error; err != nil {
			return fmt.Errorf("seed profile %s: %w", p.ID, err)
		}
		if cnt > 0 {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			return fmt.Errorf("seed profile %s: %w", p.Username, err)
		}
		slog.Debug("seeded profile", "username", p.Username)
	}
	for i := range f.Listings {
		l := f.Listings[i]
		var cnt int64
		if err := db.Model(&models.Listing{}).Where("id = ?", l.ID).Count(&cnt).Error; err != nil {
			return fmt.Errorf("seed listing %s: %w", l.ID, err)
		}
		if cnt > 0 {
			continue
		}
		if err := db.Omit(clause.Associations).Create(&l).Error; err != nil {
			return fmt.Errorf("seed listing %s: %w", l.Slug, err)
		}
	}
	for i := range f.TradeOffers {
		o := f.TradeOffers[i]
		var cnt int64
		if err := db.Model(&models.TradeOffer{}).Where("id = ?", o.ID).Count(&cnt).Error; err != nil {
			return fmt.Errorf("seed trade offer %s: %w", o.ID, err)
		}
		if cnt > 0 {
			continue
		}
		if err := db.Omit(clause.Associations).Create(&o).Error; err != nil {
			return fmt.Errorf("seed trade offer %s: %w", o.ID, err)
		}
	}
	return nil
}

func (s *GormStore) CreateMessage(ctx context.Context, m *models.Message) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *GormStore) InboxMessages(ctx context.Context, receiverID string) ([]models.Message, error) {
	var out []models.Message
	err := s.db.WithContext(ctx).Preload("Sender").Preload("Listing").
		Where("receiver_id = ?", receiverID).Order("created_at desc").Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("inbox messages: %w", err)
	}
	return out, nil
}

var _ Store = (*GormStore)(nil)
