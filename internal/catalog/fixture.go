package catalog

import (
	"strconv"
	"time"

	"kickswap/internal/models"
)

// Fixture is the demo data set: profiles, listings (newest first) and trade offers.
type Fixture struct {
	Profiles    []models.Profile
	Listings    []models.Listing
	TradeOffers []models.TradeOffer
}

// DemoFixture builds a fresh copy of the demo catalog with timestamps relative to now.
func DemoFixture(now time.Time) Fixture {
	day := 24 * time.Hour
	profile := func(id, username, fullName, bio, location, state string, since string) models.Profile {
		created, _ := time.Parse(time.RFC3339, since)
		return models.Profile{
			Base:       models.Base{ID: id, CreatedAt: created, UpdatedAt: now},
			Username:   username,
			FullName:   fullName,
			Bio:        bio,
			Location:   location,
			State:      state,
			IsVerified: true,
		}
	}
	profiles := []models.Profile{
		profile("demo-user-1", "SneakerKing", "Michael J", "OG sneaker collector since 2010. Only authentic heat. Over 500 verified sales. Quick responses, fair prices.", "Brooklyn, NY", "NY", "2020-01-15T00:00:00Z"),
		profile("demo-user-2", "HeatCheck", "Sarah L", "LA-based reseller. Quick shipping, fair prices. DM for deals!", "Los Angeles, CA", "CA", "2021-03-20T00:00:00Z"),
		profile("demo-user-3", "KicksMaster", "James T", "Jordan collector. Mostly DS pairs. Chicago local meetups available.", "Chicago, IL", "IL", "2019-08-10T00:00:00Z"),
		profile("demo-user-4", "SoleTrader", "Alex M", "New Balance & Yeezy specialist. Always looking for trades!", "Miami, FL", "FL", "2022-01-05T00:00:00Z"),
		profile("demo-user-5", "J4Collector", "David K", "Jordan 4 enthusiast. Building the ultimate collection.", "Houston, TX", "TX", "2021-11-15T00:00:00Z"),
		profile("demo-user-6", "DunkDaily", "Emma R", "Dunk lover. SB and regular dunks. All sizes available.", "Portland, OR", "OR", "2020-06-22T00:00:00Z"),
	}
	byID := map[string]models.Profile{}
	for _, p := range profiles {
		byID[p.ID] = p
	}

	type row struct {
		seller, title, desc, brand, model, size string
		cond                                    models.Condition
		price                                   int64
		trades                                  bool
		image, slug                             string
	}
	rows := []row{
		{"demo-user-1", "Jordan 1 Retro High OG Chicago", "Brand new, deadstock pair of the iconic Jordan 1 Chicago. Comes with original box and all accessories. These are the 2015 retro release. Size 10 mens.", "Jordan", "Air Jordan 1 Retro High OG", "10M", models.ConditionDeadstock, 350, true, "photo-1600269452121-4f2416e55c28", "jordan-1-chicago"},
		{"demo-user-2", "Yeezy Boost 350 V2 Zebra", "OG Zebra colorway. Worn twice, excellent condition. Comes with box.", "Adidas", "Yeezy 350 V2", "11M", models.ConditionLikeNew, 280, false, "photo-1587563871167-1ee9c731aefb", "yeezy-350-zebra"},
		{"demo-user-3", "Nike Dunk Low Panda", "Black and white colorway. Deadstock with tags. Perfect everyday sneaker.", "Nike", "Dunk Low", "9.5M", models.ConditionDeadstock, 150, true, "photo-1595950653106-6c9ebd614d3a", "dunk-low-panda"},
		{"demo-user-4", "New Balance 550 White Green", "Clean everyday sneaker. Gently used, great condition.", "New Balance", "550", "10.5M", models.ConditionUsed, 120, true, "photo-1539185441755-769473a23570", "nb-550-white-green"},
		{"demo-user-5", "Jordan 4 Retro Black Cat", "All black J4. Brand new deadstock. One of the cleanest colorways.", "Jordan", "Air Jordan 4", "12M", models.ConditionDeadstock, 420, true, "photo-1584735175315-9d5df23860e6", "jordan-4-black-cat"},
		{"demo-user-6", "Nike Air Max 90 Infrared", "Classic AM90 in the iconic infrared colorway. Worn a few times.", "Nike", "Air Max 90", "9M", models.ConditionLikeNew, 160, false, "photo-1606107557195-0e29a4b5b4aa", "air-max-90-infrared"},
		{"demo-user-1", "Jordan 11 Retro Bred", "The legendary Bred 11s. Deadstock condition with OG everything.", "Jordan", "Air Jordan 11", "10M", models.ConditionDeadstock, 380, true, "photo-1551107696-a4b0c5a0d9a2", "jordan-11-bred"},
		{"demo-user-2", "Nike SB Dunk Low Travis Scott", "Cactus Jack special. Light wear, still in great shape.", "Nike", "SB Dunk Low", "10M", models.ConditionUsed, 1200, true, "photo-1597045566677-8cf032ed6634", "sb-dunk-travis-scott"},
		{"demo-user-3", "Adidas Forum Low Bad Bunny", "Bad Bunny collab. Super clean, DS condition.", "Adidas", "Forum Low", "9M", models.ConditionDeadstock, 250, false, "photo-1560769629-975ec94e6a86", "forum-bad-bunny"},
		{"demo-user-4", "Nike Air Force 1 Low White", "Classic all-white AF1s. Brand new, never worn.", "Nike", "Air Force 1 Low", "11M", models.ConditionDeadstock, 110, true, "photo-1549298916-b41d501d3772", "af1-low-white"},
		{"demo-user-5", "Jordan 3 Retro Fire Red", "Fire Red 3s. Iconic colorway. DS with receipt.", "Jordan", "Air Jordan 3", "10.5M", models.ConditionDeadstock, 290, true, "photo-1542291026-7eec264c27ff", "jordan-3-fire-red"},
		{"demo-user-6", "Converse Chuck 70 High Black", "Classic high top Chuck 70s. Like new condition.", "Converse", "Chuck 70", "8M", models.ConditionLikeNew, 65, false, "photo-1463100099107-aa0980c362e6", "chuck-70-black"},
	}
	listings := make([]models.Listing, 0, len(rows))
	for i, r := range rows {
		model := r.model
		listings = append(listings, models.Listing{
			Base: models.Base{
				ID:        "listing-" + strconv.Itoa(i+1),
				CreatedAt: now.Add(-time.Duration(i+1) * day),
				UpdatedAt: now,
			},
			SellerID:     r.seller,
			Title:        r.title,
			Description:  r.desc,
			Brand:        r.brand,
			Model:        &model,
			Size:         r.size,
			Condition:    r.cond,
			PriceCents:   r.price * 100,
			OpenToTrades: r.trades,
			Images:       []string{"https://images.unsplash.com/" + r.image + "?w=800&h=800&fit=crop"},
			Slug:         r.slug,
			Status:       models.StatusActive,
			Seller:       byID[r.seller],
		})
	}

	str := func(s string) *string { return &s }
	cash := func(dollars int64) *int64 { c := dollars * 100; return &c }
	offer := func(id, listingID, offererID, offeredID string, cashOffer *int64, msg string, status models.OfferStatus, age time.Duration) models.TradeOffer {
		return models.TradeOffer{
			Base:             models.Base{ID: id, CreatedAt: now.Add(-age), UpdatedAt: now.Add(-age)},
			ListingID:        listingID,
			OffererID:        offererID,
			OfferedListingID: str(offeredID),
			CashOfferCents:   cashOffer,
			Message:          str(msg),
			Status:           status,
		}
	}
	offers := []models.TradeOffer{
		offer("trade-1", "listing-7", "demo-user-3", "listing-3", cash(50), "Interested in trading my Panda Dunks for your Bred 11s! Can add $50 on top.", models.OfferPending, 2*time.Hour),
		offer("trade-2", "listing-2", "demo-user-3", "listing-9", cash(100), "Would love to trade! Let me know if this works.", models.OfferPending, day),
		offer("trade-3", "listing-6", "demo-user-4", "listing-4", nil, "Straight trade?", models.OfferAccepted, 3*day),
	}

	return Fixture{Profiles: profiles, Listings: listings, TradeOffers: offers}
}
