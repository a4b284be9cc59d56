package models

// OfferStatus of a trade offer.
type OfferStatus string

const (
	OfferPending   OfferStatus = "pending"
	OfferAccepted  OfferStatus = "accepted"
	OfferRejected  OfferStatus = "rejected"
	OfferCancelled OfferStatus = "cancelled"
)

// TradeOffer proposes cash and/or another listing for a target listing, table trade_offers.
type TradeOffer struct {
	Base
	ListingID        string      `gorm:"type:varchar(36);index;not null" json:"listing_id"`
	OffererID        string      `gorm:"type:varchar(36);index;not null" json:"offerer_id"`
	OfferedListingID *string     `gorm:"type:varchar(36)" json:"offered_listing_id"`
	CashOfferCents   *int64      `json:"cash_offer_cents"`
	Message          *string     `gorm:"type:text" json:"message"`
	Status           OfferStatus `gorm:"type:varchar(16);index;not null;default:'pending'" json:"status"`

	Listing        Listing  `gorm:"foreignKey:ListingID" json:"listing"`
	OfferedListing *Listing `gorm:"foreignKey:OfferedListingID" json:"offered_listing,omitempty"`
	Offerer        Profile  `gorm:"foreignKey:OffererID" json:"offerer"`
}

func (TradeOffer) TableName() string { return "trade_offers" }
