package models

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Condition of a pair.
type Condition string

const (
	ConditionDeadstock Condition = "deadstock"
	ConditionLikeNew   Condition = "like_new"
	ConditionUsed      Condition = "used"
	ConditionWorn      Condition = "worn"
)

// ListingStatus is the lifecycle state of a listing. Transitions are not enforced.
type ListingStatus string

const (
	StatusActive   ListingStatus = "active"
	StatusSold     ListingStatus = "sold"
	StatusTraded   ListingStatus = "traded"
	StatusInactive ListingStatus = "inactive"
)

// Valid reports whether s is one of the known statuses.
func (s ListingStatus) Valid() bool {
	switch s {
	case StatusActive, StatusSold, StatusTraded, StatusInactive:
		return true
	}
	return false
}

// Listing is a pair offered for sale or trade, table listings.
type Listing struct {
	Base
	SellerID     string        `gorm:"type:varchar(36);index;not null" json:"seller_id"`
	Title        string        `gorm:"not null" json:"title"`
	Description  string        `gorm:"type:text" json:"description"`
	Brand        string        `gorm:"type:varchar(64);index;not null" json:"brand"`
	Model        *string       `gorm:"type:varchar(128)" json:"model"`
	Size         string        `gorm:"type:varchar(16);index;not null" json:"size"`
	Condition    Condition     `gorm:"type:varchar(16);not null" json:"condition"`
	PriceCents   int64         `gorm:"not null" json:"price_cents"`
	OpenToTrades bool          `gorm:"not null;default:false" json:"open_to_trades"`
	Images       []string      `gorm:"serializer:json;type:text" json:"images"`
	Slug         string        `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Status       ListingStatus `gorm:"type:varchar(16);index;not null;default:'active'" json:"status"`

	Seller Profile `gorm:"foreignKey:SellerID" json:"seller"`
}

func (Listing) TableName() string { return "listings" }

// ModelName returns the model or "" when unset.
func (l Listing) ModelName() string {
	if l.Model == nil {
		return ""
	}
	return *l.Model
}

// CoverImage is the first image, if any.
func (l Listing) CoverImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

var slugJunk = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify builds the listing slug: lowered title with non-alphanumeric runs
// collapsed to "-", suffixed with the creation time in unix millis.
func Slugify(title string, now time.Time) string {
	base := strings.Trim(slugJunk.ReplaceAllString(strings.ToLower(title), "-"), "-")
	return fmt.Sprintf("%s-%d", base, now.UnixMilli())
}

var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice turns "350", "12.5" or "12,50" into cents. Only digits are
// accepted on either side of the decimal separator.
func ParsePrice(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	whole, frac, hasFrac := strings.Cut(s, ".")
	if !digits(whole) || (hasFrac && (!digits(frac) || len(frac) > 2)) {
		return 0, ErrInvalidPrice
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars >= math.MaxInt64/100 {
		return 0, ErrInvalidPrice
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, _ = strconv.ParseInt(frac, 10, 64)
	}
	return dollars*100 + cents, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatPrice renders cents with two decimals.
func FormatPrice(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}
