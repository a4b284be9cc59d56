package models

// Profile is a seller (or buyer) profile, table profiles.
type Profile struct {
	Base
	Username   string `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	FullName   string `gorm:"type:varchar(128)" json:"full_name"`
	Bio        string `gorm:"type:text" json:"bio"`
	Location   string `gorm:"type:varchar(128)" json:"location"` // free text, e.g. "Brooklyn, NY"
	State      string `gorm:"type:varchar(2);index" json:"state"`
	IsVerified bool   `gorm:"not null;default:false" json:"is_verified"`
}

func (Profile) TableName() string { return "profiles" }

// DisplayName prefers the full name.
func (p Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Username
}

// SellerSummary is a profile with its number of active listings.
type SellerSummary struct {
	Profile
	ListingCount int64 `json:"listing_count"`
}
