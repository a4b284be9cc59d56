package models

// Message is a note from a buyer to the seller of a listing, table messages.
type Message struct {
	Base
	SenderID   string `gorm:"type:varchar(36);index;not null" json:"sender_id"`
	ReceiverID string `gorm:"type:varchar(36);index;not null" json:"receiver_id"`
	ListingID  string `gorm:"type:varchar(36);index;not null" json:"listing_id"`
	Content    string `gorm:"type:text;not null" json:"content"`

	Sender  Profile `gorm:"foreignKey:SenderID" json:"sender"`
	Listing Listing `gorm:"foreignKey:ListingID" json:"listing"`
}

func (Message) TableName() string { return "messages" }
