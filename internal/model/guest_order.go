package model

import "time"

// GuestOrderDraft is the pre-order record written by a non-member
// checkout. It is a simpler parallel write path; drafts are not run
// through the fulfillment state machine.
type GuestOrderDraft struct {
	ID             string     `gorm:"primaryKey;size:64"`
	Email          *string    `gorm:"column:email;size:255"`
	BuyerName      string     `gorm:"column:buyer_name;size:120;not null"`
	BuyerPhone     string     `gorm:"column:buyer_phone;size:32;not null"`
	RecipientName  string     `gorm:"column:recipient_name;size:120;not null"`
	RecipientPhone string     `gorm:"column:recipient_phone;size:32;not null"`
	Postcode       string     `gorm:"column:postcode;size:16;not null"`
	Address        string     `gorm:"column:address;size:255;not null"`
	Address2       *string    `gorm:"column:address2;size:255"`
	Memo           *string    `gorm:"column:memo;type:text"`
	Items          OrderItems `gorm:"column:items;type:json;not null"`
	Amount         int64      `gorm:"column:amount;not null"`
	Currency       string     `gorm:"column:currency;size:8;not null"`
	Status         string     `gorm:"column:status;size:32;not null"`
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

func (GuestOrderDraft) TableName() string {
	return "guest_orders"
}
