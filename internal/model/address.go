package model

import "time"

// Address is a member's saved shipping destination. At most one address
// per user carries is_default.
type Address struct {
	ID            string    `gorm:"primaryKey;size:64"`
	UserUID       string    `gorm:"column:user_uid;size:128;index;not null"`
	Label         string    `gorm:"column:label;size:60"`
	RecipientName string    `gorm:"column:recipient_name;size:120;not null"`
	Phone         string    `gorm:"column:phone;size:32;not null"`
	Postcode      string    `gorm:"column:postcode;size:16;not null"`
	Address       string    `gorm:"column:address;size:255;not null"`
	Address2      *string   `gorm:"column:address2;size:255"`
	IsDefault     bool      `gorm:"column:is_default;not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (Address) TableName() string {
	return "addresses"
}
