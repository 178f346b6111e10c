package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// OrderItem is a snapshot of a catalog line taken at order time.
// It never references the live catalog again.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Qty       int    `json:"qty"`
}

// OrderItems is stored as a single JSON column.
type OrderItems []OrderItem

func (items OrderItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *OrderItems) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*items = nil
		return nil
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	}
	return errors.New("items: unsupported column type")
}

type Order struct {
	ID                string            `gorm:"primaryKey;size:64"`
	OrderNo           string            `gorm:"column:order_no;size:32;uniqueIndex;not null"`
	BuyerName         string            `gorm:"column:buyer_name;size:120;not null"`
	BuyerPhone        string            `gorm:"column:buyer_phone;size:32;not null"` // digits only
	BuyerEmail        *string           `gorm:"column:buyer_email;size:255;index"`
	ShippingZip       string            `gorm:"column:shipping_zip;size:16;not null"`
	ShippingAddr1     string            `gorm:"column:shipping_addr1;size:255;not null"`
	ShippingAddr2     *string           `gorm:"column:shipping_addr2;size:255"`
	ShippingMemo      *string           `gorm:"column:shipping_memo;type:text"`
	Items             OrderItems        `gorm:"column:items;type:json;not null"`
	Amount            int64             `gorm:"column:amount;not null"`
	Currency          string            `gorm:"column:currency;size:8;not null"`
	PaymentStatus     PaymentStatus     `gorm:"column:payment_status;size:32;not null"`
	FulfillmentStatus FulfillmentStatus `gorm:"column:fulfillment_status;size:32;not null"`
	ShippingCarrier   *string           `gorm:"column:shipping_carrier;size:64"`
	TrackingNumber    *string           `gorm:"column:tracking_number;size:64"`
	CreatedAt         time.Time         `gorm:"autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}
