package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/orderno"
	"github.com/hyelabel/shop-backend/internal/repository"
	"gorm.io/gorm"
)

// Every order is priced in KRW; the column exists so that could change
// without a migration.
const currency = "KRW"

// createAttempts bounds the order-number collision retry loop. With
// 9000 suffixes per day, exhausting 5 attempts means numbering
// pressure, which is reported as its own error.
const createAttempts = 5

type CreateOrderInput struct {
	BuyerName     string
	BuyerPhone    string
	BuyerEmail    *string
	ShippingZip   string
	ShippingAddr1 string
	ShippingAddr2 *string
	ShippingMemo  *string
	Items         []model.OrderItem
}

type GuestDraftInput struct {
	Email          *string
	BuyerName      string
	BuyerPhone     string
	RecipientName  string
	RecipientPhone string
	Postcode       string
	Address        string
	Address2       *string
	Memo           *string
	Items          []model.OrderItem
}

type OrderService interface {
	Create(ctx context.Context, in CreateOrderInput) (*model.Order, error)
	CreateGuestDraft(ctx context.Context, in GuestDraftInput) (*model.GuestOrderDraft, error)
	GetGuestDraft(ctx context.Context, id string) (*model.GuestOrderDraft, error)
	GetByIdentifier(ctx context.Context, key string) (*model.Order, error)
	AdminUpdate(ctx context.Context, key string, p OrderPatch) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	ListByBuyerEmail(ctx context.Context, email string) ([]model.Order, error)
	Lookup(ctx context.Context, orderNo, phoneLast4 string) (*model.Order, error)
}

type orderService struct {
	orders repository.OrderRepository
	guests repository.GuestOrderRepository
	gen    *orderno.Generator
}

func NewOrderService(orders repository.OrderRepository, guests repository.GuestOrderRepository, gen *orderno.Generator) OrderService {
	return &orderService{orders: orders, guests: guests, gen: gen}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func itemsTotal(items []model.OrderItem) (int64, error) {
	var total int64
	for _, it := range items {
		if it.Qty < 1 {
			return 0, fmt.Errorf("%w: item qty must be at least 1", ErrInvalidOrder)
		}
		if it.Price < 0 {
			return 0, fmt.Errorf("%w: item price must not be negative", ErrInvalidOrder)
		}
		total += it.Price * int64(it.Qty)
	}
	return total, nil
}

func (s *orderService) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	buyerName := strings.TrimSpace(in.BuyerName)
	buyerPhone := digitsOnly(in.BuyerPhone)
	zip := strings.TrimSpace(in.ShippingZip)
	addr1 := strings.TrimSpace(in.ShippingAddr1)
	if buyerName == "" || buyerPhone == "" {
		return nil, fmt.Errorf("%w: buyer name and phone are required", ErrInvalidOrder)
	}
	if zip == "" || addr1 == "" {
		return nil, fmt.Errorf("%w: shipping zip and address are required", ErrInvalidOrder)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidOrder)
	}
	amount, err := itemsTotal(in.Items)
	if err != nil {
		return nil, err
	}

	o := &model.Order{
		ID:                "ord_" + uuid.NewString(),
		BuyerName:         buyerName,
		BuyerPhone:        buyerPhone,
		BuyerEmail:        in.BuyerEmail,
		ShippingZip:       zip,
		ShippingAddr1:     addr1,
		ShippingAddr2:     in.ShippingAddr2,
		ShippingMemo:      in.ShippingMemo,
		Items:             model.OrderItems(in.Items),
		Amount:            amount,
		Currency:          currency,
		PaymentStatus:     model.PaymentCreated,
		FulfillmentStatus: model.FulfillmentNew,
	}

	for i := 0; i < createAttempts; i++ {
		o.OrderNo = s.gen.Next()
		err := s.orders.Create(ctx, o)
		if err == nil {
			return o, nil
		}
		if errors.Is(err, repository.ErrDuplicateOrderNo) {
			continue
		}
		return nil, err
	}
	return nil, ErrOrderNoExhausted
}

func (s *orderService) CreateGuestDraft(ctx context.Context, in GuestDraftInput) (*model.GuestOrderDraft, error) {
	buyerName := strings.TrimSpace(in.BuyerName)
	buyerPhone := digitsOnly(in.BuyerPhone)
	recipientName := strings.TrimSpace(in.RecipientName)
	recipientPhone := digitsOnly(in.RecipientPhone)
	if buyerName == "" || buyerPhone == "" {
		return nil, fmt.Errorf("%w: buyer name and phone are required", ErrInvalidOrder)
	}
	if recipientName == "" || recipientPhone == "" || strings.TrimSpace(in.Postcode) == "" || strings.TrimSpace(in.Address) == "" {
		return nil, fmt.Errorf("%w: shipping destination is required", ErrInvalidOrder)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrInvalidOrder)
	}
	amount, err := itemsTotal(in.Items)
	if err != nil {
		return nil, err
	}

	d := &model.GuestOrderDraft{
		ID:             "gst_" + uuid.NewString(),
		Email:          in.Email,
		BuyerName:      buyerName,
		BuyerPhone:     buyerPhone,
		RecipientName:  recipientName,
		RecipientPhone: recipientPhone,
		Postcode:       strings.TrimSpace(in.Postcode),
		Address:        strings.TrimSpace(in.Address),
		Address2:       in.Address2,
		Memo:           in.Memo,
		Items:          model.OrderItems(in.Items),
		Amount:         amount,
		Currency:       currency,
		Status:         "draft",
	}
	if err := s.guests.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// GetGuestDraft reloads a draft so the payment page can render what the
// guest is about to pay for.
func (s *orderService) GetGuestDraft(ctx context.Context, id string) (*model.GuestOrderDraft, error) {
	d, err := s.guests.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

// NormalizeOrderKey prepares an incoming path key for lookup: URL
// escapes undone, whitespace trimmed, and order-number shaped keys
// upper-cased. Anything else is used verbatim as an internal id.
func NormalizeOrderKey(raw string) string {
	key := raw
	if unescaped, err := url.QueryUnescape(raw); err == nil {
		key = unescaped
	}
	key = strings.TrimSpace(key)
	if orderno.KeyPattern.MatchString(key) {
		return strings.ToUpper(key)
	}
	return key
}

func (s *orderService) GetByIdentifier(ctx context.Context, key string) (*model.Order, error) {
	o, err := s.orders.FindByIdentifier(ctx, NormalizeOrderKey(key))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *orderService) AdminUpdate(ctx context.Context, key string, p OrderPatch) (*model.Order, error) {
	o, err := s.GetByIdentifier(ctx, key)
	if err != nil {
		return nil, err
	}
	fields, err := validatePatch(o, p)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return o, nil
	}
	updated, err := s.orders.Update(ctx, o.ID, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *orderService) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	return s.orders.ListRecent(ctx, limit)
}

func (s *orderService) ListByBuyerEmail(ctx context.Context, email string) ([]model.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidOrder)
	}
	return s.orders.ListByBuyerEmail(ctx, email)
}

// Lookup authorizes an unauthenticated status check with the order
// number plus the last four digits of the checkout phone number. The
// caller strips buyer_phone before responding.
func (s *orderService) Lookup(ctx context.Context, orderNoIn, phoneLast4 string) (*model.Order, error) {
	no := strings.TrimSpace(orderNoIn)
	last4 := digitsOnly(phoneLast4)
	if len(last4) > 4 {
		last4 = last4[len(last4)-4:]
	}
	if no == "" || len(last4) != 4 {
		return nil, ErrInvalidLookup
	}
	if orderno.KeyPattern.MatchString(no) {
		no = strings.ToUpper(no)
	}

	o, err := s.orders.FindByOrderNo(ctx, no)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	stored := digitsOnly(o.BuyerPhone)
	if len(stored) < 4 || stored[len(stored)-4:] != last4 {
		return nil, ErrPhoneMismatch
	}
	return o, nil
}
