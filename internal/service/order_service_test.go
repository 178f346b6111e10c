package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/orderno"
	"github.com/hyelabel/shop-backend/internal/repository"
	"gorm.io/gorm"
)

// fakeOrderRepo is an in-memory stand-in for the MySQL-backed
// repository, honoring the same error contract.
type fakeOrderRepo struct {
	orders    map[string]*model.Order
	dupesLeft int
	createErr error
	creates   int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*model.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *model.Order) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	if f.dupesLeft > 0 {
		f.dupesLeft--
		return repository.ErrDuplicateOrderNo
	}
	for _, ex := range f.orders {
		if ex.OrderNo == o.OrderNo {
			return repository.ErrDuplicateOrderNo
		}
	}
	cp := *o
	now := time.Now()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	f.orders[cp.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id string) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) FindByOrderNo(_ context.Context, no string) (*model.Order, error) {
	for _, o := range f.orders {
		if o.OrderNo == no {
			cp := *o
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) FindByIdentifier(ctx context.Context, key string) (*model.Order, error) {
	o, err := f.FindByID(ctx, key)
	if err == nil {
		return o, nil
	}
	if !orderno.KeyPattern.MatchString(key) {
		return nil, gorm.ErrRecordNotFound
	}
	return f.FindByOrderNo(ctx, key)
}

func strField(v interface{}) *string {
	if p, ok := v.(*string); ok {
		return p
	}
	return nil
}

func (f *fakeOrderRepo) Update(_ context.Context, id string, fields map[string]interface{}) (*model.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for k, v := range fields {
		switch k {
		case "payment_status":
			o.PaymentStatus = v.(model.PaymentStatus)
		case "fulfillment_status":
			o.FulfillmentStatus = v.(model.FulfillmentStatus)
		case "shipping_carrier":
			o.ShippingCarrier = strField(v)
		case "tracking_number":
			o.TrackingNumber = strField(v)
		}
	}
	o.UpdatedAt = time.Now()
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) ListRecent(_ context.Context, limit int) ([]model.Order, error) {
	list := make([]model.Order, 0, len(f.orders))
	for _, o := range f.orders {
		list = append(list, *o)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	if len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (f *fakeOrderRepo) ListByBuyerEmail(_ context.Context, email string) ([]model.Order, error) {
	var list []model.Order
	for _, o := range f.orders {
		if o.BuyerEmail != nil && *o.BuyerEmail == email {
			list = append(list, *o)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

type fakeGuestRepo struct {
	drafts map[string]*model.GuestOrderDraft
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{drafts: map[string]*model.GuestOrderDraft{}}
}

func (f *fakeGuestRepo) Create(_ context.Context, d *model.GuestOrderDraft) error {
	cp := *d
	f.drafts[cp.ID] = &cp
	return nil
}

func (f *fakeGuestRepo) FindByID(_ context.Context, id string) (*model.GuestOrderDraft, error) {
	d, ok := f.drafts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func testClock() time.Time {
	return time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)
}

// sequentialGen yields suffixes 1000, 1001, 1002, ... so each retry
// produces a distinct, predictable candidate.
func sequentialGen() *orderno.Generator {
	n := 0
	return orderno.NewWithSource(testClock, func(int) int {
		v := n
		n++
		return v
	})
}

func newTestService(repo *fakeOrderRepo) OrderService {
	return NewOrderService(repo, newFakeGuestRepo(), sequentialGen())
}

func strPtr(s string) *string { return &s }

func validInput() CreateOrderInput {
	return CreateOrderInput{
		BuyerName:     "김하늘",
		BuyerPhone:    "010-1234-5678",
		ShippingZip:   "04524",
		ShippingAddr1: "서울 중구 세종대로 110",
		Items:         []model.OrderItem{{ProductID: "p1", Name: "Shirt", Price: 89000, Qty: 2}},
	}
}

func TestCreateOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo)

	o, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Amount != 178000 {
		t.Fatalf("amount=%d want=178000", o.Amount)
	}
	if o.PaymentStatus != model.PaymentCreated {
		t.Fatalf("payment=%s want=CREATED", o.PaymentStatus)
	}
	if o.FulfillmentStatus != model.FulfillmentNew {
		t.Fatalf("fulfillment=%s want=NEW", o.FulfillmentStatus)
	}
	if o.OrderNo != "HL2602191000" {
		t.Fatalf("orderNo=%s want=HL2602191000", o.OrderNo)
	}
	if o.BuyerPhone != "01012345678" {
		t.Fatalf("phone=%s want digits only", o.BuyerPhone)
	}
	if o.Currency != "KRW" {
		t.Fatalf("currency=%s want=KRW", o.Currency)
	}
	if len(o.ID) == 0 || o.ID[:4] != "ord_" {
		t.Fatalf("id=%s want ord_ prefix", o.ID)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"empty cart", func(in *CreateOrderInput) { in.Items = nil }},
		{"no buyer name", func(in *CreateOrderInput) { in.BuyerName = "  " }},
		{"no phone digits", func(in *CreateOrderInput) { in.BuyerPhone = "abc-def" }},
		{"no zip", func(in *CreateOrderInput) { in.ShippingZip = "" }},
		{"no addr1", func(in *CreateOrderInput) { in.ShippingAddr1 = "" }},
		{"zero qty", func(in *CreateOrderInput) { in.Items[0].Qty = 0 }},
		{"negative price", func(in *CreateOrderInput) { in.Items[0].Price = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			svc := newTestService(repo)
			in := validInput()
			tt.mutate(&in)
			if _, err := svc.Create(context.Background(), in); !errors.Is(err, ErrInvalidOrder) {
				t.Fatalf("err=%v want ErrInvalidOrder", err)
			}
			if repo.creates != 0 {
				t.Fatalf("store touched on invalid input")
			}
		})
	}
}

func TestCreateOrderCollisionRetry(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.dupesLeft = 3
	svc := newTestService(repo)

	o, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// suffixes 1000..1002 collide; the 4th candidate lands.
	if o.OrderNo != "HL2602191003" {
		t.Fatalf("orderNo=%s want=HL2602191003", o.OrderNo)
	}
	if repo.creates != 4 {
		t.Fatalf("creates=%d want=4", repo.creates)
	}
}

func TestCreateOrderNumberExhausted(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.dupesLeft = 5
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validInput())
	if !errors.Is(err, ErrOrderNoExhausted) {
		t.Fatalf("err=%v want ErrOrderNoExhausted", err)
	}
	if repo.creates != 5 {
		t.Fatalf("creates=%d want=5", repo.creates)
	}
}

func TestCreateOrderStorageFailure(t *testing.T) {
	repo := newFakeOrderRepo()
	boom := errors.New("connection reset")
	repo.createErr = boom
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), validInput())
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v want wrapped storage error", err)
	}
	if errors.Is(err, ErrOrderNoExhausted) {
		t.Fatalf("storage failure must not masquerade as exhaustion")
	}
	if repo.creates != 1 {
		t.Fatalf("creates=%d want=1, no retry on storage failure", repo.creates)
	}
}

func TestOrderNosPairwiseDistinct(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		o, err := svc.Create(context.Background(), validInput())
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[o.OrderNo] {
			t.Fatalf("duplicate order number %s", o.OrderNo)
		}
		seen[o.OrderNo] = true
	}
}

func seedOrder(repo *fakeOrderRepo, mutate func(*model.Order)) *model.Order {
	o := &model.Order{
		ID:                "ord_seed",
		OrderNo:           "HL2602191000",
		BuyerName:         "김하늘",
		BuyerPhone:        "01012345678",
		ShippingZip:       "04524",
		ShippingAddr1:     "서울 중구 세종대로 110",
		Items:             model.OrderItems{{ProductID: "p1", Name: "Shirt", Price: 89000, Qty: 1}},
		Amount:            89000,
		Currency:          "KRW",
		PaymentStatus:     model.PaymentCreated,
		FulfillmentStatus: model.FulfillmentNew,
		CreatedAt:         testClock(),
		UpdatedAt:         testClock(),
	}
	if mutate != nil {
		mutate(o)
	}
	repo.orders[o.ID] = o
	return o
}

func optStr(s string) OptionalString {
	return OptionalString{Present: true, Value: &s}
}

func optNull() OptionalString {
	return OptionalString{Present: true}
}

func TestAdminUpdateSaveTracking(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, func(o *model.Order) { o.PaymentStatus = model.PaymentPaid })
	svc := newTestService(repo)

	fs := string(model.FulfillmentPacking)
	got, err := svc.AdminUpdate(context.Background(), "ord_seed", OrderPatch{
		FulfillmentStatus: &fs,
		TrackingNumber:    optStr("1234567890"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FulfillmentStatus != model.FulfillmentPacking {
		t.Fatalf("fulfillment=%s want=PACKING", got.FulfillmentStatus)
	}
	if got.TrackingNumber == nil || *got.TrackingNumber != "1234567890" {
		t.Fatalf("tracking=%v want=1234567890", got.TrackingNumber)
	}
}

func TestAdminUpdateShipmentGating(t *testing.T) {
	// Shipping an unpaid order must be rejected with nothing applied,
	// even when the same request tries to flip payment elsewhere.
	tests := []struct {
		name        string
		payment     model.PaymentStatus
		fulfillment model.FulfillmentStatus
		patchPS     *string
		wantErr     error
	}{
		{"created order", model.PaymentCreated, model.FulfillmentPacking, nil, ErrShipmentRequiresPaid},
		{"virtual account", model.PaymentVirtualAccountIssued, model.FulfillmentPacking, nil, ErrShipmentRequiresPaid},
		{"cancelled in same request", model.PaymentPaid, model.FulfillmentPacking, strPtr(string(model.PaymentCancelled)), ErrShipmentRequiresPaid},
		// A fresh order can't ship for two reasons at once; the payment
		// gate is the one that gets reported.
		{"fresh unpaid order", model.PaymentCreated, model.FulfillmentNew, nil, ErrShipmentRequiresPaid},
		{"paid in same request", model.PaymentCreated, model.FulfillmentPacking, strPtr(string(model.PaymentPaid)), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			before := seedOrder(repo, func(o *model.Order) {
				o.PaymentStatus = tt.payment
				o.FulfillmentStatus = tt.fulfillment
				o.TrackingNumber = strPtr("1234567890")
			})
			beforeCopy := *before
			svc := newTestService(repo)

			fs := string(model.FulfillmentShipped)
			got, err := svc.AdminUpdate(context.Background(), "ord_seed", OrderPatch{
				PaymentStatus:     tt.patchPS,
				FulfillmentStatus: &fs,
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err=%v want=%v", err, tt.wantErr)
				}
				stored := repo.orders["ord_seed"]
				if stored.PaymentStatus != beforeCopy.PaymentStatus ||
					stored.FulfillmentStatus != beforeCopy.FulfillmentStatus ||
					!stored.UpdatedAt.Equal(beforeCopy.UpdatedAt) {
					t.Fatalf("rejected patch mutated the order")
				}
				return
			}
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if got.FulfillmentStatus != model.FulfillmentShipped || got.PaymentStatus != model.PaymentPaid {
				t.Fatalf("got %s/%s want SHIPPED/PAID", got.FulfillmentStatus, got.PaymentStatus)
			}
		})
	}
}

func TestAdminUpdateTrackingRequiredForShipment(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, func(o *model.Order) {
		o.PaymentStatus = model.PaymentPaid
		o.FulfillmentStatus = model.FulfillmentPacking
	})
	svc := newTestService(repo)

	fs := string(model.FulfillmentShipped)
	_, err := svc.AdminUpdate(context.Background(), "ord_seed", OrderPatch{FulfillmentStatus: &fs})
	if !errors.Is(err, ErrTrackingRequired) {
		t.Fatalf("err=%v want ErrTrackingRequired", err)
	}

	// Supplying the tracking number in the same request is enough.
	got, err := svc.AdminUpdate(context.Background(), "ord_seed", OrderPatch{
		FulfillmentStatus: &fs,
		TrackingNumber:    optStr("638512345678"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.FulfillmentStatus != model.FulfillmentShipped {
		t.Fatalf("fulfillment=%s want=SHIPPED", got.FulfillmentStatus)
	}
}

func TestAdminUpdateInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		patch   OrderPatch
		seed    func(*model.Order)
		wantErr error
	}{
		{"bad payment enum", OrderPatch{PaymentStatus: strPtr("PENDING")}, nil, ErrInvalidPaymentStatus},
		{"bad fulfillment enum", OrderPatch{FulfillmentStatus: strPtr("DELIVERED")}, nil, ErrInvalidFulfillmentStatus},
		{
			"skip packing",
			OrderPatch{FulfillmentStatus: strPtr(string(model.FulfillmentShipped)), TrackingNumber: optStr("x1")},
			func(o *model.Order) { o.PaymentStatus = model.PaymentPaid },
			ErrInvalidTransition,
		},
		{
			"leave refunded",
			OrderPatch{FulfillmentStatus: strPtr(string(model.FulfillmentPacking))},
			func(o *model.Order) { o.FulfillmentStatus = model.FulfillmentRefunded },
			ErrInvalidTransition,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			seedOrder(repo, tt.seed)
			svc := newTestService(repo)
			if _, err := svc.AdminUpdate(context.Background(), "ord_seed", tt.patch); !errors.Is(err, tt.wantErr) {
				t.Fatalf("err=%v want=%v", err, tt.wantErr)
			}
		})
	}
}

func TestAdminUpdateCancelShipment(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, func(o *model.Order) {
		o.PaymentStatus = model.PaymentPaid
		o.FulfillmentStatus = model.FulfillmentShipped
		o.ShippingCarrier = strPtr("CJ대한통운")
		o.TrackingNumber = strPtr("638512345678")
	})
	svc := newTestService(repo)

	fs := string(model.FulfillmentPacking)
	got, err := svc.AdminUpdate(context.Background(), "ord_seed", OrderPatch{
		FulfillmentStatus: &fs,
		ShippingCarrier:   optNull(),
		TrackingNumber:    optNull(),
	})
	if err != nil {
		t.Fatalf("cancel shipment: %v", err)
	}
	if got.FulfillmentStatus != model.FulfillmentPacking {
		t.Fatalf("fulfillment=%s want=PACKING", got.FulfillmentStatus)
	}
	if got.ShippingCarrier != nil || got.TrackingNumber != nil {
		t.Fatalf("carrier/tracking not cleared: %v %v", got.ShippingCarrier, got.TrackingNumber)
	}

	// Re-shipping without re-saving a tracking number is now refused
	// server-side, not just by console convention.
	shipped := string(model.FulfillmentShipped)
	if _, err := svc.AdminUpdate(context.Background(), "ord_seed", OrderPatch{FulfillmentStatus: &shipped}); !errors.Is(err, ErrTrackingRequired) {
		t.Fatalf("err=%v want ErrTrackingRequired", err)
	}
}

func TestAdminUpdateIdempotent(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, func(o *model.Order) { o.PaymentStatus = model.PaymentPaid })
	svc := newTestService(repo)

	fs := string(model.FulfillmentPacking)
	patch := OrderPatch{FulfillmentStatus: &fs, TrackingNumber: optStr("1234567890"), ShippingCarrier: optStr("CJ대한통운")}

	first, err := svc.AdminUpdate(context.Background(), "ord_seed", patch)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.AdminUpdate(context.Background(), "ord_seed", patch)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.FulfillmentStatus != second.FulfillmentStatus ||
		first.PaymentStatus != second.PaymentStatus ||
		*first.TrackingNumber != *second.TrackingNumber ||
		*first.ShippingCarrier != *second.ShippingCarrier {
		t.Fatalf("repeated patch changed the stored state")
	}
}

func TestAdminUpdateEmptyStringClears(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, func(o *model.Order) {
		o.ShippingCarrier = strPtr("CJ대한통운")
		o.TrackingNumber = strPtr("638512345678")
		o.FulfillmentStatus = model.FulfillmentPacking
	})
	svc := newTestService(repo)

	got, err := svc.AdminUpdate(context.Background(), "ord_seed", OrderPatch{
		ShippingCarrier: optStr(""),
		TrackingNumber:  optStr("  "),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.ShippingCarrier != nil || got.TrackingNumber != nil {
		t.Fatalf("empty strings should clear to null, got %v %v", got.ShippingCarrier, got.TrackingNumber)
	}
}

func TestAdminUpdateNotFound(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := newTestService(repo)
	fs := string(model.FulfillmentPacking)
	if _, err := svc.AdminUpdate(context.Background(), "ord_missing", OrderPatch{FulfillmentStatus: &fs}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestGetByIdentifier(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, nil)
	svc := newTestService(repo)

	tests := []struct {
		name string
		key  string
		ok   bool
	}{
		{"internal id", "ord_seed", true},
		{"order number", "HL2602191000", true},
		{"lowercase order number", "hl2602191000", true},
		{"padded order number", "  HL2602191000  ", true},
		{"url-encoded padding", "HL2602191000%20", true},
		{"unknown id", "ord_nope", false},
		{"unknown order number", "HL2602199999", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := svc.GetByIdentifier(context.Background(), tt.key)
			if tt.ok {
				if err != nil {
					t.Fatalf("err=%v", err)
				}
				if o.ID != "ord_seed" {
					t.Fatalf("resolved wrong order %s", o.ID)
				}
				return
			}
			if !errors.Is(err, ErrNotFound) {
				t.Fatalf("err=%v want ErrNotFound", err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	repo := newFakeOrderRepo()
	seedOrder(repo, nil) // HL2602191000, phone 01012345678
	svc := newTestService(repo)

	tests := []struct {
		name    string
		orderNo string
		last4   string
		wantErr error
	}{
		{"match", "HL2602191000", "5678", nil},
		{"lowercase order number", "hl2602191000", "5678", nil},
		{"padded input", " HL2602191000 ", "5678", nil},
		{"formatted digits", "HL2602191000", "56-78", nil},
		{"full phone keeps last four", "HL2602191000", "010-1234-5678", nil},
		{"wrong digits", "HL2602191000", "9999", ErrPhoneMismatch},
		{"unknown order number", "HL2602199999", "5678", ErrNotFound},
		{"missing order number", "", "5678", ErrInvalidLookup},
		{"too few digits", "HL2602191000", "78", ErrInvalidLookup},
		{"no digits at all", "HL2602191000", "abcd", ErrInvalidLookup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := svc.Lookup(context.Background(), tt.orderNo, tt.last4)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("lookup: %v", err)
			}
			if o.OrderNo != "HL2602191000" {
				t.Fatalf("resolved wrong order %s", o.OrderNo)
			}
		})
	}
}

func TestCreateGuestDraft(t *testing.T) {
	guests := newFakeGuestRepo()
	svc := NewOrderService(newFakeOrderRepo(), guests, sequentialGen())

	d, err := svc.CreateGuestDraft(context.Background(), GuestDraftInput{
		BuyerName:      "김하늘",
		BuyerPhone:     "010-1234-5678",
		RecipientName:  "김하늘",
		RecipientPhone: "01012345678",
		Postcode:       "04524",
		Address:        "서울 중구 세종대로 110",
		Items:          []model.OrderItem{{ProductID: "p1", Name: "Shirt", Price: 89000, Qty: 2}},
	})
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if d.ID[:4] != "gst_" {
		t.Fatalf("id=%s want gst_ prefix", d.ID)
	}
	if d.Amount != 178000 || d.Status != "draft" || d.BuyerPhone != "01012345678" {
		t.Fatalf("draft fields off: %+v", d)
	}
	if _, ok := guests.drafts[d.ID]; !ok {
		t.Fatalf("draft not persisted")
	}

	if _, err := svc.CreateGuestDraft(context.Background(), GuestDraftInput{BuyerName: "김하늘"}); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("err=%v want ErrInvalidOrder", err)
	}

	reloaded, err := svc.GetGuestDraft(context.Background(), " "+d.ID+" ")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ID != d.ID || reloaded.Amount != d.Amount {
		t.Fatalf("reloaded=%+v", reloaded)
	}
	if _, err := svc.GetGuestDraft(context.Background(), "gst_missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v want ErrNotFound", err)
	}
}

func TestNormalizeOrderKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hl2602194821", "HL2602194821"},
		{" HL2602194821 ", "HL2602194821"},
		{"HL2602194821%20", "HL2602194821"},
		{"ord_6b5a0f2e", "ord_6b5a0f2e"},
		{"ord_6B5A0F2E", "ord_6B5A0F2E"},
	}
	for _, tt := range tests {
		if got := NormalizeOrderKey(tt.in); got != tt.want {
			t.Fatalf("NormalizeOrderKey(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}
