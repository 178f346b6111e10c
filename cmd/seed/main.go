// Seeds a handful of demo orders across the fulfillment lifecycle so
// the admin console has something to show on a fresh database.
package main

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/hyelabel/shop-backend/internal/config"
	"github.com/hyelabel/shop-backend/internal/db"
	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/orderno"
	"github.com/hyelabel/shop-backend/internal/repository"
	"github.com/joho/godotenv"
)

func strPtr(s string) *string { return &s }

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	conn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	if err := conn.AutoMigrate(&model.Order{}, &model.GuestOrderDraft{}, &model.Address{}); err != nil {
		log.Fatalf("auto migrate error: %v", err)
	}

	repo := repository.NewOrderRepository(conn)
	gen := orderno.New()
	ctx := context.Background()

	seeds := []model.Order{
		{
			BuyerName:         "김하늘",
			BuyerPhone:        "01012345678",
			BuyerEmail:        strPtr("haneul@example.com"),
			ShippingZip:       "04524",
			ShippingAddr1:     "서울 중구 세종대로 110",
			Items:             model.OrderItems{{ProductID: "p1", Name: "Oversized Shirt", Price: 89000, Qty: 1}},
			Amount:            89000,
			Currency:          "KRW",
			PaymentStatus:     model.PaymentCreated,
			FulfillmentStatus: model.FulfillmentNew,
		},
		{
			BuyerName:         "이서준",
			BuyerPhone:        "01098765432",
			ShippingZip:       "48058",
			ShippingAddr1:     "부산 해운대구 우동 1408",
			ShippingAddr2:     strPtr("1203호"),
			Items:             model.OrderItems{{ProductID: "p2", Name: "Wide Denim", Price: 129000, Qty: 2}},
			Amount:            258000,
			Currency:          "KRW",
			PaymentStatus:     model.PaymentPaid,
			FulfillmentStatus: model.FulfillmentPacking,
			ShippingCarrier:   strPtr("CJ대한통운"),
			TrackingNumber:    strPtr("638512345678"),
		},
		{
			BuyerName:         "박지민",
			BuyerPhone:        "01055557777",
			ShippingZip:       "34126",
			ShippingAddr1:     "대전 유성구 대학로 99",
			Items:             model.OrderItems{{ProductID: "p3", Name: "Knit Cardigan", Price: 99000, Qty: 1}},
			Amount:            99000,
			Currency:          "KRW",
			PaymentStatus:     model.PaymentPaid,
			FulfillmentStatus: model.FulfillmentShipped,
			ShippingCarrier:   strPtr("우체국택배"),
			TrackingNumber:    strPtr("188877665544"),
		},
	}

	for i := range seeds {
		o := &seeds[i]
		o.ID = "ord_" + uuid.NewString()
		o.OrderNo = gen.Next()
		if err := repo.Create(ctx, o); err != nil {
			log.Printf("seed order %d failed: %v", i, err)
			continue
		}
		log.Printf("seeded order %s (%s)", o.OrderNo, o.FulfillmentStatus)
	}
}
