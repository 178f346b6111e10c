package main

import (
	"context"
	"log"

	"github.com/hyelabel/shop-backend/internal/config"
	"github.com/hyelabel/shop-backend/internal/db"
	appmw "github.com/hyelabel/shop-backend/internal/middleware"
	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/server"
	"github.com/joho/godotenv"
	rd "github.com/redis/go-redis/v9"
)

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

	var rdb *rd.Client
	if cfg.RedisAddr != "" {
		rdb = rd.NewClient(&rd.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
	} else {
		log.Printf("REDIS_ADDR not set; lookup rate limiting disabled")
	}

	var authMw *appmw.AuthMiddleware
	if cfg.FirebaseProjectID != "" {
		authMw, err = appmw.NewAuthMiddleware(context.Background(), cfg.FirebaseProjectID)
		if err != nil {
			log.Fatalf("firebase auth init error: %v", err)
		}
	} else {
		log.Printf("FIREBASE_PROJECT_ID not set; member endpoints disabled")
	}

	srv := server.New(conn, rdb, authMw, cfg)

	addr := ":" + cfg.Port
	log.Printf("starting server on %s", addr)
	if err := srv.Start(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
