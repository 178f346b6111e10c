package repository

import (
	"context"

	"github.com/hyelabel/shop-backend/internal/model"
	"gorm.io/gorm"
)

type GuestOrderRepository interface {
	Create(ctx context.Context, d *model.GuestOrderDraft) error
	FindByID(ctx context.Context, id string) (*model.GuestOrderDraft, error)
}

type guestOrderRepository struct {
	db *gorm.DB
}

func NewGuestOrderRepository(db *gorm.DB) GuestOrderRepository {
	return &guestOrderRepository{db: db}
}

func (r *guestOrderRepository) Create(ctx context.Context, d *model.GuestOrderDraft) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *guestOrderRepository) FindByID(ctx context.Context, id string) (*model.GuestOrderDraft, error) {
	var d model.GuestOrderDraft
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}
