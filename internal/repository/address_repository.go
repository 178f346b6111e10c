package repository

import (
	"context"
	"errors"

	"github.com/hyelabel/shop-backend/internal/model"
	"gorm.io/gorm"
)

type AddressRepository interface {
	ListByUser(ctx context.Context, uid string) ([]model.Address, error)
	// Save inserts a new address. When it is flagged default, the user's
	// previous default is cleared in the same transaction.
	Save(ctx context.Context, a *model.Address) error
	// Delete removes the user's address. If the default was removed, the
	// most recent remaining address is promoted, all in one transaction.
	Delete(ctx context.Context, uid, id string) error
	DeleteAllForUser(ctx context.Context, uid string) error
}

type addressRepository struct {
	db *gorm.DB
}

func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) ListByUser(ctx context.Context, uid string) ([]model.Address, error) {
	var list []model.Address
	if err := r.db.WithContext(ctx).
		Where("user_uid = ?", uid).
		Order("is_default DESC, created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *addressRepository) Save(ctx context.Context, a *model.Address) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if a.IsDefault {
			if err := tx.Model(&model.Address{}).
				Where("user_uid = ? AND is_default = ?", a.UserUID, true).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(a).Error
	})
}

func (r *addressRepository) Delete(ctx context.Context, uid, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target model.Address
		if err := tx.Where("id = ? AND user_uid = ?", id, uid).First(&target).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Address{}, "id = ?", target.ID).Error; err != nil {
			return err
		}
		if !target.IsDefault {
			return nil
		}
		var next model.Address
		err := tx.Where("user_uid = ?", uid).Order("created_at DESC").First(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return tx.Model(&model.Address{}).Where("id = ?", next.ID).Update("is_default", true).Error
	})
}

func (r *addressRepository) DeleteAllForUser(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Delete(&model.Address{}, "user_uid = ?", uid).Error
}
