package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/repository"
	"gorm.io/gorm"
)

type CreateAddressInput struct {
	Label         string
	RecipientName string
	Phone         string
	Postcode      string
	Address       string
	Address2      *string
	IsDefault     bool
}

type AddressService interface {
	List(ctx context.Context, uid string) ([]model.Address, error)
	Create(ctx context.Context, uid string, in CreateAddressInput) (*model.Address, error)
	Delete(ctx context.Context, uid, id string) error
}

type addressService struct {
	repo repository.AddressRepository
}

func NewAddressService(repo repository.AddressRepository) AddressService {
	return &addressService{repo: repo}
}

func (s *addressService) List(ctx context.Context, uid string) ([]model.Address, error) {
	return s.repo.ListByUser(ctx, uid)
}

func (s *addressService) Create(ctx context.Context, uid string, in CreateAddressInput) (*model.Address, error) {
	recipient := strings.TrimSpace(in.RecipientName)
	phone := digitsOnly(in.Phone)
	postcode := strings.TrimSpace(in.Postcode)
	addr := strings.TrimSpace(in.Address)
	if recipient == "" || phone == "" || postcode == "" || addr == "" {
		return nil, fmt.Errorf("%w: recipient, phone, postcode and address are required", ErrInvalidOrder)
	}

	existing, err := s.repo.ListByUser(ctx, uid)
	if err != nil {
		return nil, err
	}

	a := &model.Address{
		ID:            uuid.NewString(),
		UserUID:       uid,
		Label:         strings.TrimSpace(in.Label),
		RecipientName: recipient,
		Phone:         phone,
		Postcode:      postcode,
		Address:       addr,
		Address2:      in.Address2,
		// The first saved address always becomes the default.
		IsDefault: in.IsDefault || len(existing) == 0,
	}
	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *addressService) Delete(ctx context.Context, uid, id string) error {
	err := s.repo.Delete(ctx, uid, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
