package repository

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/hyelabel/shop-backend/internal/model"
	"github.com/hyelabel/shop-backend/internal/orderno"
	"gorm.io/gorm"
)

// ErrDuplicateOrderNo reports a unique-constraint hit on order_no. The
// creation path regenerates the number and retries on this error only.
var ErrDuplicateOrderNo = errors.New("duplicate order number")

type OrderRepository interface {
	Create(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByOrderNo(ctx context.Context, no string) (*model.Order, error)
	FindByIdentifier(ctx context.Context, key string) (*model.Order, error)
	Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	ListByBuyerEmail(ctx context.Context, email string) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	if err := r.db.WithContext(ctx).Create(o).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateOrderNo
		}
		return err
	}
	return nil
}

// isDuplicateKey covers both gorm's translated sentinel and the raw
// MySQL 1062, since TranslateError does not reach errors wrapped by
// custom dialector paths.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}

func (r *orderRepository) FindByID(ctx context.Context, id string) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) FindByOrderNo(ctx context.Context, no string) (*model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("order_no = ?", no).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// FindByIdentifier accepts either an internal id or an order-number
// shaped key. Internal id wins; the order_no index is only consulted
// when the id lookup misses and the key looks like an order number.
func (r *orderRepository) FindByIdentifier(ctx context.Context, key string) (*model.Order, error) {
	o, err := r.FindByID(ctx, key)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if !orderno.KeyPattern.MatchString(key) {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByOrderNo(ctx, key)
}

// Update applies only the given fields and returns the refreshed row.
// gorm stamps updated_at on the partial update.
func (r *orderRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*model.Order, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return r.FindByID(ctx, id)
}

func (r *orderRepository) ListRecent(ctx context.Context, limit int) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *orderRepository) ListByBuyerEmail(ctx context.Context, email string) ([]model.Order, error) {
	var list []model.Order
	if err := r.db.WithContext(ctx).
		Where("buyer_email = ?", email).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
