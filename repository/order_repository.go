package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/pkg/apperr"
)

// OrderRepository talks to the orders and order_items tables only. The
// storage layer provides per-order read-modify-write protection through
// gorm transactions; callers wrap mutations in r.DB.Transaction.
type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

// GetWithItems loads the full order: items, their menu items and varieties.
func (r *OrderRepository) GetWithItems(db *gorm.DB, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := db.
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Items.ServicePoint").
		Preload("Table").
		First(&o, orderID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Save persists the order row and its items in one go.
func (r *OrderRepository) Save(tx *gorm.DB, o *entity.Order) error {
	if err := tx.Save(o).Error; err != nil {
		return err
	}
	for i := range o.Items {
		if err := tx.Save(&o.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the order and its items for good (no tombstone row;
// subscribers learn about it from the orderDeleted broadcast).
func (r *OrderRepository) Delete(tx *gorm.DB, orderID uint) error {
	if err := tx.Unscoped().Where("order_id = ?", orderID).Delete(&entity.OrderItem{}).Error; err != nil {
		return err
	}
	res := tx.Unscoped().Delete(&entity.Order{}, orderID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ListNew returns the restaurant's live-feed orders: freshly placed and
// just-confirmed ones.
func (r *OrderRepository) ListNew(restaurantID uint) ([]entity.Order, error) {
	var out []entity.Order
	err := r.DB.
		Preload("Items").
		Preload("Items.MenuItem").
		Preload("Table").
		Where("restaurant_id = ? AND status IN ?", restaurantID,
			[]entity.Status{entity.StatusPending, entity.StatusConfirmed}).
		Order("id DESC").
		Find(&out).Error
	return out, err
}
