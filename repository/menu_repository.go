package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/pkg/apperr"
)

// MenuRepository provides the read-only lookups order placement needs: menu
// items (with their station) and variety prices.
type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) GetMenuItem(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) GetVariety(id uint) (*entity.Variety, error) {
	var v entity.Variety
	err := r.DB.First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *MenuRepository) GetTableByQRToken(token string) (*entity.Table, error) {
	var t entity.Table
	err := r.DB.Where("qr_token = ?", token).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
