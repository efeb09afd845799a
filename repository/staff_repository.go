package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/pkg/apperr"
)

type StaffRepository struct {
	DB *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{DB: db}
}

func (r *StaffRepository) FindByEmail(email string) (*entity.Staff, error) {
	var s entity.Staff
	err := r.DB.Preload("ServicePoints").Where("email = ?", email).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByID always preloads service points; the authorization scoper needs
// them for OPERATOR decisions.
func (r *StaffRepository) FindByID(id uint) (*entity.Staff, error) {
	var s entity.Staff
	err := r.DB.Preload("ServicePoints").First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.Staff{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

func (r *StaffRepository) Create(s *entity.Staff) error {
	return r.DB.Create(s).Error
}
