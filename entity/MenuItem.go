package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name  string `json:"name"`
	Price int64  `json:"price"`

	RestaurantID uint `json:"restaurantId"`

	ServicePointID *uint         `json:"servicePointId"`
	ServicePoint   *ServicePoint `json:"-"`

	Varieties []Variety `json:"varieties"`
}
