package entity

import (
	"gorm.io/gorm"
)

// ServicePoint is a kitchen or bar station that prepares a subset of the
// menu (e.g. Grill, Bar, Pastry).
type ServicePoint struct {
	gorm.Model
	Name string `json:"name"`

	RestaurantID uint `json:"restaurantId"`
}
