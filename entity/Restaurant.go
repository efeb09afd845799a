package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name    string `json:"name"`
	Address string `json:"address"`

	OwnerID uint   `json:"ownerId"` // staff.id of the ADMIN who owns the restaurant
	Owner   *Staff `gorm:"foreignKey:OwnerID" json:"-"`

	Tables        []Table        `json:"-"`
	ServicePoints []ServicePoint `json:"-"`
	MenuItems     []MenuItem     `json:"-"`
	Orders        []Order        `json:"-"`
}
