package entity

import (
	"gorm.io/gorm"
)

type Table struct {
	gorm.Model
	Number string `json:"number"`
	// token embedded in the printed QR code; guests order through it
	QRToken string `gorm:"uniqueIndex;not null" json:"qrToken"`

	RestaurantID uint `json:"restaurantId"`
}
