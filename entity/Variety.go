package entity

import (
	"gorm.io/gorm"
)

// Variety is a priced option of a menu item (small/large, single/double);
// its price replaces the base menu item price when selected.
type Variety struct {
	gorm.Model
	Name  string `json:"name"`
	Price int64  `json:"price"`

	MenuItemID uint `json:"menuItemId"`
}
