package entity

import (
	"gorm.io/gorm"
)

type StaffRole string

const (
	RoleOperator StaffRole = "OPERATOR"
	RoleManager  StaffRole = "MANAGER"
	RoleAdmin    StaffRole = "ADMIN"
)

type Staff struct {
	gorm.Model
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `json:"-"`
	Name     string    `json:"name"`
	Role     StaffRole `gorm:"not null;default:'OPERATOR'" json:"role"`

	RestaurantID uint `json:"restaurantId"`

	// only meaningful for OPERATOR; managers and admins see everything
	ServicePoints []ServicePoint `gorm:"many2many:staff_service_points" json:"servicePoints"`
}

// AssignedTo reports whether the staff member is assigned to the given
// service point.
func (s *Staff) AssignedTo(servicePointID uint) bool {
	for _, sp := range s.ServicePoints {
		if sp.ID == servicePointID {
			return true
		}
	}
	return false
}
