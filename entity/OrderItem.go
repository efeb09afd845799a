package entity

import (
	"time"

	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/pkg/apperr"
)

type OrderItem struct {
	gorm.Model
	Quantity int `json:"quantity"`
	// snapshot at creation, from the variety price when one was picked,
	// otherwise the menu item base price; never updated afterwards
	UnitPrice int64  `json:"unitPrice"`
	Status    Status `gorm:"not null;default:'PENDING'" json:"status"`

	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"menuItem"`

	VarietyID *uint    `json:"varietyId"`
	Variety   *Variety `json:"-"`

	ServicePointID *uint         `json:"servicePointId"`
	ServicePoint   *ServicePoint `json:"-"`

	ConfirmedAt *time.Time `json:"confirmedAt"`
	PreparingAt *time.Time `json:"preparingAt"`
	ReadyAt     *time.Time `json:"readyAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	CancelledAt *time.Time `json:"cancelledAt"`
}

// Transition moves the item to newStatus under the same rules as the order:
// status must strictly advance (CANCELLED excepted), terminal items are
// frozen, re-applying the current status is an idempotent success and never
// overwrites the original timestamp.
func (it *OrderItem) Transition(newStatus Status, now time.Time) error {
	if !CanTransition(it.Status, newStatus) {
		return apperr.ErrInvalidTransition
	}
	it.Status = newStatus
	stampOnce(it.timestampFor(newStatus), now)
	return nil
}

func (it *OrderItem) timestampFor(s Status) **time.Time {
	switch s {
	case StatusConfirmed:
		return &it.ConfirmedAt
	case StatusPreparing:
		return &it.PreparingAt
	case StatusReady:
		return &it.ReadyAt
	case StatusDelivered:
		return &it.DeliveredAt
	case StatusCancelled:
		return &it.CancelledAt
	}
	return nil
}
