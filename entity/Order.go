package entity

import (
	"time"

	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/pkg/apperr"
)

type Order struct {
	gorm.Model
	Status       Status  `gorm:"not null;default:'PENDING'" json:"status"`
	TotalAmount  int64   `json:"totalAmount"`
	SpecialNotes *string `json:"specialNotes"`

	RestaurantID uint       `json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	// nil table means a pickup order
	TableID *uint  `json:"tableId"`
	Table   *Table `json:"-"`

	// one timestamp per transition, first write wins
	ConfirmedAt *time.Time `json:"confirmedAt"`
	PreparingAt *time.Time `json:"preparingAt"`
	DeliveredAt *time.Time `json:"deliveredAt"`
	CancelledAt *time.Time `json:"cancelledAt"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// Transition moves the order to newStatus, stamping the matching timestamp
// exactly once. Re-applying the current status succeeds without touching
// anything. Invalid moves leave the order unchanged. Orders skip READY.
func (o *Order) Transition(newStatus Status, now time.Time) error {
	if newStatus == StatusReady {
		return apperr.ErrInvalidTransition
	}
	if !CanTransition(o.Status, newStatus) {
		return apperr.ErrInvalidTransition
	}
	// an order is only DELIVERED once every item has settled (delivered or
	// cancelled); bulk operations may still force the status past this
	if newStatus == StatusDelivered {
		for i := range o.Items {
			if !o.Items[i].Status.Terminal() {
				return apperr.ErrInvalidTransition
			}
		}
	}
	o.Status = newStatus
	stampOnce(o.timestampFor(newStatus), now)
	return nil
}

// ForceStatus sets the order-level status without lifecycle validation. Bulk
// item updates use it: a manager's bulk action always reflects intent on the
// order record even when some items were skipped. READY stays item-only.
func (o *Order) ForceStatus(newStatus Status, now time.Time) {
	if newStatus == StatusReady || !newStatus.Valid() {
		return
	}
	o.Status = newStatus
	stampOnce(o.timestampFor(newStatus), now)
}

func (o *Order) timestampFor(s Status) **time.Time {
	switch s {
	case StatusConfirmed:
		return &o.ConfirmedAt
	case StatusPreparing:
		return &o.PreparingAt
	case StatusDelivered:
		return &o.DeliveredAt
	case StatusCancelled:
		return &o.CancelledAt
	}
	return nil
}

// RecomputeTotal sets TotalAmount to the sum of unit price x quantity over
// all non-cancelled items. Runs after every item mutation.
func (o *Order) RecomputeTotal() {
	var total int64
	for _, it := range o.Items {
		if it.Status == StatusCancelled {
			continue
		}
		total += it.UnitPrice * int64(it.Quantity)
	}
	o.TotalAmount = total
}

// ItemByID returns a pointer into Items, or nil.
func (o *Order) ItemByID(itemID uint) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

func stampOnce(field **time.Time, now time.Time) {
	if field == nil || *field != nil {
		return
	}
	t := now
	*field = &t
}
