package services

import (
	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/pkg/apperr"
)

// Authorization scoping. Every mutation path (single item, bulk, whole
// order) consults these same decisions; nothing else in the codebase checks
// roles against order data.

// CanManageItem decides whether a staff member may transition one item.
// Managers and admins may touch everything; operators only items prepared at
// one of their assigned service points.
func CanManageItem(staff *entity.Staff, item *entity.OrderItem) bool {
	switch staff.Role {
	case entity.RoleManager, entity.RoleAdmin:
		return true
	case entity.RoleOperator:
		if item.ServicePointID == nil {
			return false
		}
		return staff.AssignedTo(*item.ServicePointID)
	default:
		return false
	}
}

// CanSetOrderStatus gates order-level status changes. Hard rule, not a
// narrowing: operators never set whole-order status.
func CanSetOrderStatus(staff *entity.Staff) bool {
	return staff.Role == entity.RoleManager || staff.Role == entity.RoleAdmin
}

// NarrowItems reduces a requested item set to the subset the staff member may
// act on. An empty requestedIDs slice means "all items". Narrowing to nothing
// is an error, not a silent zero-effect success.
func NarrowItems(staff *entity.Staff, order *entity.Order, requestedIDs []uint) ([]*entity.OrderItem, error) {
	requested := make(map[uint]bool, len(requestedIDs))
	for _, id := range requestedIDs {
		requested[id] = true
	}

	var out []*entity.OrderItem
	for i := range order.Items {
		item := &order.Items[i]
		if len(requestedIDs) > 0 && !requested[item.ID] {
			continue
		}
		if CanManageItem(staff, item) {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil, apperr.ErrNoManageableItems
	}
	return out, nil
}
