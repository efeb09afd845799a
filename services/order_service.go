package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/pkg/apperr"
	"github.com/trygraphite/platter-sub000/repository"
)

// OrderService orchestrates the order lifecycle: placement, status
// transitions (single item, bulk, whole order) and the total recompute that
// follows every item mutation. Storage-level race protection comes from gorm
// transactions; this layer only enforces business rules and scoping.
type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	MenuRepo *repository.MenuRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, menuRepo *repository.MenuRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo, MenuRepo: menuRepo}
}

// ----- DTOs from controllers -----

type OrderItemIn struct {
	MenuItemID uint  `json:"menuItemId" binding:"required"`
	VarietyID  *uint `json:"varietyId"`
	Quantity   int   `json:"quantity" binding:"required,min=1"`
}

type CreateOrderReq struct {
	RestaurantID uint          `json:"restaurantId"`
	QRToken      string        `json:"qrToken"` // empty means pickup order
	SpecialNotes *string       `json:"specialNotes"`
	Items        []OrderItemIn `json:"items" binding:"required,min=1"`
}

type UpdateOrderReq struct {
	Status       *entity.Status `json:"status"`
	TableID      *uint          `json:"tableId"`
	SpecialNotes *string        `json:"specialNotes"`
}

type ItemResult struct {
	ItemID uint   `json:"itemId"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

type BulkResult struct {
	UpdatedCount int           `json:"updatedCount"`
	Results      []ItemResult  `json:"results"`
	Order        *entity.Order `json:"order"`
}

// ----- Placement -----

// Create places a guest order. Unit prices are snapshotted here, from the
// selected variety when there is one, else the menu item's base price; menu
// price edits after this point never change historical totals. The item
// inherits its menu item's service point so stations can claim it.
func (s *OrderService) Create(req *CreateOrderReq) (*entity.Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("items is required")
	}

	restaurantID := req.RestaurantID
	var tableID *uint
	if req.QRToken != "" {
		table, err := s.MenuRepo.GetTableByQRToken(req.QRToken)
		if err != nil {
			return nil, err
		}
		tableID = &table.ID
		restaurantID = table.RestaurantID
	}
	if restaurantID == 0 {
		return nil, errors.New("restaurantId or qrToken is required")
	}

	order := entity.Order{
		Status:       entity.StatusPending,
		RestaurantID: restaurantID,
		TableID:      tableID,
		SpecialNotes: req.SpecialNotes,
	}

	for _, in := range req.Items {
		m, err := s.MenuRepo.GetMenuItem(in.MenuItemID)
		if err != nil {
			return nil, err
		}
		if m.RestaurantID != restaurantID {
			return nil, errors.New("menu item not in this restaurant")
		}
		unit := m.Price
		if in.VarietyID != nil {
			v, err := s.MenuRepo.GetVariety(*in.VarietyID)
			if err != nil {
				return nil, err
			}
			if v.MenuItemID != m.ID {
				return nil, errors.New("variety does not belong to menu item")
			}
			unit = v.Price
		}
		order.Items = append(order.Items, entity.OrderItem{
			Quantity:       in.Quantity,
			UnitPrice:      unit,
			Status:         entity.StatusPending,
			MenuItemID:     m.ID,
			VarietyID:      in.VarietyID,
			ServicePointID: m.ServicePointID,
		})
	}
	order.RecomputeTotal()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Create(tx, &order)
	})
	if err != nil {
		return nil, err
	}
	return s.Repo.GetWithItems(s.DB, order.ID)
}

func (s *OrderService) Get(orderID uint) (*entity.Order, error) {
	return s.Repo.GetWithItems(s.DB, orderID)
}

func (s *OrderService) ListNew(restaurantID uint) ([]entity.Order, error) {
	return s.Repo.ListNew(restaurantID)
}

// ----- Order-level mutation -----

// UpdateOrder applies a coarse order patch. A status change goes through the
// state machine and is manager/admin territory; table and notes edits are not
// role-gated beyond the route.
func (s *OrderService) UpdateOrder(staff *entity.Staff, orderID uint, req *UpdateOrderReq) (*entity.Order, error) {
	var updated *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.Repo.GetWithItems(tx, orderID)
		if err != nil {
			return err
		}
		if req.Status != nil {
			if !CanSetOrderStatus(staff) {
				return apperr.ErrAuthorizationDenied
			}
			if err := order.Transition(*req.Status, time.Now()); err != nil {
				return err
			}
		}
		if req.TableID != nil {
			order.TableID = req.TableID
		}
		if req.SpecialNotes != nil {
			order.SpecialNotes = req.SpecialNotes
		}
		updated = order
		return s.Repo.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *OrderService) Delete(orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.Repo.Delete(tx, orderID)
	})
}

// ----- Item transitions -----

// TransitionItem moves a single item through the lifecycle and recomputes the
// parent total. Invalid transitions never mutate anything and are not
// retried; re-applying the item's current status is a trivial success.
func (s *OrderService) TransitionItem(staff *entity.Staff, orderID, itemID uint, newStatus entity.Status) (*entity.Order, error) {
	var updated *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.Repo.GetWithItems(tx, orderID)
		if err != nil {
			return err
		}
		item := order.ItemByID(itemID)
		if item == nil {
			return apperr.ErrNotFound
		}
		if !CanManageItem(staff, item) {
			return apperr.ErrAuthorizationDenied
		}
		if err := item.Transition(newStatus, time.Now()); err != nil {
			return err
		}
		order.RecomputeTotal()
		updated = order
		return s.Repo.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// BulkTransitionItems narrows the requested set to what the staff member may
// touch, attempts each surviving item independently (one stale item never
// aborts the rest), then sets the order-level status unconditionally — the
// bulk action reflects intent on the order record even when some items were
// skipped. Empty itemIDs means "all items".
func (s *OrderService) BulkTransitionItems(staff *entity.Staff, orderID uint, newStatus entity.Status, itemIDs []uint) (*BulkResult, error) {
	var result *BulkResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order, err := s.Repo.GetWithItems(tx, orderID)
		if err != nil {
			return err
		}
		items, err := NarrowItems(staff, order, itemIDs)
		if err != nil {
			return err
		}

		now := time.Now()
		res := &BulkResult{}
		for _, item := range items {
			r := ItemResult{ItemID: item.ID}
			if err := item.Transition(newStatus, now); err != nil {
				r.Error = err.Error()
			} else {
				r.OK = true
				res.UpdatedCount++
			}
			res.Results = append(res.Results, r)
		}

		order.ForceStatus(newStatus, now)
		order.RecomputeTotal()
		res.Order = order
		result = res
		return s.Repo.Save(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
