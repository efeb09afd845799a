package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/pkg/resp"
	"github.com/trygraphite/platter-sub000/repository"
	"github.com/trygraphite/platter-sub000/services"
	"github.com/trygraphite/platter-sub000/utils"
	"github.com/trygraphite/platter-sub000/ws"
)

// OrderController wires the order service to HTTP and, after every
// successful mutation, runs exactly one broker publish cycle.
type OrderController struct {
	Orders    *services.OrderService
	StaffRepo *repository.StaffRepository
	Hub       *ws.Hub
}

func NewOrderController(orders *services.OrderService, staffRepo *repository.StaffRepository, hub *ws.Hub) *OrderController {
	return &OrderController{Orders: orders, StaffRepo: staffRepo, Hub: hub}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(v), true
}

// currentStaff loads the caller with service points preloaded; the scoper
// needs them.
func (oc *OrderController) currentStaff(c *gin.Context) (*entity.Staff, bool) {
	staff, err := oc.StaffRepo.FindByID(utils.CurrentUserID(c))
	if err != nil {
		resp.Unauthorized(c, "unknown staff account")
		return nil, false
	}
	return staff, true
}

// POST /orders (guest, via QR token)
func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Orders.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.PublishOrder(ws.EventNewOrder, order)
	resp.Created(c, order)
}

// GET /orders/:id
func (oc *OrderController) Detail(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(orderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, order)
}

// GET /orders/new (staff feed: PENDING and CONFIRMED)
func (oc *OrderController) ListNew(c *gin.Context) {
	restaurantID := utils.CurrentRestaurantID(c)
	if restaurantID == 0 {
		resp.Forbidden(c, "no restaurant scope")
		return
	}
	orders, err := oc.Orders.ListNew(restaurantID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, orders)
}

// PATCH /orders/:id (status/table/notes; status is manager/admin)
func (oc *OrderController) Update(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	staff, ok := oc.currentStaff(c)
	if !ok {
		return
	}
	var req services.UpdateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Orders.UpdateOrder(staff, orderID, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.PublishOrder(ws.EventOrderUpdate, order)
	resp.OK(c, order)
}

// DELETE /orders/:id (hard delete; subscribers evict on orderDeleted)
func (oc *OrderController) Delete(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(orderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	if err := oc.Orders.Delete(orderID); err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.PublishOrderDeleted(order.ID, order.RestaurantID)
	resp.OK(c, gin.H{"id": order.ID})
}

type itemStatusReq struct {
	Status entity.Status `json:"status" binding:"required"`
}

// PATCH /orders/:id/items/:itemId/status
func (oc *OrderController) TransitionItem(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramUint(c, "itemId")
	if !ok {
		return
	}
	staff, ok := oc.currentStaff(c)
	if !ok {
		return
	}
	var req itemStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	order, err := oc.Orders.TransitionItem(staff, orderID, itemID, req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.PublishOrder(ws.EventOrderUpdate, order)
	resp.OK(c, order)
}

type bulkStatusReq struct {
	Status  entity.Status `json:"status" binding:"required"`
	ItemIDs []uint        `json:"itemIds"` // empty = all items
}

// PATCH /orders/:id/items/status
func (oc *OrderController) BulkTransition(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	staff, ok := oc.currentStaff(c)
	if !ok {
		return
	}
	var req bulkStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	result, err := oc.Orders.BulkTransitionItems(staff, orderID, req.Status, req.ItemIDs)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.PublishOrder(ws.EventOrderUpdate, result.Order)
	resp.OK(c, result)
}
