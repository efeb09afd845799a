package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/trygraphite/platter-sub000/pkg/resp"
	"github.com/trygraphite/platter-sub000/repository"
	"github.com/trygraphite/platter-sub000/ws"
)

// WaiterController handles the guest's call-waiter ping. Not persisted and
// not tied to an order; it only rings the restaurant feed.
type WaiterController struct {
	MenuRepo *repository.MenuRepository
	Hub      *ws.Hub
}

func NewWaiterController(menuRepo *repository.MenuRepository, hub *ws.Hub) *WaiterController {
	return &WaiterController{MenuRepo: menuRepo, Hub: hub}
}

type waiterCallReq struct {
	Message string `json:"message"`
}

// POST /tables/:qrToken/waiter-call
func (wc *WaiterController) Call(c *gin.Context) {
	table, err := wc.MenuRepo.GetTableByQRToken(c.Param("qrToken"))
	if err != nil {
		resp.Error(c, err)
		return
	}
	var req waiterCallReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	wc.Hub.PublishWaiterAlert(table.RestaurantID, table.Number, req.Message)
	resp.OK(c, gin.H{"table": table.Number})
}
