package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/configs"
	"github.com/trygraphite/platter-sub000/controllers"
	"github.com/trygraphite/platter-sub000/middlewares"
	"github.com/trygraphite/platter-sub000/repository"
	"github.com/trygraphite/platter-sub000/services"
	"github.com/trygraphite/platter-sub000/ws"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.Hub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	// Services
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo)
	authSvc := services.NewAuthService(staffRepo, cfg.JWTSecret, cfg.JWTTTL)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, staffRepo, hub)
	waiterCtrl := controllers.NewWaiterController(menuRepo, hub)
	wsHandler := ws.NewHandler(hub)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)
	}

	// Staff management (admin only)
	r.POST("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, "ADMIN"), authCtrl.CreateStaff)

	// Guest surface (QR flow, no account)
	r.POST("/orders", orderCtrl.Create)
	r.GET("/orders/:id", orderCtrl.Detail)
	r.POST("/tables/:qrToken/waiter-call", waiterCtrl.Call)

	// Staff surface
	staff := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		staff.GET("/orders/new", orderCtrl.ListNew)
		staff.PATCH("/orders/:id/items/:itemId/status", orderCtrl.TransitionItem)
		staff.PATCH("/orders/:id/items/status", orderCtrl.BulkTransition)
	}

	// Order-level mutations (managers and admins; operators are denied the
	// whole-order status path outright)
	managers := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, "MANAGER", "ADMIN"))
	{
		managers.PATCH("/orders/:id", orderCtrl.Update)
		managers.DELETE("/orders/:id", orderCtrl.Delete)
	}

	// Realtime (guests connect without a token)
	r.GET("/ws", middlewares.WSAuthMiddleware(cfg.JWTSecret), wsHandler.HandleWebSocket)
}
