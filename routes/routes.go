package routes

import (
	"github.com/chandanamca2024-dotco/canteenapp-sub001/availability"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/configs"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/controllers"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/middlewares"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/repository"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/services"
	"github.com/chandanamca2024-dotco/canteenapp-sub001/ws"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, cfg *configs.Config, hub *ws.EventHub) {
	r.Use(middlewares.CORSMiddleware())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	db := configs.DB()
	window := availability.Window{OpensAt: cfg.OpenTime, ClosesAt: cfg.CloseTime}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	snapRepo := repository.NewCartSnapshotRepository(db)
	resRepo := repository.NewReservationRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(snapRepo, menuRepo, window)
	menuSvc := services.NewMenuService(menuRepo, hub, cfg.RequestTimeout)
	orderSvc := services.NewOrderService(db, orderRepo, menuRepo, resRepo, cartSvc, hub, window, cfg.RequestTimeout)
	resSvc := services.NewReservationService(db, resRepo, hub, cfg.RequestTimeout)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	menuCtrl := controllers.NewMenuController(menuSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	staffCtrl := controllers.NewStaffOrderController(orderSvc)
	resCtrl := controllers.NewReservationController(resSvc)
	canteenCtrl := controllers.NewCanteenController(window)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Public
	r.GET("/canteen/status", canteenCtrl.Status)
	r.GET("/menu", menuCtrl.List)
	r.GET("/menu/:id", menuCtrl.Detail)

	// Student (any logged-in user)
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/items", cartCtrl.Add)
		u.PATCH("/cart/items/qty", cartCtrl.UpdateQty)
		u.DELETE("/cart/items", cartCtrl.RemoveItem)
		u.DELETE("/cart", cartCtrl.Clear)

		u.POST("/orders", orderCtrl.Create)
		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.PATCH("/orders/:id/cancel", orderCtrl.Cancel)

		u.POST("/reservations", resCtrl.Create)
		u.GET("/reservations", resCtrl.ListMine)
		u.DELETE("/reservations/:id", resCtrl.Cancel)
	}

	// Staff (staff/admin)
	staff := r.Group("/staff", middlewares.AuthMiddleware(cfg.JWTSecret, "staff", "admin"))
	{
		staff.GET("/orders", staffCtrl.List)
		staff.PATCH("/orders/:id/accept", staffCtrl.Accept)
		staff.PATCH("/orders/:id/ready", staffCtrl.MarkReady)
		staff.PATCH("/orders/:id/complete", staffCtrl.Complete)
		staff.PATCH("/orders/:id/cancel", staffCtrl.Cancel)
	}

	// Admin (admin only)
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.POST("/menu", menuCtrl.Create)
		admin.PATCH("/menu/:id", menuCtrl.Update)
		admin.DELETE("/menu/:id", menuCtrl.Delete)
	}

	// Realtime change feed
	r.GET("/ws/events", middlewares.AuthMiddleware(cfg.JWTSecret), hub.HandleWebSocket)
}
