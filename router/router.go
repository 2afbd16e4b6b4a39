package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/dinehub/config"
	"github.com/yeremiapane/dinehub/controllers"
	"github.com/yeremiapane/dinehub/events"
	"github.com/yeremiapane/dinehub/middlewares"
	"github.com/yeremiapane/dinehub/services"
)

func SetupRouter(db *gorm.DB, hub *events.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	sessionSvc := services.NewSessionService(db, hub, config.SessionWindow(), config.SessionMaxLifetime())
	orderSvc := services.NewOrderService(db, hub, sessionSvc)

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	tableCtrl := controllers.NewTableController(db, hub)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	menuCtrl := controllers.NewMenuController(db)
	sessionCtrl := controllers.NewSessionController(db, sessionSvc)
	orderCtrl := controllers.NewOrderController(db, orderSvc)
	treatCtrl := controllers.NewTreatController(orderSvc)
	eventCtrl := controllers.NewEventController(hub, sessionSvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/restaurants/register", restaurantCtrl.RegisterRestaurant)
		public.POST("/login", userCtrl.Login)
	}

	// -- CUSTOMER (session-token based, no staff auth) --
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)

	r.POST("/sessions", sessionCtrl.StartSession)
	r.GET("/sessions/verify", sessionCtrl.VerifySession)
	r.POST("/sessions/extend", sessionCtrl.ExtendSession)
	r.POST("/sessions/end", sessionCtrl.EndSession)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/treats", treatCtrl.CreateTreat)

	// Order-tracking websocket for the customer device
	r.GET("/ws/customer", eventCtrl.CustomerSocket)

	// Staff websocket authenticates via query token (browser limitation)
	r.GET("/ws/staff", middlewares.WebSocketAuthMiddleware(), eventCtrl.StaffSocket)

	// ----------------------------------------------------------------
	//                      STAFF ROUTES (JWT)
	// ----------------------------------------------------------------
	staff := r.Group("/staff")
	staff.Use(middlewares.AuthMiddleware())
	{
		staff.POST("/register", userCtrl.Register)
		staff.POST("/logout", userCtrl.Logout)
		staff.GET("/profile", userCtrl.GetProfile)

		staff.GET("/restaurant", restaurantCtrl.GetRestaurant)
		staff.PATCH("/restaurant", restaurantCtrl.UpdateRestaurant)

		staff.GET("/tables", tableCtrl.GetAllTables)
		staff.POST("/tables", tableCtrl.CreateTable)
		staff.PATCH("/tables/:table_id/active", tableCtrl.SetTableActive)
		staff.POST("/tables/:table_id/regenerate-token", tableCtrl.RegenerateScanToken)
		staff.POST("/tables/:table_id/end-session", sessionCtrl.EndTableSession)

		staff.POST("/categories", categoryCtrl.CreateCategory)
		staff.POST("/menus", menuCtrl.CreateMenu)
		staff.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)

		staff.GET("/orders", orderCtrl.ListOrders)
		staff.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		staff.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)
	}

	return r
}
