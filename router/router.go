package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fooddash/fooddash-go/devserver"
	"github.com/fooddash/fooddash-go/middlewares"
	"github.com/fooddash/fooddash-go/models"
)

// SetupRouter builds the dev server's route table, mirroring the paths the
// production backend exposes to the mobile client.
func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	authCtrl := devserver.NewAuthController(db)
	orderCtrl := devserver.NewOrderController(db)
	restaurantCtrl := devserver.NewRestaurantController(db)
	addressCtrl := devserver.NewAddressController(db)
	paymentCtrl := devserver.NewPaymentController(db)
	conversationCtrl := devserver.NewConversationController(db)
	subscriptionCtrl := devserver.NewSubscriptionController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	public := r.Group("/auth")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", authCtrl.Register)
		public.POST("/login", authCtrl.Login)
	}

	// Unauthenticated catalog browsing, lightly rate limited per IP.
	catalogLimiter := middlewares.NewRateLimiter(120, 60)
	catalog := r.Group("/restaurants")
	catalog.Use(catalogLimiter.RateLimit())
	{
		catalog.GET("", restaurantCtrl.ListRestaurants)
		catalog.GET("/:restaurant_id/menu_items", restaurantCtrl.MenuItems)
	}

	// Realtime socket; the token travels as a query parameter.
	r.GET("/ws", middlewares.WebSocketAuthMiddleware(), devserver.RealtimeHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())

	auth.POST("/auth/logout", authCtrl.Logout)

	auth.GET("/orders", orderCtrl.ListOrders)
	auth.GET("/orders/partner_pending_orders",
		middlewares.RequireRole(models.RolePartner), orderCtrl.PartnerPendingOrders)
	auth.GET("/orders/new_restaurant_orders",
		middlewares.RequireRole(models.RoleRestaurantOwner), orderCtrl.NewRestaurantOrders)
	auth.POST("/orders/create_order",
		middlewares.RequireRole(models.RoleCustomer), orderCtrl.CreateOrder)
	auth.PATCH("/orders/:order_id/update_status", orderCtrl.UpdateStatus)

	auth.GET("/addresses", addressCtrl.ListAddresses)
	auth.POST("/addresses", addressCtrl.CreateAddress)

	auth.POST("/payments/create_intent", paymentCtrl.CreateIntent)
	auth.GET("/payments/:payment_id", paymentCtrl.GetPayment)

	auth.GET("/conversations/:conversation_id/messages", conversationCtrl.Messages)
	auth.POST("/conversations/:conversation_id/messages", conversationCtrl.Send)

	auth.POST("/subscriptions", subscriptionCtrl.Register)
	auth.DELETE("/subscriptions/:subscription_id", subscriptionCtrl.Unregister)

	return r
}
