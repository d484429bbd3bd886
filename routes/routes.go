package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/eldoghry/FoodDeliveryApp-sub000/configs"
	"github.com/eldoghry/FoodDeliveryApp-sub000/controllers"
	"github.com/eldoghry/FoodDeliveryApp-sub000/middlewares"
	"github.com/eldoghry/FoodDeliveryApp-sub000/pkg/payment"
	"github.com/eldoghry/FoodDeliveryApp-sub000/repository"
	"github.com/eldoghry/FoodDeliveryApp-sub000/services"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	restRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Payment methods
	payments := payment.NewRegistry(
		payment.NewCOD(),
		payment.NewGateway(cfg.GatewayBaseURL, cfg.GatewayAPIKey),
	)

	notifier := services.LogNotifier{}

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	cartSvc := services.NewCartService(db, cartRepo, menuRepo)
	orderSvc := services.NewOrderService(db, orderRepo, restRepo, cfg.CancelWindow)
	txnSvc := services.NewTransactionService(db, txnRepo, orderSvc, cartRepo, payments, notifier)
	checkoutSvc := services.NewCheckoutService(
		db, orderSvc, userRepo, restRepo, menuRepo, cartRepo, txnRepo,
		payments, notifier,
		services.CheckoutConfig{ServiceFee: cfg.ServiceFee, DeliveryFee: cfg.DeliveryFee, Currency: cfg.Currency},
	)
	ratingSvc := services.NewRatingService(db, reviewRepo, orderRepo, cfg.RatingWindow)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restRepo, menuRepo)
	addrCtrl := controllers.NewAddressController(userRepo)
	cartCtrl := controllers.NewCartController(cartSvc)
	checkoutCtrl := controllers.NewCheckoutController(checkoutSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, txnSvc)
	ownerCtrl := controllers.NewOwnerOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(txnSvc)
	reviewCtrl := controllers.NewReviewController(ratingSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}
	a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)

	// Public browsing
	r.GET("/restaurants", restCtrl.List)
	r.GET("/restaurants/:id", restCtrl.Detail)

	// Provider callback (no auth; the handler verifies against the provider)
	r.POST("/webhooks/payment", paymentCtrl.Webhook)

	// Customer (authenticated)
	u := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		u.GET("/addresses", addrCtrl.List)
		u.POST("/addresses", addrCtrl.Create)

		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/items", cartCtrl.AddItem)
		u.PATCH("/cart/items/:id", cartCtrl.UpdateQty)
		u.DELETE("/cart/items/:id", cartCtrl.RemoveItem)
		u.DELETE("/cart", cartCtrl.Clear)

		u.POST("/checkout", checkoutCtrl.Create)

		u.GET("/orders", orderCtrl.ListForMe)
		u.GET("/orders/:id", orderCtrl.Detail)
		u.GET("/orders/:id/transaction", orderCtrl.Ledger)
		u.POST("/orders/:id/cancel", orderCtrl.Cancel)
		u.POST("/orders/:id/review", reviewCtrl.Create)
	}

	// Restaurant owner
	owner := r.Group("/owner", middlewares.AuthMiddleware(cfg.JWTSecret, "owner", "admin"))
	{
		owner.GET("/restaurants/:id/orders", ownerCtrl.List)
		owner.GET("/restaurants/:id/orders/:oid", ownerCtrl.Detail)
		owner.PATCH("/restaurants/:id/open", restCtrl.SetOpen)

		owner.POST("/orders/:id/accept", ownerCtrl.Accept)
		owner.POST("/orders/:id/handoff", ownerCtrl.Handoff)
		owner.POST("/orders/:id/complete", ownerCtrl.Complete)
		owner.POST("/orders/:id/cancel", ownerCtrl.Cancel)
	}
}
