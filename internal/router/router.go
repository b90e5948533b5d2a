package router

import (
	"net/http"
	"time"

	"popfood/internal/auth"
	"popfood/internal/cart"
	"popfood/internal/menu"
	"popfood/internal/middleware"
	"popfood/internal/order"
	"popfood/internal/promotion"
	"popfood/internal/restaurant"
	"popfood/internal/review"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Tokens      *auth.TokenManager
	Auth        *auth.Service
	Menu        *menu.Service
	Restaurants *restaurant.Service
	Promotions  *promotion.Service
	Reviews     *review.Service
	Cart        *cart.Service
	Orders      *order.Service

	AllowedOrigins []string

	// Limiter guards the auth endpoints; nil disables rate limiting.
	Limiter    middleware.Counter
	RateLimit  int
	RateWindow time.Duration
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authHandler := auth.NewHandler(deps.Auth, deps.Tokens)
	menuHandler := menu.NewHandler(deps.Menu)
	adminMenuHandler := menu.NewAdminHandler(deps.Menu)
	restaurantHandler := restaurant.NewHandler(deps.Restaurants)
	promotionHandler := promotion.NewHandler(deps.Promotions)
	reviewHandler := review.NewHandler(deps.Reviews)
	cartHandler := cart.NewHandler(deps.Cart)
	orderHandler := order.NewHandler(deps.Orders)

	requireAuth := middleware.AuthMiddleware(deps.Tokens)

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		limited := authGroup.Group("")
		if deps.Limiter != nil {
			limited.Use(middleware.RateLimiter(deps.Limiter, deps.RateLimit, deps.RateWindow))
		}
		limited.POST("/register", authHandler.Register)
		limited.POST("/login", authHandler.Login)

		me := authGroup.Group("/me", requireAuth)
		me.GET("", authHandler.Me)
		me.PATCH("", authHandler.UpdateProfile)
		me.POST("/promote", authHandler.PromoteToAdmin)
	}

	// ───────────────────────── STOREFRONT ─────────────────────────
	r.GET("/menu", menuHandler.Browse)
	r.GET("/dishes/:id", menuHandler.GetDish)
	r.GET("/dishes/:id/reviews", reviewHandler.List)
	r.POST("/dishes/:id/reviews", requireAuth, reviewHandler.Create)

	r.GET("/restaurants", restaurantHandler.List)
	r.GET("/restaurants/:id", restaurantHandler.Get)
	r.GET("/restaurants/:id/dishes", menuHandler.ListByRestaurant)

	r.GET("/promotions", promotionHandler.List)

	// ───────────────────────── CART ─────────────────────────
	cartGroup := r.Group("/cart", requireAuth)
	{
		cartGroup.GET("", cartHandler.Get)
		cartGroup.DELETE("", cartHandler.Clear)
		cartGroup.GET("/events", cartHandler.Events)
		cartGroup.POST("/items", cartHandler.Add)
		cartGroup.PATCH("/items/:dishId", cartHandler.UpdateQuantity)
		cartGroup.DELETE("/items/:dishId", cartHandler.Remove)
	}

	// ───────────────────────── ORDERS ─────────────────────────
	orders := r.Group("/orders", requireAuth)
	{
		orders.POST("", orderHandler.Checkout)
		orders.GET("", orderHandler.ListMine)
	}

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		requireAuth,
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		// Dishes
		admin.POST("/dishes", adminMenuHandler.CreateDish)
		admin.PATCH("/dishes/:id", adminMenuHandler.UpdateDish)
		admin.DELETE("/dishes/:id", adminMenuHandler.DeleteDish)
		admin.PATCH("/dishes/:id/availability", adminMenuHandler.SetAvailability)
		admin.POST("/dishes/:id/image", adminMenuHandler.UploadImage)

		// Restaurants
		admin.POST("/restaurants", restaurantHandler.Create)
		admin.PATCH("/restaurants/:id", restaurantHandler.Update)
		admin.DELETE("/restaurants/:id", restaurantHandler.Delete)

		// Promotions
		admin.POST("/promotions", promotionHandler.Create)
		admin.DELETE("/promotions/:id", promotionHandler.Delete)
	}

	return r
}
