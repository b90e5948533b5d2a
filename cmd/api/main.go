package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"popfood/internal/auth"
	"popfood/internal/cache"
	"popfood/internal/cart"
	"popfood/internal/config"
	"popfood/internal/db"
	"popfood/internal/menu"
	"popfood/internal/order"
	"popfood/internal/promotion"
	"popfood/internal/restaurant"
	"popfood/internal/review"
	"popfood/internal/router"
	"popfood/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	config.SetupLogger(cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres init failed")
	}
	defer pgDB.Close()

	// ───────────────────────── REDIS ─────────────────────────
	rdb, err := cache.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis init failed")
	}
	defer rdb.Close()

	// ───────────────────────── STORAGE ─────────────────────────
	r2Client, err := storage.NewR2Client(ctx, cfg.R2)
	if err != nil {
		log.Fatal().Err(err).Msg("R2 init failed")
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("token manager init failed")
	}

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	authService := auth.NewService(auth.NewPostgresUserRepository(pgDB))
	menuService := menu.NewService(menu.NewPostgresRepository(pgDB), r2Client, cfg.DishCacheTTL)
	restaurantService := restaurant.NewService(restaurant.NewPostgresRepository(pgDB))
	promotionService := promotion.NewService(promotion.NewPostgresRepository(pgDB))
	reviewService := review.NewService(review.NewPostgresRepository(pgDB), menuService, authService)

	cartBroker := cart.NewBroker()
	defer cartBroker.Close()
	cartService := cart.NewService(cart.NewRedisRepository(rdb), menuService, cartBroker)

	orderService := order.NewService(order.NewPostgresRepository(pgDB), cartService, promotionService)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.NewRouter(router.Deps{
		Tokens:      tokens,
		Auth:        authService,
		Menu:        menuService,
		Restaurants: restaurantService,
		Promotions:  promotionService,
		Reviews:     reviewService,
		Cart:        cartService,
		Orders:      orderService,

		AllowedOrigins: cfg.AllowedOrigins,
		Limiter:        cache.NewWindowCounter(rdb),
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ───────────────────────── START ─────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("API running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	// open SSE streams end when the broker closes
	cartBroker.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
