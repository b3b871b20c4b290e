package main // API server entry point

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/elcomensal/restaurante-api/internal/cart"
	"github.com/elcomensal/restaurante-api/internal/catalog"
	"github.com/elcomensal/restaurante-api/internal/checkout"
	"github.com/elcomensal/restaurante-api/internal/config"
	"github.com/elcomensal/restaurante-api/internal/database"
	"github.com/elcomensal/restaurante-api/internal/handler"
	"github.com/elcomensal/restaurante-api/internal/middleware"
	"github.com/elcomensal/restaurante-api/internal/queue"
	"github.com/elcomensal/restaurante-api/internal/repository"
	"github.com/elcomensal/restaurante-api/internal/router"
)

func main() {
	// .env is a dev convenience; in production the variables come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis backs the response cache and the rate limiter. Both degrade to
	// pass-through when the client is nil, so a missing Redis never blocks
	// startup.
	rdb := config.NewRedisClient()

	users := repository.NewUserRepo(db)
	profiles := repository.NewProfileRepo(db)
	tokens := repository.NewTokenRepo(db)
	menu := repository.NewMenuRepo(db)
	reservations := repository.NewReservationRepo(db)
	orders := repository.NewOrderRepo(db)

	carts := cart.NewStore()
	flows := checkout.NewFlows()
	feed := catalog.NewFeed()

	authH := handler.NewAuthHandler(cfg, users, profiles, tokens, carts)
	menuH := handler.NewMenuHandler(menu, feed)
	cartH := handler.NewCartHandler(carts, menu)
	checkoutH := handler.NewCheckoutHandler(carts, flows, orders, checkout.SimulatedProvider{})
	reservationH := handler.NewReservationHandler(reservations)
	orderH := handler.NewOrderHandler(orders)
	staticH := handler.NewStaticHandler()
	adminH := handler.NewAdminHandler(menu, reservations, feed)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, menuH, staticH, cacheMW)
	router.RegisterCustomer(e, cartH, checkoutH, reservationH, orderH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)

	// The consumer keeps its own connection and reconnects with backoff;
	// a broker outage only pauses the confirmation log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
