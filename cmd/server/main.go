package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"    // optional .env autoload for local development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/student-housing-marketplace/internal/aggregate"
	"github.com/iliyamo/student-housing-marketplace/internal/config"
	"github.com/iliyamo/student-housing-marketplace/internal/database"
	"github.com/iliyamo/student-housing-marketplace/internal/handler"
	"github.com/iliyamo/student-housing-marketplace/internal/middleware"
	"github.com/iliyamo/student-housing-marketplace/internal/queue"
	"github.com/iliyamo/student-housing-marketplace/internal/repository"
	"github.com/iliyamo/student-housing-marketplace/internal/router"
	"github.com/iliyamo/student-housing-marketplace/internal/worker"
)

func main() {
	// .env is a convenience for local runs; deployments set real env vars.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	tenants := repository.NewTenantRepo(db)
	landlords := repository.NewLandlordRepo(db)
	listings := repository.NewListingRepo(db)
	preferences := repository.NewPreferenceRepo(db)
	reservations := repository.NewReservationRepo(db)
	reviews := repository.NewReviewRepo(db)
	interactions := repository.NewInteractionRepo(db)

	agg := aggregate.NewScoreAggregator(reviews, listings)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens, tenants, landlords)
	publicH := handler.NewPublicHandler(listings, preferences, reviews)
	tenantH := handler.NewTenantHandler(tenants, preferences, interactions, listings)
	landlordH := handler.NewLandlordHandler(landlords, listings)
	reservationH := handler.NewReservationHandler(reservations, listings, tenants, landlords)
	reviewH := handler.NewReviewHandler(reviews, listings, tenants, landlords, agg)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	} else {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	}

	router.RegisterRoutes(e)
	router.RegisterPublic(e, publicH)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterTenant(e, tenantH, reservationH, cfg.JWTSecret)
	router.RegisterLandlord(e, landlordH, reservationH, cfg.JWTSecret)
	router.RegisterReviews(e, reviewH, cfg.JWTSecret)

	// Background work: review log consumer and the pending-reservation sweep.
	go func() {
		if err := queue.StartReviewConsumer(); err != nil {
			log.Printf("review consumer stopped: %v", err)
		}
	}()
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	expiry := worker.NewReservationExpiry(reservations, listings, time.Duration(cfg.ReservationTTLMin)*time.Minute)
	go expiry.Run(workerCtx)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
