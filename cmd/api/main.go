package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"courtbook/internal/config"
	"courtbook/internal/database"
	"courtbook/internal/middleware"
	"courtbook/internal/modules/availability"
	"courtbook/internal/modules/billing"
	"courtbook/internal/modules/live"
	"courtbook/internal/modules/negotiation"
	"courtbook/internal/modules/selection"
	"courtbook/internal/pkg/clock"
	jwtsvc "courtbook/internal/pkg/jwt"
	"courtbook/internal/pkg/locks"
	"courtbook/internal/pkg/pricing"
	"courtbook/internal/pkg/timegrid"
	"courtbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	grid, err := timegrid.New(cfg.OpenTime, cfg.CloseTime)
	if err != nil {
		log.Fatal(err)
	}

	courtRepo := repository.NewCourtRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	recurringRepo := repository.NewRecurringRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	source := repository.NewSource(reservationRepo, recurringRepo, lessonRepo)

	clk := clock.System()
	policy := pricing.Default()
	courtLocks := locks.New()
	hub := live.NewHub()

	availabilityService := availability.NewService(source, courtRepo, grid, clk)
	availabilityHandler := availability.NewHandler(availabilityService)

	selectionService := selection.NewService(availabilityService, reservationRepo, policy, courtLocks, hub)
	selectionHandler := selection.NewHandler(selectionService)

	billingService := billing.NewService(recurringRepo, paymentRepo, paymentRepo, clk)
	billingHandler := billing.NewHandler(billingService)

	negotiationService := negotiation.NewService(
		requestRepo, availabilityService, policy, grid, courtLocks, hub)
	negotiationHandler := negotiation.NewHandler(negotiationService)

	liveHandler := live.NewHandler(hub)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	liveHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		// public reads
		availabilityHandler.RegisterRoutes(v1)
		selectionHandler.RegisterPublicRoutes(v1)
		billingHandler.RegisterPublicRoutes(v1)

		// writes require a token from the identity service
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			selectionHandler.RegisterProtectedRoutes(protected)
			billingHandler.RegisterProtectedRoutes(protected)
			negotiationHandler.RegisterRoutes(protected)

			coach := protected.Group("/")
			coach.Use(middleware.CoachOnly())
			negotiationHandler.RegisterCoachRoutes(coach)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
