package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"courtbook/internal/config"
	"courtbook/internal/database"
	"courtbook/internal/domain"
	jwtsvc "courtbook/internal/pkg/jwt"
	"courtbook/internal/repository"
)

// Seeds a local database with two courts, a standing Monday booking with a
// couple of payments, and a pending lesson request.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payment_records")
	db.Exec("DELETE FROM lesson_sessions")
	db.Exec("DELETE FROM lesson_requests")
	db.Exec("DELETE FROM one_off_reservations")
	db.Exec("DELETE FROM recurring_reservations")
	db.Exec("DELETE FROM courts")

	ctx := context.Background()
	courts := repository.NewCourtRepository(db)
	recurring := repository.NewRecurringRepository(db)
	payments := repository.NewPaymentRepository(db)
	requests := repository.NewRequestRepository(db)

	log.Println("Creating courts...")
	tennis := &domain.Court{Name: "Court 1 (tennis)", Category: domain.CategoryTennis, Active: true}
	padel := &domain.Court{Name: "Court 2 (padel)", Category: domain.CategoryPadel, Active: true}
	for _, c := range []*domain.Court{tennis, padel} {
		if err := courts.Create(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating recurring booking...")
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	holder := int64(42)
	weekly := &domain.Recurring{
		CourtID:         tennis.ID,
		Weekday:         time.Monday,
		FromUnit:        22, // 18:00 with the default 07:00 window
		ToUnit:          24,
		Category:        domain.CategoryTennis,
		PricePerSession: 50,
		ActiveFrom:      start,
		Active:          true,
		HolderID:        &holder,
	}
	if err := recurring.Create(ctx, weekly); err != nil {
		log.Fatal(err)
	}

	log.Println("Recording payments...")
	for m := time.January; m <= time.February; m++ {
		rec := &domain.PaymentRecord{
			RecurringID: weekly.ID,
			Month:       m,
			Year:        2026,
			Amount:      200,
			Method:      "cash",
		}
		if err := payments.Create(ctx, rec); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Filing a lesson request...")
	req := &domain.LessonRequest{
		RequesterID: 7,
		Category:    domain.CategoryPadel,
		Date:        start.AddDate(0, 2, 0),
		FromUnit:    10,
		ToUnit:      14,
		Status:      domain.RequestPending,
		Notes:       "beginner, prefers mornings",
	}
	if err := requests.Create(ctx, req); err != nil {
		log.Fatal(err)
	}

	log.Println("Generating dev tokens...")
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	memberToken, err := j.GenerateToken(holder, "member")
	if err != nil {
		log.Fatal(err)
	}
	coachToken, err := j.GenerateToken(1, "coach")
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Member token:", memberToken)
	log.Println("Coach token: ", coachToken)

	log.Println("Seed complete.")
}
