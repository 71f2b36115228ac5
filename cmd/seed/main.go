package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/julnac/salon-manager/backend/internal/config"
	"github.com/julnac/salon-manager/backend/internal/domain"
	"github.com/julnac/salon-manager/backend/internal/repository"
	"github.com/julnac/salon-manager/backend/internal/seed"
	"github.com/julnac/salon-manager/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int
	var dateFlag string
	var emailDomain string
	var clientPassword string

	flag.IntVar(&op, "op", 0, "operation to run (1: random services, 2: random staff, 3: random qualifications and schedules, 4: random bookings, 5: demo salon data)")
	flag.IntVar(&n, "n", 5, "number of records to insert")
	flag.StringVar(&dateFlag, "date", time.Now().Format(time.DateOnly), "day to place random bookings on (YYYY-MM-DD)")
	flag.StringVar(&emailDomain, "email-domain", "salon.local", "domain of generated e-mail addresses")
	flag.StringVar(&clientPassword, "client-password", "client1234", "password of generated client accounts")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("failed to create database pool", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("failed to connect to database", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)
	ctx = context.Background()

	switch op {
	case 0:
		slog.Error("no operation given")
	case 1:
		if n <= 0 {
			slog.Error("n must be positive")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			svc := utils.GenerateRandomServiceOffer()
			if err := repo.CreateServiceOffer(ctx, svc); err != nil {
				slog.Error("failed to insert service", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("services inserted", slog.Int("count", cnt))
	case 2:
		if n <= 0 {
			slog.Error("n must be positive")
			return
		}
		cnt := 0
		for i := 0; i < n; i++ {
			member := utils.GenerateRandomStaff(emailDomain)
			if err := repo.CreateStaff(ctx, member); err != nil {
				slog.Error("failed to insert staff member", slog.String("error", err.Error()))
				continue
			}
			cnt++
		}
		slog.Info("staff inserted", slog.Int("count", cnt))
	case 3:
		seedQualificationsAndSchedules(ctx, cfg, repo)
	case 4:
		date, err := time.ParseInLocation(time.DateOnly, dateFlag, time.UTC)
		if err != nil {
			slog.Error("invalid date", "date", dateFlag)
			return
		}
		seedBookings(ctx, repo, date, n, clientPassword, emailDomain)
	case 5:
		seed.SeedRealData(ctx, repo)
	default:
		slog.Error("unknown operation", "op", op)
	}
}

func seedQualificationsAndSchedules(ctx context.Context, cfg *config.Config, repo *repository.Repository) {
	services, err := repo.GetAllServiceOffers(ctx)
	if err != nil {
		slog.Error("failed to list services", slog.String("error", err.Error()))
		return
	}
	staff, err := repo.GetAllStaff(ctx)
	if err != nil {
		slog.Error("failed to list staff", slog.String("error", err.Error()))
		return
	}
	if len(services) == 0 || len(staff) == 0 {
		slog.Error("insert services and staff first")
		return
	}

	serviceIDs := make([]int64, 0, len(services))
	for _, svc := range services {
		serviceIDs = append(serviceIDs, svc.ID)
	}

	// the configuration is validated, so both parse
	opening, _ := time.Parse(domain.TimeLayout, cfg.Salon.OpeningTime)
	closing, _ := time.Parse(domain.TimeLayout, cfg.Salon.ClosingTime)

	quals, schedules := 0, 0
	for _, member := range staff {
		for _, serviceID := range utils.GenerateRandomQualifiedServices(serviceIDs) {
			q := &domain.Qualification{
				StaffID:         member.ID,
				ServiceID:       serviceID,
				ExperienceYears: int32(rand.Intn(15)),
			}
			if err := repo.CreateQualification(ctx, q); err != nil {
				slog.Warn("failed to insert qualification", "staffID", member.ID, "serviceID", serviceID, "error", err)
				continue
			}
			quals++
		}

		for _, ws := range utils.GenerateRandomWeeklySchedule(member.ID, opening.Hour(), closing.Hour()) {
			if err := repo.UpsertWorkSchedule(ctx, ws); err != nil {
				slog.Error("failed to insert work schedule", "staffID", member.ID, "day", ws.DayOfWeek, "error", err)
				continue
			}
			schedules++
		}
	}

	slog.Info("qualifications and schedules inserted", slog.Int("qualifications", quals), slog.Int("schedules", schedules))
}

func seedBookings(ctx context.Context, repo *repository.Repository, date time.Time, n int, password, emailDomain string) {
	if n <= 0 {
		slog.Error("n must be positive")
		return
	}

	staff, err := repo.GetAllStaff(ctx)
	if err != nil || len(staff) == 0 {
		slog.Error("no staff to book", "error", err)
		return
	}

	client, err := utils.GenerateRandomUser(password, emailDomain)
	if err != nil {
		slog.Error("failed to generate client", slog.String("error", err.Error()))
		return
	}
	if err := repo.CreateUser(ctx, client); err != nil {
		slog.Error("failed to insert client", slog.String("error", err.Error()))
		return
	}

	cnt := 0
	for i := 0; i < n; i++ {
		member := staff[rand.Intn(len(staff))]

		ws, err := repo.GetWorkScheduleByDay(ctx, member.ID, domain.ISODay(date.Weekday()))
		if err != nil {
			slog.Warn("staff member has no schedule for the day", "staffID", member.ID, "error", err)
			continue
		}

		quals, err := repo.GetQualificationsByStaffID(ctx, member.ID)
		if err != nil || len(quals) == 0 {
			slog.Warn("staff member has no qualifications", "staffID", member.ID, "error", err)
			continue
		}

		svc, err := repo.GetServiceOfferByID(ctx, quals[rand.Intn(len(quals))].ServiceID)
		if err != nil {
			slog.Error("failed to load service", slog.String("error", err.Error()))
			continue
		}

		// overlapping bookings are allowed here, the engine has to cope with them
		booking, ok := utils.GenerateRandomBooking(ws, client.ID, []*domain.ServiceOffer{svc}, date)
		if !ok {
			continue
		}
		if err := repo.CreateBooking(ctx, booking); err != nil {
			slog.Error("failed to insert booking", slog.String("error", err.Error()))
			continue
		}
		cnt++
	}

	slog.Info("bookings inserted", slog.Int("count", cnt), slog.String("date", date.Format(time.DateOnly)))
}
