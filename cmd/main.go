package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	httpapi "github.com/immxrtalbeast/santa_bot/internal/api/http"
	"github.com/immxrtalbeast/santa_bot/internal/config"
	"github.com/immxrtalbeast/santa_bot/internal/conversation"
	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/notifier"
	"github.com/immxrtalbeast/santa_bot/internal/random"
	"github.com/immxrtalbeast/santa_bot/internal/render"
	"github.com/immxrtalbeast/santa_bot/internal/repository"
	"github.com/immxrtalbeast/santa_bot/internal/scheduler"
	"github.com/immxrtalbeast/santa_bot/internal/service"
	"github.com/immxrtalbeast/santa_bot/internal/storage"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
	"github.com/immxrtalbeast/santa_bot/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	policy, err := domain.ParseRejoinPolicy(cfg.Game.RejoinPolicy)
	if err != nil {
		log.Error("invalid config", sl.Err(err))
		os.Exit(1)
	}
	proofMode, err := conversation.ParseProofMode(cfg.Game.ProofMode)
	if err != nil {
		log.Error("invalid config", sl.Err(err))
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()

	participants, closeStore, err := openRepository(cfg.Database, clock)
	if err != nil {
		log.Error("failed to open participant store", sl.Err(err))
		os.Exit(1)
	}
	defer closeStore()

	photos, uploadsDir, err := openStorage(cfg.Storage)
	if err != nil {
		log.Error("failed to open photo storage", sl.Err(err))
		os.Exit(1)
	}

	rng, err := random.NewRand()
	if err != nil {
		log.Error("failed to seed generator", sl.Err(err))
		os.Exit(1)
	}

	printer := render.NewPrinter(cfg.Game.Language)
	hub := notifier.NewHub(log)

	drawService := service.NewDrawService(participants, rng, clock, log)
	participantService := service.NewParticipantService(participants, hub, photos, printer, policy, log)
	adminService := service.NewAdminService(cfg.AdminID, participants, drawService, hub, printer, clock, cfg.Game.BroadcastDelay, log)

	controller := conversation.NewController(participantService, adminService, conversation.NewSessionStore(), printer, proofMode, log)

	if cfg.Reminders.Enabled {
		sched, err := scheduler.New(clock, log)
		if err != nil {
			log.Error("failed to create scheduler", sl.Err(err))
			os.Exit(1)
		}
		reminder := scheduler.NewAddressReminder(participants, hub, printer, log)
		if err := sched.ScheduleReminders(reminder, cfg.Reminders.Interval); err != nil {
			log.Error("failed to schedule reminders", sl.Err(err))
			os.Exit(1)
		}
		sched.Start()
		defer func() { _ = sched.Shutdown() }()
	}

	router := httpapi.SetupRouter(
		httpapi.RouterConfig{AllowedOrigins: cfg.HTTP.AllowedOrigins, UploadsDir: uploadsDir},
		httpapi.NewInteractionController(controller, photos, log),
		httpapi.NewAdminController(adminService),
		httpapi.NewDeliveryController(hub, log),
	)

	log.Info("starting application",
		slog.String("addr", cfg.HTTP.Address),
		slog.String("database", cfg.Database.Driver),
		slog.String("storage", cfg.Storage.Type),
	)
	if err := router.Run(cfg.HTTP.Address); err != nil {
		log.Error("http server stopped", sl.Err(err))
		os.Exit(1)
	}
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func openRepository(cfg config.DatabaseConfig, clock clockwork.Clock) (repository.ParticipantRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return repository.NewInMemoryParticipantRepository(clock), func() {}, nil
	case config.DriverSQLite:
		repo, err := repository.OpenSQLite(cfg.Path, clock)
		if err != nil {
			return nil, nil, err
		}
		return repo, func() { _ = repo.Close() }, nil
	case config.DriverPostgres:
		db, err := connectDatabase(cfg)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewPostgresParticipantRepository(db, clock)
		if err := repo.Migrate(); err != nil {
			return nil, nil, fmt.Errorf("migrate: %w", err)
		}
		return repo, func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// openStorage returns the photo storage and, for local storage served by
// this process, the directory to mount.
func openStorage(cfg config.StorageConfig) (storage.Storage, string, error) {
	switch cfg.Type {
	case config.StorageLocal:
		local, err := storage.NewLocalStorage(cfg.BasePath, cfg.BaseURL)
		if err != nil {
			return nil, "", err
		}
		uploadsDir := ""
		if cfg.BaseURL != "" {
			uploadsDir = local.Dir()
		}
		return local, uploadsDir, nil
	case config.StorageS3:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s3, err := storage.NewS3Storage(ctx, storage.S3Options{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
			BaseURL:   cfg.BaseURL,
		})
		if err != nil {
			return nil, "", err
		}
		return s3, "", nil
	default:
		return nil, "", fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}
