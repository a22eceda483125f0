package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"boardapi/internal/auth"
	"boardapi/internal/config"
	"boardapi/internal/db"
	"boardapi/internal/logger"
	"boardapi/internal/repository"
	"boardapi/internal/service"
)

func main() {
	source := flag.String("source", "", "fixture file path or http(s) URL; embedded demo data when empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting seed", zap.String("driver", cfg.Database.Driver))

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	// Migrations run without reset here; RESET_DB only applies to the server.
	if err := db.Migrate(gormDB, false, log); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	fixture, err := loadFixture(*source)
	if err != nil {
		log.Fatal("load fixture", zap.Error(err))
	}

	accountRepo := repository.NewAccountRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	s := &seeder{
		accountRepo: accountRepo,
		accounts:    service.NewAccountService(accountRepo, hasher, jwtService, log),
		posts:       service.NewBoardPostService(repository.NewBoardPostRepository(gormDB), log),
		images:      service.NewSavedImageService(repository.NewSavedImageRepository(gormDB), cfg.SavedImagesAllowDuplicates, log),
		log:         log,
	}

	stats, err := s.run(context.Background(), fixture)
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}

	log.Info("seed completed",
		zap.Int("accounts_created", stats.Accounts),
		zap.Int("accounts_skipped", stats.Skipped),
		zap.Int("posts_created", stats.Posts),
		zap.Int("images_saved", stats.Images),
	)
}
