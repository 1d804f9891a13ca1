package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/Sk192011s/2d-backup/api/routes"
	"github.com/Sk192011s/2d-backup/internal/config"
	"github.com/Sk192011s/2d-backup/internal/handlers"
	"github.com/Sk192011s/2d-backup/internal/market"
	"github.com/Sk192011s/2d-backup/internal/repositories"
	mongorepo "github.com/Sk192011s/2d-backup/internal/repositories/mongodb"
	"github.com/Sk192011s/2d-backup/internal/services"
	"github.com/Sk192011s/2d-backup/pkg/liveresults"
	"github.com/Sk192011s/2d-backup/pkg/mongodb"
)

func main() {
	// .env is optional; real deployments set environment variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.JSONFormatter{})

	loc, err := time.LoadLocation(cfg.Market.Timezone)
	if err != nil {
		log.WithError(err).WithField("timezone", cfg.Market.Timezone).Fatal("failed to load market timezone")
	}
	clock := market.NewLocationClock(loc)

	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.WithError(err).Error("error disconnecting from MongoDB")
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	var accountRepo repositories.AccountRepository = mongorepo.NewAccountRepository(db)
	var wagerRepo repositories.WagerRepository = mongorepo.NewWagerRepository(db)
	var ledgerRepo repositories.LedgerRepository = mongorepo.NewLedgerRepository(mongoClient.Raw(), db)
	var blocklistRepo repositories.BlocklistRepository = mongorepo.NewBlocklistRepository(db)
	var configRepo repositories.SystemConfigRepository = mongorepo.NewSystemConfigRepository(db)
	var txRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var historyRepo repositories.HistoryRepository = mongorepo.NewHistoryRepository(db)

	feed := liveresults.NewClient(cfg.Feed.BaseURL)

	authService := services.NewAuthService(accountRepo, cfg)
	userService := services.NewUserService(accountRepo, txRepo)
	wagerService := services.NewWagerService(accountRepo, wagerRepo, ledgerRepo, blocklistRepo)
	settlementService := services.NewSettlementService(wagerRepo, ledgerRepo, configRepo)
	blocklistService := services.NewBlocklistService(blocklistRepo)
	adminService := services.NewAdminService(accountRepo, txRepo, configRepo, wagerRepo)
	historyService := services.NewHistoryService(historyRepo, feed, clock)

	h := &routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Wager:   handlers.NewWagerHandler(wagerService, clock),
		Admin:   handlers.NewAdminHandler(adminService, settlementService, blocklistService, historyService, wagerService, authService, clock),
		User:    handlers.NewUserHandler(userService),
		History: handlers.NewHistoryHandler(historyService, adminService),
	}

	router := routes.SetupRouter(cfg, h)

	// Background snapshotter keeps the result history current
	snapCtx, stopSnapshots := context.WithCancel(context.Background())
	defer stopSnapshots()
	go historyService.Run(snapCtx, cfg.Feed.SnapshotInterval)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("listen failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")
	stopSnapshots()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server exiting")
}
