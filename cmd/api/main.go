package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/nero-collectibles/kassa/internal/config"
	"github.com/nero-collectibles/kassa/internal/handlers"
	"github.com/nero-collectibles/kassa/internal/mailer"
	"github.com/nero-collectibles/kassa/internal/services"
	"github.com/nero-collectibles/kassa/internal/store"
	xhttp "github.com/nero-collectibles/kassa/pkg/http"
	"github.com/nero-collectibles/kassa/pkg/logger"
	"github.com/nero-collectibles/kassa/pkg/prom"
	"github.com/nero-collectibles/kassa/pkg/storage"
)

func main() {
	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 10))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	if config.Get().MetricsEnable {
		host, _ := os.Hostname()
		if err := prom.Create(host, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed to register metrics", "error", err)
			return
		}
		go prom.ListenAndServe(config.Get().MetricsListenAddr, config.Get().MetricsURI)
	}

	debug := config.Get().AppEnv == "dev" && config.Get().AppDebug
	blobs, err := storage.Open(storage.Config{Path: config.Get().StoragePath}, debug)
	if err != nil {
		logger.Error("failed opening storage", "error", err)
		return
	}
	defer blobs.Close()

	transactionStore, err := store.NewTransactionStore(blobs)
	if err != nil {
		// a corrupt ledger must stop the process, not silently start empty
		logger.Error("failed loading transactions", "error", err)
		return
	}
	settingsStore, err := store.NewSettingsStore(blobs)
	if err != nil {
		logger.Error("failed loading settings", "error", err)
		return
	}

	// services
	transactionService := services.NewTransactionService(transactionStore)
	closingService := services.NewClosingService(transactionStore, settingsStore)
	mailClient := mailer.New(mailer.Config{
		Host:     config.Get().MailerHost,
		Port:     config.Get().MailerPort,
		Login:    config.Get().MailerLogin,
		Password: config.Get().MailerPassword,
		From:     config.Get().MailerFrom,
		FromName: config.Get().MailerFromName,
	})
	receiptService, err := services.NewReceiptService(transactionService, settingsStore, mailClient,
		config.Get().MailerQueueSize, config.Get().MailerWorkers)
	if err != nil {
		logger.Error("failed starting receipt service", "error", err)
		return
	}
	defer receiptService.Close()
	healthService := services.NewHealthService()

	// v1 handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, receiptService)
	closingHandler := handlers.NewClosingHandler(closingService)
	settingsHandler := handlers.NewSettingsHandler(settingsStore)
	backupHandler := handlers.NewBackupHandler(transactionService)
	healthHandler := handlers.NewHealthHandler(healthService)

	g := s.Router.Group("/api/v1")
	handlers.RegisterTransactionRoutes(g, transactionHandler)
	handlers.RegisterClosingRoutes(g, closingHandler)
	handlers.RegisterSettingsRoutes(g, settingsHandler)
	handlers.RegisterBackupRoutes(g, backupHandler)
	handlers.RegisterHealthRoutes(g, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(config.Get().HttpListenAddr); err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	<-c
	s.Shutdown()
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
