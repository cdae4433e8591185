package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"lead-connector/internal/config"
	Iservices "lead-connector/internal/domain/interfaces/services"
	"lead-connector/internal/infra/handlers"
	"lead-connector/internal/infra/logger"
	"lead-connector/internal/infra/provider"
	"lead-connector/internal/infra/repository"
	"lead-connector/internal/infra/routes"
	"lead-connector/internal/infra/services"
	"lead-connector/internal/middleware"
	client "lead-connector/internal/pkg"
)

func main() {
	config.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	log := logger.NewLogger(ctx, cfg)

	mongoClient, err := client.MongoClient(cfg.MongoURI)
	if err != nil {
		log.Fatal(fmt.Sprintf("Could not connect to MongoDB: %v", err))
	}
	leadsDB := mongoClient.Database("marketing_db")

	leadRepo := repository.NewMongoLeadRepository(leadsDB)
	if err := leadRepo.EnsureIndexes(ctx); err != nil {
		log.Warn(fmt.Sprintf("Could not ensure lead indexes: %v", err))
	}

	// The platform list/detail calls and the summarizer get separate clients
	// so each remote keeps its own bounded wait.
	platformClient := &http.Client{Timeout: 12 * time.Second}
	summaryClient := &http.Client{Timeout: 15 * time.Second}
	deliveryClient := &http.Client{Timeout: 15 * time.Second}

	chatPlatform := provider.NewChatPlatformProvider(cfg, log, platformClient)
	notifier := provider.NewInfobipWhatsAppProvider(cfg, log, deliveryClient)

	var leadSvc Iservices.ILeadService = services.NewLeadService(log, leadRepo)
	var conversationSvc Iservices.IConversationService = services.NewConversationService(log, chatPlatform)
	var summarySvc Iservices.ISummaryService = services.NewSummaryService(cfg, log, summaryClient)
	var batchSvc Iservices.IBatchSummaryService = services.NewBatchSummaryService(log, leadRepo, conversationSvc, summarySvc)
	var queryAISvc Iservices.IQueryAIService = services.NewQueryAIService(cfg, log, summaryClient, notifier)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware(log))

	leadHandlers := handlers.NewLeadHandlers(log, leadSvc)
	summaryHandlers := handlers.NewSummaryHandlers(log, batchSvc)
	queryHandlers := handlers.NewQueryHandlers(log, queryAISvc)
	logHandlers := handlers.NewLogHandlers(log, cfg.LogFile)

	appRoutes := routes.NewRoutes(
		router,
		leadHandlers,
		summaryHandlers,
		queryHandlers,
		logHandlers,
	)
	appRoutes.Init()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)

	go func() {
		log.Info(fmt.Sprintf("Server is running on port %s", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(fmt.Sprintf("Error running HTTP server: %s", err))
			os.Exit(1)
		}
	}()

	<-stop
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Server forced to shutdown: %v", err))
	} else {
		log.Info("Server stopped gracefully.")
	}

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error(fmt.Sprintf("Error disconnecting from MongoDB: %v", err))
	}
}
