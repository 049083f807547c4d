package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fidelease/fidelease-backend/api/routes"
	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/handlers"
	"github.com/fidelease/fidelease-backend/internal/repositories"
	mongorepo "github.com/fidelease/fidelease-backend/internal/repositories/mongodb"
	"github.com/fidelease/fidelease-backend/internal/services"
	"github.com/fidelease/fidelease-backend/pkg/mongodb"
	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"
)

func main() {
	// Load .env if present; real deployments rely on the environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	var userRepo repositories.UserRepository
	mongoUserRepo := mongorepo.NewUserRepository(db)
	userRepo = mongoUserRepo
	var productRepo repositories.ProductRepository = mongorepo.NewProductRepository(db)
	var categoryRepo repositories.CategoryRepository = mongorepo.NewCategoryRepository(db)
	var giftRepo repositories.GiftRepository = mongorepo.NewGiftRepository(db)
	var codeRepo repositories.CodeRepository = mongorepo.NewCodeRepository(db)
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var factureRepo repositories.FactureRepository = mongorepo.NewFactureRepository(db)
	var messageRepo repositories.MessageRepository = mongorepo.NewMessageRepository(db)

	// The unique indexes back registration and code-token uniqueness
	indexCtx, cancelIndex := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelIndex()
	if err := mongoUserRepo.EnsureIndexes(indexCtx); err != nil {
		slog.Error("Failed to ensure MongoDB indexes", "error", err)
		os.Exit(1)
	}

	// Initialize services
	pointsService := services.NewPointsService(userRepo, cfg.Loyalty.EarnRate)
	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(productRepo, categoryRepo, giftRepo)
	saleService := services.NewSaleService(userRepo, productRepo, transactionRepo, factureRepo, pointsService)
	redemptionService := services.NewRedemptionService(giftRepo, codeRepo, pointsService, cfg.Loyalty)
	messageService := services.NewMessageService(messageRepo, userRepo)

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		AuthHandler:       handlers.NewAuthHandler(authService),
		UserHandler:       handlers.NewUserHandler(userService, pointsService),
		ProductHandler:    handlers.NewProductHandler(catalogService),
		CategoryHandler:   handlers.NewCategoryHandler(catalogService),
		GiftHandler:       handlers.NewGiftHandler(catalogService),
		SaleHandler:       handlers.NewSaleHandler(saleService),
		RedemptionHandler: handlers.NewRedemptionHandler(redemptionService),
		MessageHandler:    handlers.NewMessageHandler(messageService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
