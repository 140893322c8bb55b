package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/arjunmehra/folio-tracker/backend/internal/api"
	"github.com/arjunmehra/folio-tracker/backend/internal/database"
	"github.com/arjunmehra/folio-tracker/backend/internal/market"
	"github.com/arjunmehra/folio-tracker/backend/internal/repository"
	"github.com/arjunmehra/folio-tracker/backend/internal/services"
)

func main() {
	// Database path
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./folio_tracker.db"
	}

	db, err := database.Initialize(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Repositories
	ledgerRepo := repository.NewGormLedgerRepository(db)
	snapshotRepo := repository.NewGormSnapshotRepository(db)
	balanceRepo := repository.NewGormBalanceRepository(db)

	// Market oracle: CoinGecko for crypto, Alpha Vantage for stocks, both
	// degrading to the static catalog when unreachable.
	apiKey := os.Getenv("ALPHAVANTAGE_API_KEY")
	if apiKey == "" {
		apiKey = "demo"
	}
	var symbols []string
	if s := os.Getenv("STOCK_SYMBOLS"); s != "" {
		symbols = strings.Split(s, ",")
	}
	oracle := market.NewOracle(
		market.NewCoinGeckoClient(),
		market.NewAlphaVantageClient(apiKey, symbols),
	)

	// Services
	ledgerService := services.NewLedgerService(ledgerRepo)
	portfolioService := services.NewPortfolioService(ledgerService, oracle)
	snapshotService := services.NewSnapshotService(snapshotRepo, portfolioService)
	reportService := services.NewReportService(snapshotRepo, portfolioService)
	balanceService := services.NewBalanceService(balanceRepo)
	leaderboardService := services.NewLeaderboardService(0)

	refreshInterval := 5 * time.Minute
	if v := os.Getenv("PRICE_REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			refreshInterval = parsed
		} else {
			log.Printf("Ignoring invalid PRICE_REFRESH_INTERVAL %q", v)
		}
	}
	priceWorker := services.NewPriceWorker(portfolioService, snapshotService, refreshInterval)

	// Create a cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start price worker in background with panic recovery
	go func() {
		for {
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.Printf("PANIC in price worker: %v - restarting in 30 seconds", r)
					}
				}()
				priceWorker.Start(ctx)
			}()

			select {
			case <-ctx.Done():
				return // Graceful shutdown
			case <-time.After(30 * time.Second):
				log.Println("Price worker restarting after panic recovery...")
			}
		}
	}()

	// Leaderboard refresh runs on its own slower ticker
	go leaderboardService.Start(ctx)

	router := api.SetupRouter(
		portfolioService,
		snapshotService,
		reportService,
		ledgerService,
		balanceService,
		leaderboardService,
		oracle,
		priceWorker,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel the context to stop the background workers
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
