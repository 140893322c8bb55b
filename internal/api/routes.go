package api

import (
	"os"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arjunmehra/folio-tracker/backend/internal/api/handlers"
	"github.com/arjunmehra/folio-tracker/backend/internal/market"
	"github.com/arjunmehra/folio-tracker/backend/internal/metrics"
	"github.com/arjunmehra/folio-tracker/backend/internal/services"
)

func SetupRouter(
	portfolioService *services.PortfolioService,
	snapshotService *services.SnapshotService,
	reportService *services.ReportService,
	ledgerService *services.LedgerService,
	balanceService *services.BalanceService,
	leaderboardService *services.LeaderboardService,
	oracle *market.Oracle,
	priceWorker *services.PriceWorker,
) *gin.Engine {
	router := gin.Default()

	// CORS configuration - allow origins from environment or use defaults
	config := cors.DefaultConfig()
	if corsOrigins := os.Getenv("CORS_ALLOWED_ORIGINS"); corsOrigins != "" {
		config.AllowOrigins = strings.Split(corsOrigins, ",")
	} else {
		config.AllowOrigins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	config.AllowCredentials = false
	router.Use(cors.New(config))
	router.Use(requestMetrics())

	portfolioHandler := handlers.NewPortfolioHandler(portfolioService, snapshotService, reportService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	marketHandler := handlers.NewMarketHandler(oracle, leaderboardService, priceWorker)
	balanceHandler := handlers.NewBalanceHandler(balanceService)
	snapshotHandler := handlers.NewSnapshotHandler(snapshotService)

	api := router.Group("/api")
	{
		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("", portfolioHandler.GetPortfolio)
			portfolio.POST("/buy", portfolioHandler.Buy)
			portfolio.POST("/sell", portfolioHandler.Sell)
			portfolio.POST("/insurance/:id/cancel", portfolioHandler.CancelInsurance)
			portfolio.GET("/allocation", portfolioHandler.GetAllocation)
			portfolio.GET("/performance", portfolioHandler.GetPerformance)
			portfolio.GET("/monthly-change", portfolioHandler.GetMonthlyChange)
			portfolio.GET("/best-performer", portfolioHandler.GetBestPerformer)
		}

		transactions := api.Group("/transactions")
		{
			transactions.GET("", transactionHandler.GetTransactions)
			transactions.GET("/recent", transactionHandler.GetRecentTransactions)
		}

		balance := api.Group("/balance")
		{
			balance.GET("", balanceHandler.GetBalance)
			balance.POST("/deposit", balanceHandler.Deposit)
			balance.POST("/withdraw", balanceHandler.Withdraw)
		}

		snapshots := api.Group("/snapshots")
		{
			snapshots.GET("", snapshotHandler.GetHistory)
			snapshots.POST("/record", snapshotHandler.RecordNow)
		}

		api.GET("/market/:class", marketHandler.GetQuotes)
		api.GET("/prices/status", marketHandler.GetPriceStatus)
		api.GET("/leaderboard", marketHandler.GetLeaderboard)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// requestMetrics counts requests by method, route, and status.
func requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
