package api_gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/api_gateway/handler"
	"github.com/TawhidShakil/financial-accounting-sub000/internal/api_gateway/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	entryHandler *handler.EntryHandler,
	accountHandler *handler.AccountHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Journal entry operations
		entries := v1.Group("/entries")
		{
			entries.POST("", entryHandler.Create)
			entries.GET("", entryHandler.List)
			entries.GET("/:id", entryHandler.GetByID)
		}

		// Account directory operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("", accountHandler.List)
			accounts.GET("/:name", accountHandler.GetByName)
		}

		// Derived report views
		reports := v1.Group("/reports")
		{
			reports.GET("/ledger", reportHandler.Ledger)
			reports.GET("/trial-balance", reportHandler.TrialBalance)
			reports.GET("/income-statement", reportHandler.IncomeStatement)
			reports.GET("/balance-sheet", reportHandler.BalanceSheet)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
