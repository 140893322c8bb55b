package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/services"
)

type PortfolioHandler struct {
	portfolioService *services.PortfolioService
	snapshotService  *services.SnapshotService
	reportService    *services.ReportService
}

func NewPortfolioHandler(portfolio *services.PortfolioService, snapshots *services.SnapshotService, reports *services.ReportService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolio,
		snapshotService:  snapshots,
		reportService:    reports,
	}
}

func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	p, err := h.portfolioService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PortfolioHandler) Buy(c *gin.Context) {
	var req models.BuyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.portfolioService.Buy(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.snapshotAfterTrade(c)
	c.JSON(http.StatusCreated, tx)
}

func (h *PortfolioHandler) Sell(c *gin.Context) {
	var req models.SellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.portfolioService.Sell(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	h.snapshotAfterTrade(c)
	c.JSON(http.StatusCreated, tx)
}

func (h *PortfolioHandler) CancelInsurance(c *gin.Context) {
	policyID := c.Param("id")
	if policyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "policy id is required"})
		return
	}

	tx, err := h.portfolioService.CancelPolicy(c.Request.Context(), policyID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.snapshotAfterTrade(c)
	c.JSON(http.StatusOK, tx)
}

func (h *PortfolioHandler) GetAllocation(c *gin.Context) {
	alloc, err := h.reportService.Allocation(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alloc)
}

func (h *PortfolioHandler) GetPerformance(c *gin.Context) {
	months := 12
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "months must be a positive integer"})
			return
		}
		months = parsed
	}

	points, err := h.snapshotService.History(months)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": months, "points": points})
}

func (h *PortfolioHandler) GetMonthlyChange(c *gin.Context) {
	change, err := h.reportService.MonthOverMonthChange()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, change)
}

func (h *PortfolioHandler) GetBestPerformer(c *gin.Context) {
	best, err := h.reportService.BestPerformer(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if best == nil {
		c.JSON(http.StatusOK, gin.H{"best_performer": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"best_performer": best})
}

// snapshotAfterTrade refreshes today's snapshot after a ledger change. A
// snapshot failure never fails the trade itself.
func (h *PortfolioHandler) snapshotAfterTrade(c *gin.Context) {
	if _, err := h.snapshotService.RecordToday(c.Request.Context()); err != nil {
		log.Printf("portfolio: snapshot after trade failed: %v", err)
	}
}
