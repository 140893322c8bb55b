package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunmehra/folio-tracker/backend/internal/market"
	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/services"
)

type MarketHandler struct {
	oracle             *market.Oracle
	leaderboardService *services.LeaderboardService
	priceWorker        *services.PriceWorker
}

func NewMarketHandler(oracle *market.Oracle, leaderboard *services.LeaderboardService, worker *services.PriceWorker) *MarketHandler {
	return &MarketHandler{
		oracle:             oracle,
		leaderboardService: leaderboard,
		priceWorker:        worker,
	}
}

func (h *MarketHandler) GetQuotes(c *gin.Context) {
	class := models.AssetClass(c.Param("class"))
	if !class.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "class must be one of stock, crypto, insurance"})
		return
	}

	quotes, err := h.oracle.FetchPrices(c.Request.Context(), class)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quotes)
}

func (h *MarketHandler) GetPriceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.priceWorker.Status())
}

func (h *MarketHandler) GetLeaderboard(c *gin.Context) {
	c.JSON(http.StatusOK, h.leaderboardService.Top())
}
