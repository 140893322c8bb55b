package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjunmehra/folio-tracker/backend/internal/models"
	"github.com/arjunmehra/folio-tracker/backend/internal/services"
)

type BalanceHandler struct {
	balanceService *services.BalanceService
}

func NewBalanceHandler(balance *services.BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceService: balance}
}

func (h *BalanceHandler) GetBalance(c *gin.Context) {
	amount, err := h.balanceService.Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

func (h *BalanceHandler) Deposit(c *gin.Context) {
	var req models.BalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := h.balanceService.Deposit(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}

func (h *BalanceHandler) Withdraw(c *gin.Context) {
	var req models.BalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	amount, err := h.balanceService.Withdraw(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"amount": amount})
}
