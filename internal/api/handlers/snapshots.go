package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arjunmehra/folio-tracker/backend/internal/services"
)

type SnapshotHandler struct {
	snapshotService *services.SnapshotService
}

func NewSnapshotHandler(snapshots *services.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshots}
}

func (h *SnapshotHandler) GetHistory(c *gin.Context) {
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
	c.JSON(http.StatusOK, points)
}

// RecordNow takes a snapshot immediately (manual trigger).
func (h *SnapshotHandler) RecordNow(c *gin.Context) {
	snap, err := h.snapshotService.RecordToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}
