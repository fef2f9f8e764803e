package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/info-mnml/Otokogi/internal/middleware"
	"github.com/info-mnml/Otokogi/internal/models"
)

func (h *handlers) participantStats(c *gin.Context) {
	stats, err := h.svc.Stats.ParticipantStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handlers) eventStats(c *gin.Context) {
	stats, err := h.svc.Stats.EventStats(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handlers) allRoundResults(c *gin.Context) {
	results, err := h.svc.Stats.AllRoundResults(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *handlers) migrate(c *gin.Context) {
	var snapshot models.Snapshot
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		badRequest(c, err)
		return
	}

	stats, err := h.svc.Migration.Migrate(c.Request.Context(), middleware.UserID(c), &snapshot)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}
