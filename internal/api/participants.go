package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/info-mnml/Otokogi/internal/middleware"
)

type createParticipantRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *handlers) createParticipant(c *gin.Context) {
	var req createParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	participant, err := h.svc.Participants.CreateParticipant(c.Request.Context(), middleware.UserID(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, participant)
}

func (h *handlers) listParticipants(c *gin.Context) {
	participants, err := h.svc.Participants.ListParticipants(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

func (h *handlers) deleteParticipant(c *gin.Context) {
	if err := h.svc.Participants.DeleteParticipant(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
