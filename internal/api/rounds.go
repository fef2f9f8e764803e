package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/info-mnml/Otokogi/internal/ledger"
	"github.com/info-mnml/Otokogi/internal/middleware"
)

type outcomeRequest struct {
	ParticipantID string `json:"participantId" binding:"required"`
	Won           bool   `json:"won"`
	PaidAmount    int64  `json:"paidAmount"`
}

type roundRequest struct {
	Outcomes []outcomeRequest `json:"outcomes"`
}

func (r roundRequest) toOutcomes() []ledger.Outcome {
	outcomes := make([]ledger.Outcome, len(r.Outcomes))
	for i, o := range r.Outcomes {
		outcomes[i] = ledger.Outcome{
			ParticipantID: o.ParticipantID,
			Won:           o.Won,
			PaidAmount:    o.PaidAmount,
		}
	}
	return outcomes
}

// recordRound upserts outcomes for participants already in the round.
func (h *handlers) recordRound(c *gin.Context) {
	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rows, err := h.svc.Rounds.RecordRound(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.toOutcomes())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rows)
}

// replaceRound swaps the event's whole roster and outcome set.
func (h *handlers) replaceRound(c *gin.Context) {
	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rows, err := h.svc.Rounds.ReplaceRoundParticipants(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.toOutcomes())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *handlers) hasResult(c *gin.Context) {
	hasResult, err := h.svc.Stats.HasResult(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasResult": hasResult})
}
