package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/info-mnml/Otokogi/internal/middleware"
	"github.com/info-mnml/Otokogi/internal/service"
)

func (h *handlers) createEvent(c *gin.Context) {
	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.svc.Events.CreateEvent(c.Request.Context(), middleware.UserID(c), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *handlers) getEvent(c *gin.Context) {
	event, err := h.svc.Events.GetEvent(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *handlers) listEvents(c *gin.Context) {
	events, err := h.svc.Events.ListEvents(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *handlers) updateEvent(c *gin.Context) {
	var in service.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	event, err := h.svc.Events.UpdateEvent(c.Request.Context(), middleware.UserID(c), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *handlers) deleteEvent(c *gin.Context) {
	if err := h.svc.Events.DeleteEvent(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
