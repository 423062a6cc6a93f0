package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type createEventRequest struct {
	ImageURL string `json:"image_url"`
	Title    string `json:"title" binding:"required"`
	Caption  string `json:"caption"`
	Time     string `json:"time" binding:"required"`
	Location string `json:"location" binding:"required"`
}

func (h *Handler) createEvent(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, http.StatusBadRequest, err.Error())
		return
	}

	at, err := time.Parse(time.RFC3339, req.Time)
	if err != nil {
		respondErr(c, http.StatusBadRequest, "time must be RFC3339")
		return
	}

	event, err := h.events.CreateEvent(c.Request.Context(), userID, req.ImageURL, req.Title, req.Caption, req.Location, at)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	respondOK(c, http.StatusCreated, eventToResponse(*event))
}

func (h *Handler) listEvents(c *gin.Context) {
	events, err := h.events.ListEvents(c.Request.Context())
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"events": eventsToResponse(events)})
}

func (h *Handler) getEvent(c *gin.Context) {
	id, ok := pathID(c, "eventID")
	if !ok {
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, eventToResponse(*event))
}

func (h *Handler) deleteEvent(c *gin.Context) {
	id, ok := pathID(c, "eventID")
	if !ok {
		return
	}

	event, err := h.events.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}

	if err := h.events.DeleteEvent(c.Request.Context(), id); err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, eventToResponse(*event))
}

func (h *Handler) saveEvent(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}

	if err := h.events.SaveEvent(c.Request.Context(), userID, eventID); err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"saved": eventID})
}

func (h *Handler) attendEvent(c *gin.Context) {
	userID, ok := pathID(c, "userID")
	if !ok {
		return
	}
	eventID, ok := pathID(c, "eventID")
	if !ok {
		return
	}

	event, err := h.events.AttendEvent(c.Request.Context(), userID, eventID)
	if err != nil {
		h.respondServiceErr(c, err)
		return
	}
	respondOK(c, http.StatusOK, eventToResponse(*event))
}
