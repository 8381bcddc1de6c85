package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"campushub/internal/middleware"
	"campushub/internal/services"
)

type PollHandler struct {
	svc *services.Services
	log *zap.Logger
}

func NewPollHandler(svc *services.Services, log *zap.Logger) *PollHandler {
	return &PollHandler{svc: svc, log: log}
}

type voteRequest struct {
	OptionID string `json:"option_id" binding:"required"`
}

// Get GET /api/posts/:id/poll returns the poll as this browser sees it.
func (h *PollHandler) Get(c *gin.Context) {
	id := middleware.CurrentIdentity(c)
	results, err := h.svc.Polls.Results(c.Request.Context(), id.ClientID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if results == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "This announcement has no poll."})
		return
	}
	c.JSON(http.StatusOK, results)
}

// Create POST /api/posts/:id/poll
func (h *PollHandler) Create(c *gin.Context) {
	var req pollRequest
	if !bindJSON(c, &req) {
		return
	}

	poll, err := h.svc.Polls.AddPoll(c.Request.Context(), middleware.CurrentIdentity(c), c.Param("id"), req.Question, req.Options)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, poll)
}

// Vote POST /api/polls/:id/vote
func (h *PollHandler) Vote(c *gin.Context) {
	var req voteRequest
	if !bindJSON(c, &req) {
		return
	}

	id := middleware.CurrentIdentity(c)
	if err := h.svc.Polls.CastVote(c.Request.Context(), id.ClientID, c.Param("id"), req.OptionID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "option_id": req.OptionID})
}
