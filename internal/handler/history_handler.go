package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/topic"
)

const maxListLimit = 50

type HistoryHandler struct {
	history service.HistoryService
	log     zerolog.Logger
}

func NewHistoryHandler(history service.HistoryService, log zerolog.Logger) *HistoryHandler {
	return &HistoryHandler{
		history: history,
		log:     log.With().Str("component", "history_handler").Logger(),
	}
}

// limitQuery parses ?limit=, falling back to def when absent.
func limitQuery(c *gin.Context, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxListLimit {
		return 0, false
	}
	return n, true
}

// Recent godoc
// GET /api/v1/history?limit=5
// Lists recent exchange summaries, newest first.
func (h *HistoryHandler) Recent(c *gin.Context) {
	limit, ok := limitQuery(c, service.DefaultRecentLimit)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidQuery)
		return
	}
	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read history")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// Popular godoc
// GET /api/v1/history/popular?limit=5
func (h *HistoryHandler) Popular(c *gin.Context) {
	limit, ok := limitQuery(c, topic.DefaultPopularLimit)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidQuery)
		return
	}
	topics, err := h.history.Popular(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to read history")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"topics": topics})
}
