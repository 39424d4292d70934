package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/jinro-backend/internal/model"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
	"github.com/stemsi/jinro-backend/internal/visual"
)

type VisualizationHandler struct {
	data service.DataService
}

func NewVisualizationHandler(data service.DataService) *VisualizationHandler {
	return &VisualizationHandler{data: data}
}

// Get godoc
// GET /api/v1/visualizations/:kind
// Returns a table or a chart specification.
func (h *VisualizationHandler) Get(c *gin.Context) {
	kind, ok := model.ParseKind(c.Param("kind"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownVisualization)
		return
	}
	r, err := h.data.Visualization(kind)
	if err != nil {
		failVisualization(c, err)
		return
	}
	response.Success(c, http.StatusOK, r)
}

// PNG godoc
// GET /api/v1/visualizations/:kind/png
func (h *VisualizationHandler) PNG(c *gin.Context) {
	kind, ok := model.ParseKind(c.Param("kind"))
	if !ok {
		response.Fail(c, http.StatusNotFound, response.ErrUnknownVisualization)
		return
	}
	raw, err := h.data.ChartPNG(c.Request.Context(), kind)
	if err != nil {
		failVisualization(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", raw)
}

func failVisualization(c *gin.Context, err error) {
	switch {
	case errors.Is(err, visual.ErrUnknownKind):
		response.Fail(c, http.StatusNotFound, response.ErrUnknownVisualization)
	case errors.Is(err, service.ErrNotAChart):
		response.Fail(c, http.StatusUnprocessableEntity, response.ErrNotAChart)
	case errors.Is(err, service.ErrChartsDisabled):
		response.Fail(c, http.StatusServiceUnavailable, response.ErrChartsDisabled)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
