package handler

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/jinro-backend/internal/response"
	"github.com/stemsi/jinro-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DataHandler struct {
	data service.DataService
	log  zerolog.Logger
}

func NewDataHandler(data service.DataService, log zerolog.Logger) *DataHandler {
	return &DataHandler{
		data: data,
		log:  log.With().Str("component", "data_handler").Logger(),
	}
}

// GET /api/v1/data/universities
func (h *DataHandler) Universities(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"universities": h.data.Universities()})
}

// GET /api/v1/data/majors
func (h *DataHandler) Majors(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"majors": h.data.Majors()})
}

// GET /api/v1/data/admission-rates
func (h *DataHandler) AdmissionRates(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"admission_rates": h.data.AdmissionRates()})
}

// GET /api/v1/data/stats
func (h *DataHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, h.data.Stats())
}

// Export godoc
// GET /api/v1/data/export.xlsx
func (h *DataHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.data.WriteWorkbook(&buf); err != nil {
		h.log.Error().Err(err).Msg("Failed to build workbook")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="counsel-data.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
