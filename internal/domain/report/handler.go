package report

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"beachbox/internal/pkg/request"
	"beachbox/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reports := r.Group("/relatorios")
	{
		reports.GET("/diario", h.Daily)
		reports.GET("/diario/pdf", h.DailyPDF)
		reports.POST("/customizado", h.Custom)
	}
}

// Daily handles GET /relatorios/diario
// @Summary Revenue and occupancy for one day
// @Param data query string false "YYYY-MM-DD, defaults to today"
// @Router /relatorios/diario [get]
func (h *Handler) Daily(c *gin.Context) {
	d, err := h.service.DailyFor(c.Request.Context(), c.Query("data"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Relatório diário gerado com sucesso", d)
}

// DailyPDF handles GET /relatorios/diario/pdf
func (h *Handler) DailyPDF(c *gin.Context) {
	d, err := h.service.DailyFor(c.Request.Context(), c.Query("data"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	pdfBytes, err := RenderDailyPDF(d, time.Now())
	if err != nil {
		response.Internal(c, fmt.Errorf("render daily pdf: %w", err))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, dailyPDFName(d)))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Custom handles POST /relatorios/customizado
// @Summary Revenue over a date range, bucketed by date
// @Router /relatorios/customizado [post]
func (h *Handler) Custom(c *gin.Context) {
	var req CustomRequest
	if !request.BindJSON(c, &req) {
		return
	}

	out, err := h.service.Custom(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Relatório customizado gerado com sucesso", out)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidDate):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "Data inválida, use AAAA-MM-DD",
			map[string]string{"data": "date"})
	case errors.Is(err, ErrInvalidRange):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "A data final não pode ser anterior à data inicial",
			map[string]string{"data_fim": "gtefield"})
	case errors.Is(err, ErrRangeTooLong):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("O período não pode passar de %d dias", h.service.MaxDays()),
			map[string]string{"data_fim": "max_range"})
	default:
		response.Internal(c, err)
	}
}
