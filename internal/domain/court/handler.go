package court

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"beachbox/internal/pkg/listquery"
	"beachbox/internal/pkg/request"
	"beachbox/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /quadras
// @Summary List courts with their unit name
// @Param q query string false "Search by court or unit name"
// @Router /quadras [get]
func (h *Handler) List(c *gin.Context) {
	q, err := listquery.Parse(c.Request.URL.Query(), sortColumns)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	courts, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Internal(c, err)
		return
	}

	msg := fmt.Sprintf("%d quadras encontradas", len(courts))
	if q.Paged {
		response.SuccessWithMeta(c, http.StatusOK, msg, courts, &response.Meta{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: q.TotalPages(total),
		})
		return
	}
	response.Success(c, http.StatusOK, msg, courts)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	court, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", court)
}

func (h *Handler) Create(c *gin.Context) {
	var req CourtRequest
	if !request.BindJSON(c, &req) {
		return
	}

	court, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Quadra criada com sucesso", court)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	var req CourtRequest
	if !request.BindJSON(c, &req) {
		return
	}

	court, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Quadra com ID %d atualizada com sucesso", id), court)
}

// SetAvailability handles PATCH /quadras/:id
func (h *Handler) SetAvailability(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	var req AvailabilityRequest
	if !request.BindJSON(c, &req) {
		return
	}

	court, err := h.service.SetAvailability(c.Request.Context(), id, *req.EstaDisponivel)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK,
		fmt.Sprintf("Status de disponibilidade da quadra com ID %d atualizado com sucesso", id), court)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Quadra com ID %d excluída com sucesso", id), nil)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Quadra não encontrada")
	case errors.Is(err, ErrUnitNotFound):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "Unidade não encontrada",
			map[string]string{"idUnidade": "exists"})
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "Quadra possui agendamentos vinculados")
	default:
		response.Internal(c, err)
	}
}
