package booking

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"beachbox/internal/pkg/listquery"
	"beachbox/internal/pkg/request"
	"beachbox/internal/pkg/response"
	"beachbox/internal/pkg/wallclock"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /agendamentos
// @Summary List bookings with client, court and unit names
// @Param q query string false "Search by client or court name"
// @Param unidade query int false "Only bookings of this unit"
// @Param data query string false "Only bookings on this date (YYYY-MM-DD)"
// @Router /agendamentos [get]
func (h *Handler) List(c *gin.Context) {
	values := c.Request.URL.Query()
	q, err := listquery.Parse(values, SortColumns)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	var f Filter
	if s := strings.TrimSpace(values.Get("unidade")); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "Parâmetro 'unidade' inválido")
			return
		}
		f.UnitID = id
	}
	if s := strings.TrimSpace(values.Get("data")); s != "" {
		day, err := wallclock.ParseDate(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Parâmetro 'data' inválido, use AAAA-MM-DD")
			return
		}
		f.Day = &day
	}

	bookings, total, err := h.service.List(c.Request.Context(), q, f)
	if err != nil {
		response.Internal(c, err)
		return
	}

	msg := fmt.Sprintf("%d agendamentos encontrados", len(bookings))
	if q.Paged {
		response.SuccessWithMeta(c, http.StatusOK, msg, bookings, &response.Meta{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: q.TotalPages(total),
		})
		return
	}
	response.Success(c, http.StatusOK, msg, bookings)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	b, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", b)
}

func (h *Handler) Create(c *gin.Context) {
	var req BookingRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Agendamento criado com sucesso", b)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	var req BookingRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Agendamento com ID %d atualizado com sucesso", id), b)
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
	response.Success(c, http.StatusOK, fmt.Sprintf("Agendamento com ID %d excluído com sucesso", id), nil)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Agendamento não encontrado")
	case errors.Is(err, ErrInvalidDateTime):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity,
			"Data e hora inválidas, use AAAA-MM-DDTHH:MM",
			map[string]string{"dataHoraAgendamento": "datetime"})
	case errors.Is(err, ErrClientNotFound):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "Cliente não encontrado",
			map[string]string{"idCliente": "exists"})
	case errors.Is(err, ErrCourtNotFound):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "Quadra não encontrada",
			map[string]string{"idQuadra": "exists"})
	case errors.Is(err, ErrCourtUnavailable):
		response.Error(c, http.StatusConflict, "A quadra selecionada não está disponível para agendamento.")
	case errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "Já existe um agendamento para esta quadra no horário selecionado.")
	default:
		response.Internal(c, err)
	}
}
