package client

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

// List handles GET /clientes
// @Summary List clients
// @Param q query string false "Search by name or phone"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param sort query string false "nome | telefone | id, prefix - for descending"
// @Router /clientes [get]
func (h *Handler) List(c *gin.Context) {
	q, err := listquery.Parse(c.Request.URL.Query(), sortColumns)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	clients, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Internal(c, err)
		return
	}

	msg := fmt.Sprintf("%d clientes encontrados", len(clients))
	if q.Paged {
		response.SuccessWithMeta(c, http.StatusOK, msg, clients, &response.Meta{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: q.TotalPages(total),
		})
		return
	}
	response.Success(c, http.StatusOK, msg, clients)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	cl, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", cl)
}

// Create handles POST /clientes
func (h *Handler) Create(c *gin.Context) {
	var req ClientRequest
	if !request.BindJSON(c, &req) {
		return
	}

	cl, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Cliente criado com sucesso", cl)
}

// Update handles PUT /clientes/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	var req ClientRequest
	if !request.BindJSON(c, &req) {
		return
	}

	cl, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Cliente com ID %d atualizado com sucesso", id), cl)
}

// Delete handles DELETE /clientes/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Cliente com ID %d excluído com sucesso", id), nil)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Cliente não encontrado")
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "Cliente possui agendamentos vinculados")
	default:
		response.Internal(c, err)
	}
}
