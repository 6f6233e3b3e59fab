package unit

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

// List handles GET /unidades
// @Summary List units
// @Param q query string false "Search by name or location"
// @Param page query int false "Page (1-based)"
// @Param limit query int false "Page size"
// @Param sort query string false "nome | localizacao | id, prefix - for descending"
// @Router /unidades [get]
func (h *Handler) List(c *gin.Context) {
	q, err := listquery.Parse(c.Request.URL.Query(), sortColumns)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	units, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.Internal(c, err)
		return
	}

	msg := fmt.Sprintf("%d unidades encontradas", len(units))
	if q.Paged {
		response.SuccessWithMeta(c, http.StatusOK, msg, units, &response.Meta{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: q.TotalPages(total),
		})
		return
	}
	response.Success(c, http.StatusOK, msg, units)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", u)
}

// Create handles POST /unidades
func (h *Handler) Create(c *gin.Context) {
	var req UnitRequest
	if !request.BindJSON(c, &req) {
		return
	}

	u, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Unidade criada com sucesso", u)
}

// Update handles PUT /unidades/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	var req UnitRequest
	if !request.BindJSON(c, &req) {
		return
	}

	u, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Unidade com ID %d atualizada com sucesso", id), u)
}

// Delete handles DELETE /unidades/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, fmt.Sprintf("Unidade com ID %d excluída com sucesso", id), nil)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Unidade não encontrada")
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "Unidade possui quadras vinculadas")
	default:
		response.Internal(c, err)
	}
}
