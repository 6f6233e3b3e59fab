// Package request holds the binding steps every handler repeats.
package request

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"beachbox/internal/pkg/response"
	"beachbox/internal/pkg/validator"
)

// ParamID reads a positive :id path parameter. On failure the response is
// already written and ok is false.
func ParamID(c *gin.Context) (id int64, ok bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "ID inválido")
		return 0, false
	}
	return id, true
}

// BindJSON decodes the body into dst and runs struct validation.
// Malformed JSON answers 400, failed rules answer 422 with per-field details.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "JSON inválido")
		return false
	}
	if errs := validator.Validate(dst); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "Dados inválidos", errs)
		return false
	}
	return true
}
