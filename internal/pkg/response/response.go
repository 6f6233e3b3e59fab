package response

import "github.com/gin-gonic/gin"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Meta describes the page returned by a paginated list.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Envelope is the single body shape of every endpoint.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Meta    *Meta  `json:"meta,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, message string, data any, meta *Meta) {
	c.JSON(statusCode, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Status:  StatusError,
		Message: message,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, message string, details any) {
	c.AbortWithStatusJSON(statusCode, Envelope{
		Status:  StatusError,
		Message: message,
		Details: details,
	})
}

// Internal records err for the error logger and answers with a generic 500.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, 500, "Erro interno do servidor")
}
