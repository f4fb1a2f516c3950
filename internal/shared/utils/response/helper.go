package response

import (
	"github.com/gin-gonic/gin"

	"cinebook/internal/shared/apperrors"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps an application error to the standard envelope.
func RespondError(c *gin.Context, err error) {
	code := apperrors.HTTPStatus(err)
	RespondJSON(c, "error", code, apperrors.Message(err), nil, nil)
}
