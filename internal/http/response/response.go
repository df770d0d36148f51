package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/divergex-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondServiceError maps a service error onto the wire using its embedded
// status and code, defaulting to 500/internal_error.
func RespondServiceError(c *gin.Context, err error) {
	RespondError(c, apierr.StatusOf(err), apierr.CodeOf(err), err)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
