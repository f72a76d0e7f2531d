package response

import (
	"github.com/gin-gonic/gin"

	domainerrors "github.com/nileshnishad/laboursampark-backend/internal/domain/errors"
)

// Envelope is the uniform JSON shape every endpoint responds with
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

// Success sends a success envelope
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessWithCount sends a success envelope carrying a collection count
func SuccessWithCount(c *gin.Context, status int, message string, data interface{}, count int) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
	})
}

// Error sends an error envelope. Unrecognized errors become a 500 whose
// message echoes the cause for operator diagnosis without leaking secrets.
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	envelope := Envelope{
		Success: false,
		Message: appErr.Message,
		Error:   appErr.Message,
	}
	if appErr.Status >= 500 && appErr.Err != nil {
		envelope.Error = appErr.Err.Error()
	}

	c.JSON(appErr.Status, envelope)
}
