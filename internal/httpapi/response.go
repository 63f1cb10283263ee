package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alexanderramin/cadence/internal/app"
)

func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code app.ErrorCode, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code app.ErrorCode, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var statusByCode = map[app.ErrorCode]int{
	app.CodeNotFound:          http.StatusNotFound,
	app.CodeValidation:        http.StatusBadRequest,
	app.CodeMalformedSchedule: http.StatusUnprocessableEntity,
	app.CodePermissionDenied:  http.StatusForbidden,
	app.CodeInvalidToken:      http.StatusUnauthorized,
	app.CodeInternal:          http.StatusInternalServerError,
}

// fail writes the envelope for a use-case error. Internal errors are logged
// and their text is not echoed to the client.
func fail(c *gin.Context, logger *zap.Logger, err error) {
	code, fields := app.ClassifyError(err)
	status := statusByCode[code]
	if code == app.CodeInternal {
		_ = c.Error(err)
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, status, code, "internal server error")
		return
	}
	if len(fields) == 0 {
		Error(c, status, code, err.Error())
		return
	}
	details := make([]fieldDetail, 0, len(fields))
	for _, f := range fields {
		details = append(details, fieldDetail{Field: f.Field, Message: f.Message})
	}
	ErrorWithDetails(c, status, code, err.Error(), details)
}
