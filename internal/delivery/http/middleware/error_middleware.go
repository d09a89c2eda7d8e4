package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"go-jobportal-backend/internal/delivery/http/response"
	"go-jobportal-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors appended to the gin context into the
// standard response envelope. Internal errors are logged server-side and
// never leak their details to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal {
				slog.Error("internal error", "path", c.FullPath(), "error", appErr.Unwrap())
			}
			response.Error(c, appErr.Code, appErr.Message, string(appErr.Kind), nil)
			return
		}

		slog.Error("unhandled error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", string(apperror.KindInternal), nil)
	}
}
