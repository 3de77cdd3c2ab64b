package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every error answer. Code is a stable machine-readable key
// (e.g. "review.not_allowed"); Message is already translated.
type ErrorResponse struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler recovers from panics in later handlers and answers 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic",
					zap.Any("error", err),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				AbortWithError(c, http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// AbortWithError logs resp and stops the handler chain with it. Client errors log at
// warn, server errors at error.
func AbortWithError(c *gin.Context, status int, resp ErrorResponse) {
	fields := []zap.Field{
		zap.Int("status", status),
		zap.String("code", resp.Code),
		zap.String("details", resp.Details),
	}
	if status >= http.StatusInternalServerError {
		GetLogger().Error(resp.Message, fields...)
	} else {
		GetLogger().Warn(resp.Message, fields...)
	}
	c.AbortWithStatusJSON(status, resp)
}

// JSONError answers with an uncoded error.
func JSONError(c *gin.Context, status int, message string, details string) {
	AbortWithError(c, status, ErrorResponse{Message: message, Details: details})
}
