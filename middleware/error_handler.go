package middleware

import (
	"net/http"
	"runtime/debug"

	"swiftaid/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler is the only place errors become HTTP responses. Handlers
// report failures with c.Error and return.
type ErrorHandler struct {
	logger *logrus.Logger
}

func NewErrorHandler(logger *logrus.Logger) *ErrorHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ErrorHandler{logger: logger}
}

// Handle returns the error handling middleware
func (eh *ErrorHandler) Handle() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				eh.handlePanic(c, err)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			eh.handleGinErrors(c)
		}
	})
}

// handlePanic logs the stack and answers with the generic 500 envelope.
func (eh *ErrorHandler) handlePanic(c *gin.Context, err interface{}) {
	eh.logger.WithFields(logrus.Fields{
		"panic":      err,
		"stack":      string(debug.Stack()),
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
	}).Error("Panic recovered")

	if !c.Writer.Written() {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
	c.Abort()
}

func (eh *ErrorHandler) handleGinErrors(c *gin.Context) {
	lastError := c.Errors.Last()
	if lastError == nil {
		return
	}

	status := utils.HTTPStatus(lastError.Err)
	eh.logError(c, status, lastError.Err)

	if c.Writer.Written() {
		return
	}
	utils.ErrorResponse(c, status, utils.PublicMessage(lastError.Err))
}

func (eh *ErrorHandler) logError(c *gin.Context, status int, err error) {
	fields := logrus.Fields{
		"error":      err.Error(),
		"status":     status,
		"request_id": c.GetString("request_id"),
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"ip":         c.ClientIP(),
	}

	switch {
	case status >= http.StatusInternalServerError:
		eh.logger.WithFields(fields).Error("Server error")
	case status == http.StatusUnauthorized:
		eh.logger.WithFields(fields).Info("Unauthorized request")
	default:
		eh.logger.WithFields(fields).Warn("Client error")
	}
}
