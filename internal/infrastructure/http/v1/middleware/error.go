package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/pkg/logger"
)

// htmlErrorKey marks requests whose errors are rendered as a page.
const htmlErrorKey = "html_error_template"

// HTMLErrors makes ErrorHandler render errors with the named template
// instead of JSON. Used on the server-rendered page group.
func HTMLErrors(template string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(htmlErrorKey, template)
		c.Next()
	}
}

// ErrorView is the data passed to the error page template. Title, Active
// and Notice satisfy the shared page layout.
type ErrorView struct {
	Title     string
	Active    string
	Notice    any
	Status    int
	Code      string
	Message   string
	RequestID string
}

// ErrorHandler middleware transforms errors into consistent responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		appErr, ok := apperror.AsAppError(err)
		if !ok {
			logger.Error(c.Request.Context(), "unhandled error",
				"error", err,
			)
			appErr = apperror.NewInternal(err).
				WithDetail("request_id", c.GetString("request_id"))
		} else if appErr.Err != nil {
			logger.Error(c.Request.Context(), "request error",
				"code", appErr.Code,
				"cause", appErr.Err,
			)
		}

		respond(c, appErr)
	}
}

// respond writes appErr as a page or as JSON.
func respond(c *gin.Context, appErr *apperror.AppError) {
	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	if tmpl := c.GetString(htmlErrorKey); tmpl != "" {
		c.HTML(status, tmpl, ErrorView{
			Title:     "Erro",
			Status:    status,
			Code:      appErr.Code,
			Message:   appErr.Message,
			RequestID: c.GetString("request_id"),
		})
		return
	}

	c.JSON(status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"details": appErr.Details,
	})
}
