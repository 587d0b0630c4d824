package v1

import (
	"github.com/gin-gonic/gin"
)

// FormRoutes pairs the GET and POST handlers of a form page.
type FormRoutes struct {
	Show   gin.HandlerFunc
	Submit gin.HandlerFunc
}

// RegisterFormRoutes mounts a form page: GET renders it, POST submits it
// and re-renders with the outcome.
//
// Usage:
//
//	RegisterFormRoutes(pages, "/contato", FormRoutes{Show: h.ContactForm, Submit: h.SubmitContact})
func RegisterFormRoutes(group *gin.RouterGroup, path string, routes FormRoutes) {
	group.GET(path, routes.Show)
	group.POST(path, routes.Submit)
}
