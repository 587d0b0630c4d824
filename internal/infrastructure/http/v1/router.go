// Package v1 wires the portal's pages and JSON API.
package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/domain/registry"
	"desaparecidos/internal/domain/submission"
	"desaparecidos/internal/infrastructure/http/v1/handlers"
	"desaparecidos/internal/infrastructure/http/v1/middleware"
	"desaparecidos/internal/infrastructure/http/web"
	"desaparecidos/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Registry reads persons and statistics
	Registry *registry.Service

	// Submissions accepts citizen forms
	Submissions *submission.Service

	// Upstream is pinged by the readiness probe
	Upstream handlers.Pinger

	// Renderer renders pages; nil uses the embedded templates
	Renderer *web.Renderer

	// Logger for request logging
	Logger *logger.Logger

	// MaxUploadBytes bounds form posts
	MaxUploadBytes int64

	// Version is reported by /health/info
	Version string

	// Debug switches gin to debug mode
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}
	if cfg.Renderer == nil {
		cfg.Renderer = web.MustNewRenderer()
	}

	handlers.RegisterValidators()

	router := gin.New()
	router.HTMLRender = cfg.Renderer
	router.MaxMultipartMemory = max(cfg.MaxUploadBytes, 8<<20)

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.ClientContext())
	router.Use(middleware.Metrics())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	router.StaticFS("/static", web.Static())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	healthHandler := handlers.NewHealthHandler(cfg.Upstream, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	baseHandler := handlers.NewBaseHandler(cfg.MaxUploadBytes)

	registerPageRoutes(router, baseHandler, cfg)
	registerAPIRoutes(router.Group("/api"), baseHandler, cfg)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{
				"code":    apperror.CodeNotFound,
				"message": "route not found",
			})
			return
		}
		c.HTML(http.StatusNotFound, web.PageError, middleware.ErrorView{
			Title:     "Página não encontrada",
			Status:    http.StatusNotFound,
			RequestID: c.GetString("request_id"),
		})
	})

	return router
}

// registerPageRoutes registers the server-rendered pages.
func registerPageRoutes(router *gin.Engine, base *handlers.BaseHandler, cfg RouterConfig) {
	h := handlers.NewPageHandler(base, cfg.Registry, cfg.Submissions)

	pages := router.Group("")
	pages.Use(middleware.HTMLErrors(web.PageError))
	{
		pages.GET("/", h.Home)
		pages.GET("/buscar", h.Search)
		pages.GET("/pessoa/:id", h.Person)
		pages.GET("/sobre", h.About)

		RegisterFormRoutes(pages, "/informacoes/:id", FormRoutes{Show: h.TipForm, Submit: h.SubmitTip})
		RegisterFormRoutes(pages, "/reportar-desaparecido", FormRoutes{Show: h.ReportForm, Submit: h.SubmitReport})
		RegisterFormRoutes(pages, "/contato", FormRoutes{Show: h.ContactForm, Submit: h.SubmitContact})
	}
}

// registerAPIRoutes registers JSON endpoints.
func registerAPIRoutes(api *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	submissions := handlers.NewSubmissionHandler(base, cfg.Submissions)
	api.POST("/informacoes/:id", submissions.SubmitTip)

	reg := handlers.NewRegistryHandler(base, cfg.Registry)
	masks := handlers.NewMaskHandler(base)

	v1 := api.Group("/v1")
	{
		v1.GET("/estatisticas", reg.Statistics)
		v1.GET("/pessoas", reg.Search)
		v1.GET("/pessoas/aleatorias", reg.Random)
		v1.GET("/pessoas/:id", reg.Person)
		v1.GET("/ocorrencias/:id/informacoes", reg.OccurrenceInfo)
		v1.POST("/mascara", masks.Apply)
	}
}
