package handlers

import (
	"github.com/gin-gonic/gin"

	"desaparecidos/internal/domain/registry"
	"desaparecidos/internal/infrastructure/http/v1/dto"
)

// RegistryHandler serves registry data as JSON.
type RegistryHandler struct {
	*BaseHandler
	service *registry.Service
}

// NewRegistryHandler creates a new registry handler.
func NewRegistryHandler(base *BaseHandler, service *registry.Service) *RegistryHandler {
	return &RegistryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Statistics handles GET /api/v1/estatisticas
func (h *RegistryHandler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromStatistics(stats))
}

// Search handles GET /api/v1/pessoas
func (h *RegistryHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if !h.BindQuery(c, &req) {
		return
	}

	res, err := h.service.Search(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSearchResult(res))
}

// Random handles GET /api/v1/pessoas/aleatorias?registros=N
func (h *RegistryHandler) Random(c *gin.Context) {
	persons, err := h.service.Random(c.Request.Context(), h.ParseIntQuery(c, "registros", 0))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(persons))
}

// Person handles GET /api/v1/pessoas/:id
func (h *RegistryHandler) Person(c *gin.Context) {
	id, err := h.ParseID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	detail, err := h.service.PersonDetail(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromPersonDetail(detail))
}

// OccurrenceInfo handles GET /api/v1/ocorrencias/:id/informacoes
func (h *RegistryHandler) OccurrenceInfo(c *gin.Context) {
	id, err := h.ParseID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	infos, err := h.service.OccurrenceInfo(c.Request.Context(), id)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(infos))
}
