package handlers

import (
	"github.com/gin-gonic/gin"

	"desaparecidos/internal/infrastructure/http/v1/dto"
	"desaparecidos/pkg/mask"
)

// MaskHandler exposes the input mask formatter.
type MaskHandler struct {
	*BaseHandler
}

// NewMaskHandler creates a new mask handler.
func NewMaskHandler(base *BaseHandler) *MaskHandler {
	return &MaskHandler{BaseHandler: base}
}

// Apply handles POST /api/v1/mascara
func (h *MaskHandler) Apply(c *gin.Context) {
	var req dto.MaskRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if req.Mask == "" || req.Mask == mask.PhonePattern {
		masked := mask.FormatPhone(req.Value)
		if req.Typing {
			masked = mask.FormatPhoneTyping(req.Value)
		}
		h.OK(c, dto.MaskResponse{
			Masked:   masked,
			Mask:     mask.PhonePattern,
			Complete: mask.IsCompletePhone(masked),
		})
		return
	}

	t := mask.Parse(req.Mask)
	masked := t.Apply(req.Value)
	if req.Typing {
		masked = t.ApplyTyping(req.Value)
	}
	h.OK(c, dto.MaskResponse{
		Masked:   masked,
		Mask:     t.String(),
		Complete: len([]rune(masked)) == t.Len(),
	})
}
