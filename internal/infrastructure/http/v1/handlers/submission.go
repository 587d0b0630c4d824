package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"desaparecidos/internal/domain/submission"
	"desaparecidos/internal/infrastructure/http/v1/dto"
	"desaparecidos/internal/infrastructure/metrics"
)

// TipAcceptedMessage confirms an accepted tip.
const TipAcceptedMessage = "Informações recebidas com sucesso"

// SubmissionHandler accepts forms posted by scripts and the page JS.
type SubmissionHandler struct {
	*BaseHandler
	service *submission.Service
}

// NewSubmissionHandler creates a new submission handler.
func NewSubmissionHandler(base *BaseHandler, service *submission.Service) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler: base,
		service:     service,
	}
}

// isTipPhoto matches the foto_0, foto_1, ... upload fields.
func isTipPhoto(field string) bool {
	return strings.HasPrefix(field, "foto_")
}

// SubmitTip handles POST /api/informacoes/:id
func (h *SubmissionHandler) SubmitTip(c *gin.Context) {
	receipt, err := h.submitTip(c)
	metrics.RecordSubmission("tip", err)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Success(c, TipAcceptedMessage, dto.FromTipReceipt(c.Param("id"), receipt))
}

func (h *SubmissionHandler) submitTip(c *gin.Context) (*submission.TipReceipt, error) {
	id, err := h.ParseID(c, "id")
	if err != nil {
		return nil, err
	}

	var form dto.TipForm
	if err := h.BindForm(c, &form); err != nil {
		return nil, err
	}
	photos, err := h.attachments(c, isTipPhoto)
	if err != nil {
		return nil, err
	}
	return h.service.SubmitTip(c.Request.Context(), form.ToTip(id, photos))
}
