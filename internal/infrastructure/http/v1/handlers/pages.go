package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/domain/registry"
	"desaparecidos/internal/domain/submission"
	"desaparecidos/internal/infrastructure/http/v1/dto"
	"desaparecidos/internal/infrastructure/http/web"
	"desaparecidos/internal/infrastructure/metrics"
	"desaparecidos/pkg/logger"
)

// PageHandler serves the server-rendered portal pages.
//
// Upstream failures never produce an error page: the page is rendered
// with whatever loaded and a notice explaining what did not.
type PageHandler struct {
	*BaseHandler
	registry    *registry.Service
	submissions *submission.Service
}

// NewPageHandler creates a new page handler.
func NewPageHandler(base *BaseHandler, reg *registry.Service, subs *submission.Service) *PageHandler {
	return &PageHandler{
		BaseHandler: base,
		registry:    reg,
		submissions: subs,
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	req := registry.HomeRequest{
		MissingPage: max(0, h.ParseIntQuery(c, web.ParamMissingPage, 1)-1),
		LocatedPage: max(0, h.ParseIntQuery(c, web.ParamLocatedPage, 1)-1),
	}
	home := h.registry.Home(c.Request.Context(), req)
	c.HTML(http.StatusOK, web.PageHome, web.NewHomeView(home, req))
}

// Search handles GET /buscar
func (h *PageHandler) Search(c *gin.Context) {
	var req dto.PageSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		filter := registry.SearchFilter{Name: c.Query("nome")}.Normalize()
		c.HTML(http.StatusOK, web.PageSearch, web.NewSearchView(filter,
			nil, apperror.NewInvalidInput("query", err.Error())))
		return
	}

	filter := req.ToFilter()
	res, err := h.registry.Search(c.Request.Context(), filter)
	c.HTML(http.StatusOK, web.PageSearch, web.NewSearchView(filter.Normalize(), res, err))
}

// Person handles GET /pessoa/:id
func (h *PageHandler) Person(c *gin.Context) {
	id, err := h.ParseID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	detail, err := h.registry.PersonDetail(c.Request.Context(), id)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, web.PagePerson, web.NewPersonView(detail))
	case apperror.IsNotFound(err):
		h.Error(c, err)
	default:
		view := web.PersonView{Base: web.Base{Title: "Pessoa", Active: web.PageSearch, Notice: web.ErrorNotice(err)}}
		c.HTML(http.StatusOK, web.PagePerson, view)
	}
}

// tipView loads the person a tip is about. A failed lookup other than
// not-found still shows the form.
func (h *PageHandler) tipView(c *gin.Context, id int64) (web.FormView, bool) {
	view := web.NewFormView("Enviar informações", web.PageSearch, c.Request.URL.Path)
	p, err := h.registry.Person(c.Request.Context(), id)
	switch {
	case err == nil:
		view.Person = &p
	case apperror.IsNotFound(err):
		h.Error(c, err)
		return view, false
	default:
		view.Notice = web.ErrorNotice(err)
	}
	return view, true
}

// TipForm handles GET /informacoes/:id
func (h *PageHandler) TipForm(c *gin.Context) {
	id, err := h.ParseID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}
	view, ok := h.tipView(c, id)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, web.PageTip, view)
}

// SubmitTip handles POST /informacoes/:id
func (h *PageHandler) SubmitTip(c *gin.Context) {
	id, err := h.ParseID(c, "id")
	if err != nil {
		h.Error(c, err)
		return
	}

	var form dto.TipForm
	receipt, err := func() (*submission.TipReceipt, error) {
		if err := h.BindForm(c, &form); err != nil {
			return nil, err
		}
		photos, err := h.attachments(c, isTipPhoto)
		if err != nil {
			return nil, err
		}
		return h.submissions.SubmitTip(c.Request.Context(), form.ToTip(id, photos))
	}()
	metrics.RecordSubmission("tip", err)

	view, ok := h.tipView(c, id)
	if !ok {
		return
	}
	h.renderForm(c, web.PageTip, view, err, TipAcceptedMessage, receipt)
}

// ReportForm handles GET /reportar-desaparecido
func (h *PageHandler) ReportForm(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageReport, reportView(c))
}

func reportView(c *gin.Context) web.FormView {
	return web.NewFormView("Reportar desaparecimento", web.PageReport, c.Request.URL.Path)
}

// SubmitReport handles POST /reportar-desaparecido
func (h *PageHandler) SubmitReport(c *gin.Context) {
	var form dto.MissingReportForm
	receipt, err := func() (*submission.MissingReportReceipt, error) {
		if err := h.BindForm(c, &form); err != nil {
			return nil, err
		}
		photos, err := h.attachments(c, func(f string) bool { return f == "fotos" })
		if err != nil {
			return nil, err
		}
		return h.submissions.SubmitMissingReport(c.Request.Context(), form.ToReport(photos))
	}()
	metrics.RecordSubmission("missing_report", err)

	h.renderForm(c, web.PageReport, reportView(c), err,
		"Relato enviado com sucesso. As autoridades serão notificadas.", receipt)
}

// ContactForm handles GET /contato
func (h *PageHandler) ContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageContact, contactView(c))
}

func contactView(c *gin.Context) web.FormView {
	return web.NewFormView("Contato", web.PageContact, c.Request.URL.Path)
}

// SubmitContact handles POST /contato
func (h *PageHandler) SubmitContact(c *gin.Context) {
	var form dto.ContactForm
	receipt, err := func() (*submission.ContactReceipt, error) {
		if err := h.BindForm(c, &form); err != nil {
			return nil, err
		}
		return h.submissions.SubmitContact(c.Request.Context(), form.ToMessage())
	}()
	metrics.RecordSubmission("contact", err)

	h.renderForm(c, web.PageContact, contactView(c), err,
		"Mensagem enviada com sucesso. Responderemos em breve.", receipt)
}

// About handles GET /sobre
func (h *PageHandler) About(c *gin.Context) {
	c.HTML(http.StatusOK, web.PageAbout, web.Base{Title: "Sobre", Active: web.PageAbout})
}

// renderForm shows either the confirmation or the rejected form with the
// posted values kept.
func (h *PageHandler) renderForm(c *gin.Context, page string, view web.FormView, err error, okMessage string, receipt any) {
	if err != nil {
		if status := apperror.GetHTTPStatus(err); status >= http.StatusInternalServerError {
			logger.Error(c.Request.Context(), "form submission failed", "page", page, "error", err)
		}
		for k, v := range c.Request.PostForm {
			if len(v) > 0 {
				view.Values[k] = v[0]
			}
		}
		c.HTML(apperror.GetHTTPStatus(err), page, view.Reject(err))
		return
	}
	c.HTML(http.StatusOK, page, view.Accept("Enviado", okMessage, receipt))
}
