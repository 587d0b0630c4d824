package web

import (
	"net/url"
	"strconv"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/domain/registry"
	"desaparecidos/pkg/mask"
	"desaparecidos/pkg/pagewindow"
)

// NoticeKind selects the notice style.
type NoticeKind string

const (
	NoticeError   NoticeKind = "error"
	NoticeSuccess NoticeKind = "success"
)

// Notice is the toast shown above page content.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// ErrorNotice turns err into a notice in the visitor's language. Upstream
// failures keep their own message; anything unexpected gets a generic one.
func ErrorNotice(err error) *Notice {
	if err == nil {
		return nil
	}
	n := &Notice{Kind: NoticeError, Title: "Erro", Message: "Ocorreu um erro inesperado. Tente novamente."}
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		return n
	}
	switch appErr.Code {
	case apperror.CodeUpstream, apperror.CodeTimeout:
		n.Message = appErr.Message
	case apperror.CodeValidation:
		n.Title = "Verifique o formulário"
		if _, ok := appErr.Details["fields"]; ok {
			n.Message = "Por favor, preencha todos os campos obrigatórios."
		} else {
			n.Message = "Verifique os dados informados."
		}
	case apperror.CodeInvalidInput:
		n.Title = "Verifique o formulário"
		n.Message = "Verifique os dados informados."
	case apperror.CodeNotFound:
		n.Message = "Registro não encontrado."
	case apperror.CodePayloadTooLarge:
		n.Message = "Arquivo muito grande."
	case apperror.CodeUnsupportedPayload:
		n.Message = "Envie apenas imagens."
	}
	return n
}

// SuccessNotice builds a confirmation notice.
func SuccessNotice(title, message string) *Notice {
	return &Notice{Kind: NoticeSuccess, Title: title, Message: message}
}

// Base is embedded in every page view.
type Base struct {
	Title  string
	Active string
	Notice *Notice
}

// PageLink is one paginator button.
type PageLink struct {
	Label    string
	URL      string
	Current  bool
	Ellipsis bool
}

// Paginator is the rendered form of a page window.
type Paginator struct {
	Visible bool
	Links   []PageLink
	PrevURL string
	NextURL string

	// Current and Total are 1-indexed for "Página X de Y".
	Current int
	Total   int
}

// NewPaginator renders w; link builds the URL of a 0-indexed page.
func NewPaginator(w pagewindow.Window, link func(page int) string) Paginator {
	p := Paginator{
		Visible: w.Visible(),
		Current: w.Current + 1,
		Total:   w.Total,
		Links:   make([]PageLink, 0, len(w.Entries)),
	}
	if w.HasPrevious {
		p.PrevURL = link(w.Previous())
	}
	if w.HasNext {
		p.NextURL = link(w.Next())
	}
	for _, e := range w.Entries {
		if e.IsEllipsis() {
			p.Links = append(p.Links, PageLink{Label: e.Label(), Ellipsis: true})
			continue
		}
		p.Links = append(p.Links, PageLink{
			Label:   e.Label(),
			URL:     link(e.Page),
			Current: w.IsCurrent(e),
		})
	}
	return p
}

// SearchQuery encodes a filter as /buscar query parameters. Pages are
// 1-indexed in URLs.
func SearchQuery(f registry.SearchFilter) url.Values {
	q := url.Values{}
	if f.Name != "" {
		q.Set("nome", f.Name)
	}
	if f.MinAge > 0 {
		q.Set("faixaIdadeInicial", strconv.Itoa(f.MinAge))
	}
	if f.MaxAge > 0 {
		q.Set("faixaIdadeFinal", strconv.Itoa(f.MaxAge))
	}
	if f.Sex.IsFilter() {
		q.Set("sexo", string(f.Sex))
	}
	if f.Status == registry.StatusLocated {
		q.Set("status", string(f.Status))
	}
	if f.Page > 0 {
		q.Set("pagina", strconv.Itoa(f.Page+1))
	}
	return q
}

// SearchURL returns the /buscar URL for f.
func SearchURL(f registry.SearchFilter) string {
	q := SearchQuery(f)
	if len(q) == 0 {
		return "/buscar"
	}
	return "/buscar?" + q.Encode()
}

// StatusTab is a status switch on the search page.
type StatusTab struct {
	Label  string
	URL    string
	Active bool
}

// SearchView is the /buscar page.
type SearchView struct {
	Base
	Filter    registry.SearchFilter
	Persons   []registry.Person
	Total     int64
	Paginator Paginator
	Tabs      []StatusTab
	Searched  bool
}

// NewSearchView builds the search page for a (possibly nil) result.
func NewSearchView(f registry.SearchFilter, res *registry.SearchResult, err error) SearchView {
	v := SearchView{
		Base:    Base{Title: "Buscar pessoas", Active: PageSearch, Notice: ErrorNotice(err)},
		Filter:  f,
		Persons: []registry.Person{},
		Tabs: []StatusTab{
			{Label: "Desaparecidos", URL: SearchURL(f.WithStatus(registry.StatusMissing)), Active: f.Status != registry.StatusLocated},
			{Label: "Localizados", URL: SearchURL(f.WithStatus(registry.StatusLocated)), Active: f.Status == registry.StatusLocated},
		},
	}
	if res == nil {
		v.Paginator = NewPaginator(pagewindow.New(0, 1), nil)
		return v
	}
	v.Filter = res.Filter
	v.Searched = true
	v.Persons = res.Page.Content
	v.Total = res.Page.TotalElements
	v.Paginator = NewPaginator(res.Window, func(page int) string {
		return SearchURL(res.Filter.WithPage(page))
	})
	return v
}

// ListSection is one paged list on the home page.
type ListSection struct {
	Title     string
	Persons   []registry.Person
	Total     int64
	Paginator Paginator
	Failed    bool
}

// HomeView is the landing page.
type HomeView struct {
	Base
	Statistics *registry.Statistics
	Featured   []registry.Person
	Missing    ListSection
	Located    ListSection
}

// Home page query parameters, 1-indexed.
const (
	ParamMissingPage = "pagina_desaparecidos"
	ParamLocatedPage = "pagina_localizados"
)

// NewHomeView builds the landing page. req carries the current list pages
// so each paginator keeps the other list's position.
func NewHomeView(home registry.Home, req registry.HomeRequest) HomeView {
	v := HomeView{
		Base:       Base{Title: "Pessoas Desaparecidas", Active: PageHome, Notice: ErrorNotice(home.Err())},
		Statistics: home.Statistics,
		Featured:   home.Featured,
	}

	homeURL := func(missing, located int) string {
		q := url.Values{}
		if missing > 0 {
			q.Set(ParamMissingPage, strconv.Itoa(missing+1))
		}
		if located > 0 {
			q.Set(ParamLocatedPage, strconv.Itoa(located+1))
		}
		if len(q) == 0 {
			return "/"
		}
		return "/?" + q.Encode()
	}

	v.Missing = section("Pessoas desaparecidas", home.Missing, func(p int) string {
		return homeURL(p, req.LocatedPage)
	})
	v.Located = section("Pessoas localizadas", home.Located, func(p int) string {
		return homeURL(req.MissingPage, p)
	})
	return v
}

func section(title string, res *registry.SearchResult, link func(int) string) ListSection {
	if res == nil {
		return ListSection{Title: title, Failed: true, Persons: []registry.Person{}}
	}
	return ListSection{
		Title:     title,
		Persons:   res.Page.Content,
		Total:     res.Page.TotalElements,
		Paginator: NewPaginator(res.Window, link),
	}
}

// PersonView is the detail page.
type PersonView struct {
	Base
	Person *registry.Person
	Infos  []registry.OccurrenceInfo
}

// NewPersonView builds the detail page.
func NewPersonView(d *registry.PersonDetail) PersonView {
	return PersonView{
		Base:   Base{Title: d.Person.Name, Active: PageSearch},
		Person: &d.Person,
		Infos:  d.Infos,
	}
}

// FormView is any form page. Values re-fill inputs after a rejected post.
type FormView struct {
	Base
	Action  string
	Values  map[string]string
	Missing map[string]bool
	Person  *registry.Person
	Receipt any
}

// NewFormView builds an empty form page.
func NewFormView(title, active, action string) FormView {
	return FormView{
		Base:    Base{Title: title, Active: active},
		Action:  action,
		Values:  map[string]string{},
		Missing: map[string]bool{},
	}
}

// Field is one rendered form input.
type Field struct {
	Name     string
	Label    string
	Type     string
	Value    string
	Mask     string
	Required bool
	Missing  bool
}

// field builds a Field from the form state. Phone inputs carry the mask
// applied client-side and again on submit.
func field(v FormView, name, label, typ string, required bool) Field {
	f := Field{
		Name:     name,
		Label:    label,
		Type:     typ,
		Value:    v.Values[name],
		Required: required,
		Missing:  v.Missing[name],
	}
	if typ == "tel" {
		f.Mask = mask.PhonePattern
	}
	return f
}

// Reject marks the view with err and highlights missing fields.
func (v FormView) Reject(err error) FormView {
	v.Notice = ErrorNotice(err)
	if appErr, ok := apperror.AsAppError(err); ok {
		if fields, ok := appErr.Details["fields"].([]string); ok {
			for _, f := range fields {
				v.Missing[f] = true
			}
		}
	}
	return v
}

// Accept clears the form and shows a confirmation.
func (v FormView) Accept(title, message string, receipt any) FormView {
	v.Notice = SuccessNotice(title, message)
	v.Values = map[string]string{}
	v.Missing = map[string]bool{}
	v.Receipt = receipt
	return v
}
