package dto

import (
	"desaparecidos/internal/domain/registry"
	"desaparecidos/pkg/pagewindow"
)

// SearchRequest holds /api/v1/pessoas query parameters. Pages are
// 0-indexed, as upstream.
type SearchRequest struct {
	Name     string `form:"nome" binding:"max=200"`
	MinAge   int    `form:"faixaIdadeInicial" binding:"min=0"`
	MaxAge   int    `form:"faixaIdadeFinal" binding:"min=0"`
	Sex      string `form:"sexo"`
	Status   string `form:"status"`
	Page     int    `form:"pagina" binding:"min=0"`
	PageSize int    `form:"porPagina" binding:"min=0,max=100"`
}

// ToFilter converts the request to a domain filter.
func (r SearchRequest) ToFilter() registry.SearchFilter {
	return registry.SearchFilter{
		Name:     r.Name,
		MinAge:   r.MinAge,
		MaxAge:   r.MaxAge,
		Sex:      registry.ParseSex(r.Sex),
		Status:   registry.ParseStatus(r.Status),
		Page:     r.Page,
		PageSize: r.PageSize,
	}
}

// PageSearchRequest holds /buscar query parameters. Pages are 1-indexed.
type PageSearchRequest struct {
	Name   string `form:"nome"`
	MinAge int    `form:"faixaIdadeInicial"`
	MaxAge int    `form:"faixaIdadeFinal"`
	Sex    string `form:"sexo"`
	Status string `form:"status"`
	Page   int    `form:"pagina"`
}

// ToFilter converts the request to a domain filter.
func (r PageSearchRequest) ToFilter() registry.SearchFilter {
	return registry.SearchFilter{
		Name:   r.Name,
		MinAge: r.MinAge,
		MaxAge: r.MaxAge,
		Sex:    registry.ParseSex(r.Sex),
		Status: registry.ParseStatus(r.Status),
		Page:   max(0, r.Page-1),
	}
}

// SearchResponse is a page of persons plus its paginator window.
type SearchResponse struct {
	Content       []registry.Person `json:"content"`
	Page          int               `json:"pagina"`
	PageSize      int               `json:"porPagina"`
	TotalPages    int               `json:"totalPages"`
	TotalElements int64             `json:"totalElements"`
	Window        pagewindow.Window `json:"window"`
}

// FromSearchResult converts a domain result.
func FromSearchResult(res *registry.SearchResult) SearchResponse {
	return SearchResponse{
		Content:       res.Page.Content,
		Page:          res.Filter.Page,
		PageSize:      res.Filter.PageSize,
		TotalPages:    res.Page.TotalPages,
		TotalElements: res.Page.TotalElements,
		Window:        res.Window,
	}
}

// StatisticsResponse reports case counts with their shares.
type StatisticsResponse struct {
	Missing        int64 `json:"quantPessoasDesaparecidas"`
	Located        int64 `json:"quantPessoasEncontradas"`
	Total          int64 `json:"total"`
	MissingPercent int   `json:"percentualDesaparecidas"`
	LocatedPercent int   `json:"percentualEncontradas"`
}

// FromStatistics converts domain statistics.
func FromStatistics(s registry.Statistics) StatisticsResponse {
	return StatisticsResponse{
		Missing:        s.Missing,
		Located:        s.Located,
		Total:          s.Total(),
		MissingPercent: s.MissingPercent(),
		LocatedPercent: s.LocatedPercent(),
	}
}

// PersonResponse is a person with status and the tips already attached.
type PersonResponse struct {
	registry.Person
	Missing bool                      `json:"desaparecido"`
	Infos   []registry.OccurrenceInfo `json:"informacoes"`
}

// FromPersonDetail converts a domain detail.
func FromPersonDetail(d *registry.PersonDetail) PersonResponse {
	return PersonResponse{
		Person:  d.Person,
		Missing: d.Person.IsMissing(),
		Infos:   d.Infos,
	}
}

// MaskRequest asks for a value to be formatted. Mask defaults to the
// phone pattern. Typing formats a value still being edited.
type MaskRequest struct {
	Value  string `json:"value" binding:"max=256"`
	Mask   string `json:"mask" binding:"max=64"`
	Typing bool   `json:"typing"`
}

// MaskResponse is the formatted value.
type MaskResponse struct {
	Masked   string `json:"masked"`
	Mask     string `json:"mask"`
	Complete bool   `json:"complete"`
}
