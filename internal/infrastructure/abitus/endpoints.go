package abitus

import (
	"context"
	"net/url"
	"strconv"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/internal/domain/registry"
)

var _ registry.Gateway = (*Client)(nil)

// Statistics returns aggregate case counts.
func (c *Client) Statistics(ctx context.Context) (registry.Statistics, error) {
	var stats registry.Statistics
	err := c.getJSON(ctx, "statistics", []string{"pessoas", "aberto", "estatistico"}, nil, &stats)
	return stats, translate("statistics", err, nil)
}

// Search runs a paged search. Zero ages and SexAny are left out of the
// query string so the API treats them as unset.
func (c *Client) Search(ctx context.Context, f registry.SearchFilter) (registry.PersonPage, error) {
	page := registry.EmptyPage()
	err := c.getJSON(ctx, "search", []string{"pessoas", "aberto", "filtro"}, searchQuery(f), &page)
	if err != nil {
		return registry.EmptyPage(), translate("search", err, nil)
	}
	if page.Content == nil {
		page.Content = []registry.Person{}
	}
	return page, nil
}

func searchQuery(f registry.SearchFilter) url.Values {
	q := url.Values{}
	q.Set("pagina", strconv.Itoa(f.Page))
	q.Set("porPagina", strconv.Itoa(f.PageSize))
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
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	return q
}

// Person returns a single record.
func (c *Client) Person(ctx context.Context, id int64) (registry.Person, error) {
	var p registry.Person
	err := c.getJSON(ctx, "person", []string{"pessoas", strconv.FormatInt(id, 10)}, nil, &p)
	if err != nil {
		return registry.Person{}, translate("person", err, func() *apperror.AppError {
			return apperror.NewNotFound("pessoa", id)
		})
	}
	return p, nil
}

// Random returns count random records.
func (c *Client) Random(ctx context.Context, count int) ([]registry.Person, error) {
	q := url.Values{}
	q.Set("registros", strconv.Itoa(count))

	var persons []registry.Person
	err := c.getJSON(ctx, "random", []string{"pessoas", "aberto", "dinamico"}, q, &persons)
	if err != nil {
		return nil, translate("random", err, nil)
	}
	return persons, nil
}

// OccurrenceInfo returns the tips attached to an occurrence. An occurrence
// unknown upstream has no tips.
func (c *Client) OccurrenceInfo(ctx context.Context, occurrenceID int64) ([]registry.OccurrenceInfo, error) {
	q := url.Values{}
	q.Set("ocorrenciaId", strconv.FormatInt(occurrenceID, 10))

	var infos []registry.OccurrenceInfo
	err := c.getJSON(ctx, "occurrence_info", []string{"ocorrencias", "informacoes-desaparecido"}, q, &infos)
	if err != nil {
		return nil, translate("occurrence_info", err, func() *apperror.AppError {
			return apperror.NewNotFound("ocorrencia", occurrenceID)
		})
	}
	if infos == nil {
		infos = []registry.OccurrenceInfo{}
	}
	return infos, nil
}

// Ping checks that the API answers. Used by the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Statistics(ctx)
	return err
}
