package registry

import (
	"strings"

	"desaparecidos/internal/core/apperror"
)

// Page size bounds for searches.
const (
	DefaultPageSize = 12
	MaxPageSize     = 100
	MaxAge          = 130
)

// SearchFilter narrows a registry search. Page is 0-indexed.
type SearchFilter struct {
	Name     string
	MinAge   int
	MaxAge   int
	Sex      Sex
	Status   Status
	Page     int
	PageSize int
}

// Normalize fills defaults and clamps out-of-range values.
func (f SearchFilter) Normalize() SearchFilter {
	f.Name = strings.TrimSpace(f.Name)
	if f.Page < 0 {
		f.Page = 0
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.MinAge < 0 {
		f.MinAge = 0
	}
	if f.MaxAge < 0 {
		f.MaxAge = 0
	}
	if !f.Sex.IsFilter() {
		f.Sex = SexAny
	}
	if f.Status != StatusLocated {
		f.Status = StatusMissing
	}
	return f
}

// Validate rejects filters that cannot match anything.
func (f SearchFilter) Validate() error {
	if f.MinAge > MaxAge || f.MaxAge > MaxAge {
		return apperror.NewInvalidInput("faixaIdade", "age must not exceed 130")
	}
	if f.MinAge > 0 && f.MaxAge > 0 && f.MinAge > f.MaxAge {
		return apperror.NewInvalidInput("faixaIdade", "minimum age is greater than maximum age").
			WithDetail("faixaIdadeInicial", f.MinAge).
			WithDetail("faixaIdadeFinal", f.MaxAge)
	}
	return nil
}

// WithPage returns a copy of f positioned on page.
func (f SearchFilter) WithPage(page int) SearchFilter {
	f.Page = page
	return f
}

// WithStatus returns a copy of f for status, reset to the first page.
func (f SearchFilter) WithStatus(status Status) SearchFilter {
	f.Status = status
	f.Page = 0
	return f
}
