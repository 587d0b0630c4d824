package registry

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"desaparecidos/internal/core/apperror"
	"desaparecidos/pkg/logger"
	"desaparecidos/pkg/pagewindow"
)

// ServiceConfig holds tunables for page composition.
type ServiceConfig struct {
	// PageSize is used when a search does not ask for one
	PageSize int

	// RandomCount is how many featured persons the home page shows
	RandomCount int
}

// DefaultServiceConfig returns 12 results per page and 4 featured persons.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PageSize:    DefaultPageSize,
		RandomCount: 4,
	}
}

// Service composes registry reads for the pages and the JSON API.
type Service struct {
	gateway Gateway
	cfg     ServiceConfig
}

// NewService creates a new registry service.
func NewService(gateway Gateway, cfg ServiceConfig) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.RandomCount <= 0 {
		cfg.RandomCount = 4
	}
	return &Service{gateway: gateway, cfg: cfg}
}

// SearchResult is a page of persons with its paginator.
type SearchResult struct {
	Filter SearchFilter      `json:"-"`
	Page   PersonPage        `json:"page"`
	Window pagewindow.Window `json:"window"`
}

// PersonDetail is a person with the tips already attached to its case.
type PersonDetail struct {
	Person Person           `json:"person"`
	Infos  []OccurrenceInfo `json:"informacoes"`
}

// HomeRequest selects the list pages shown on the landing page.
type HomeRequest struct {
	MissingPage int
	LocatedPage int
}

// Home is the landing page content. Each part fails independently.
type Home struct {
	Statistics *Statistics
	Featured   []Person
	Missing    *SearchResult
	Located    *SearchResult

	// Errs holds one entry per failed part, keyed by part name.
	Errs map[string]error
}

// Err returns any failure, if one occurred.
func (h Home) Err() error {
	for _, part := range []string{"statistics", "missing", "located", "featured"} {
		if err := h.Errs[part]; err != nil {
			return err
		}
	}
	return nil
}

// Statistics returns aggregate case counts.
func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	stats, err := s.gateway.Statistics(ctx)
	if err != nil {
		return Statistics{}, fmt.Errorf("get statistics: %w", err)
	}
	return stats, nil
}

// Search runs a filtered, paged search.
func (s *Service) Search(ctx context.Context, filter SearchFilter) (*SearchResult, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = s.cfg.PageSize
	}
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	page, err := s.gateway.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search persons: %w", err)
	}
	if page.Content == nil {
		page.Content = []Person{}
	}

	return &SearchResult{
		Filter: filter,
		Page:   page,
		Window: windowFor(filter.Page, page.TotalPages),
	}, nil
}

// windowFor builds the paginator for a page envelope. An empty result still
// gets a valid single-page window.
func windowFor(current, totalPages int) pagewindow.Window {
	return pagewindow.New(current, max(1, totalPages))
}

// Person returns a single registry record.
func (s *Service) Person(ctx context.Context, id int64) (Person, error) {
	if id <= 0 {
		return Person{}, apperror.NewInvalidInput("id", "person id must be a positive integer")
	}
	p, err := s.gateway.Person(ctx, id)
	if err != nil {
		return Person{}, fmt.Errorf("get person %d: %w", id, err)
	}
	return p, nil
}

// PersonDetail returns a person and the tips attached to its latest occurrence.
// A failure to load tips is logged and yields an empty list.
func (s *Service) PersonDetail(ctx context.Context, id int64) (*PersonDetail, error) {
	p, err := s.Person(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &PersonDetail{Person: p, Infos: []OccurrenceInfo{}}
	ocoID := p.OccurrenceID()
	if ocoID == 0 {
		return detail, nil
	}

	infos, err := s.OccurrenceInfo(ctx, ocoID)
	if err != nil {
		logger.Warn(ctx, "occurrence info unavailable",
			"person_id", id,
			"occurrence_id", ocoID,
			"error", err,
		)
		return detail, nil
	}
	detail.Infos = infos
	return detail, nil
}

// OccurrenceInfo returns the tips attached to an occurrence.
func (s *Service) OccurrenceInfo(ctx context.Context, occurrenceID int64) ([]OccurrenceInfo, error) {
	if occurrenceID <= 0 {
		return nil, apperror.NewInvalidInput("ocorrenciaId", "occurrence id must be a positive integer")
	}
	infos, err := s.gateway.OccurrenceInfo(ctx, occurrenceID)
	if err != nil {
		return nil, fmt.Errorf("get occurrence %d info: %w", occurrenceID, err)
	}
	if infos == nil {
		infos = []OccurrenceInfo{}
	}
	return infos, nil
}

// Random returns up to count featured persons that have a photo.
func (s *Service) Random(ctx context.Context, count int) ([]Person, error) {
	if count <= 0 {
		count = s.cfg.RandomCount
	}
	if count > MaxPageSize {
		count = MaxPageSize
	}
	persons, err := s.gateway.Random(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("get random persons: %w", err)
	}

	out := make([]Person, 0, len(persons))
	for _, p := range persons {
		if p.HasPhoto() {
			out = append(out, p)
		}
	}
	return out, nil
}

// Home loads statistics, both status lists and featured persons concurrently.
func (s *Service) Home(ctx context.Context, req HomeRequest) Home {
	var (
		home Home
		mu   sync.Mutex
		g    errgroup.Group
	)

	fail := func(part string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if home.Errs == nil {
			home.Errs = make(map[string]error)
		}
		home.Errs[part] = err
	}

	// Failures are recorded per part; the group never cancels its siblings.
	g.Go(func() error {
		stats, err := s.Statistics(ctx)
		if err != nil {
			fail("statistics", err)
			return nil
		}
		home.Statistics = &stats
		return nil
	})
	g.Go(func() error {
		res, err := s.Search(ctx, SearchFilter{Status: StatusMissing, Page: req.MissingPage})
		if err != nil {
			fail("missing", err)
			return nil
		}
		home.Missing = res
		return nil
	})
	g.Go(func() error {
		res, err := s.Search(ctx, SearchFilter{Status: StatusLocated, Page: req.LocatedPage})
		if err != nil {
			fail("located", err)
			return nil
		}
		home.Located = res
		return nil
	})
	g.Go(func() error {
		featured, err := s.Random(ctx, s.cfg.RandomCount)
		if err != nil {
			fail("featured", err)
			return nil
		}
		home.Featured = featured
		return nil
	})
	_ = g.Wait()

	if err := home.Err(); err != nil {
		logger.Warn(ctx, "home page degraded", "failed_parts", len(home.Errs), "error", err)
	}
	return home
}
