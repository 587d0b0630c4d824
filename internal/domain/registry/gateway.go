package registry

import "context"

// Gateway reads registry data from the upstream API.
//
// Implementations return *apperror.AppError values: NotFound for unknown
// persons and Upstream/Timeout when the API cannot be reached.
type Gateway interface {
	Statistics(ctx context.Context) (Statistics, error)
	Search(ctx context.Context, filter SearchFilter) (PersonPage, error)
	Person(ctx context.Context, id int64) (Person, error)
	Random(ctx context.Context, count int) ([]Person, error)
	OccurrenceInfo(ctx context.Context, occurrenceID int64) ([]OccurrenceInfo, error)
}
