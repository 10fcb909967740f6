package domain

import "context"

// Page is a paginated listing payload (list, similar, search endpoints)
type Page[E any] struct {
	Page         int
	TotalPages   int
	TotalResults int
	Results      []E
}

// ReviewPage is the payload of the reviews endpoint
type ReviewPage struct {
	ID         int64
	Page       int
	TotalPages int
	Results    []Review
}

// VideoPage is the payload of the videos endpoint
type VideoPage struct {
	ID      int64
	Results []Video
}

// Credits is the payload of the credits endpoint
type Credits struct {
	ID   int64
	Cast []Cast
	Crew []Crew
}

// MergeFunc computes the row to persist for an incoming item.
// stored is the zero value when found is false.
type MergeFunc[E any] func(stored E, found bool, incoming E) E

// EntityStore: local persisted cache for one entity type.
// Single-row writes are atomic; MergeAll runs its read-modify-write
// sequence for every item inside one write transaction.
type EntityStore[E any] interface {
	GetByID(id int64) (E, bool, error)
	GetByPage(page int) ([]E, error)
	All() ([]E, error)

	Insert(item E) error
	InsertAll(items []E) error
	Update(item E) error
	MergeAll(items []E, merge MergeFunc[E]) error
}

// CatalogService: network operations for one entity type
// (implemented by the tmdb client). A nil payload with a nil error
// means the server answered without data.
type CatalogService[E any] interface {
	ListByType(ctx context.Context, listType string, page int) (*Page[E], error)
	Detail(ctx context.Context, id int64) (E, error)
	Reviews(ctx context.Context, id int64) (*ReviewPage, error)
	Videos(ctx context.Context, id int64) (*VideoPage, error)
	Similar(ctx context.Context, id int64, page int) (*Page[E], error)
	Credits(ctx context.Context, id int64) (*Credits, error)
	Search(ctx context.Context, query string, page int) (*Page[E], error)
}
