// Package repository supplies the NetworkBound coordinator with the
// per-entity hooks: cache reads, remote calls and the tag merge policy.
package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/resource"
	"golang.org/x/sync/errgroup"
)

// similarPage is the page of similar titles attached to a detail record
const similarPage = 1

// Options tunes a Repository. The zero value always fetches and keeps
// duplicate tags.
type Options struct {
	// DedupeTags skips appending a tag the row already carries.
	DedupeTags bool

	// Policy is the staleness policy; nil means AlwaysFetch.
	Policy Policy

	// Now stamps FetchedAt; nil means time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Repository is the facade for one entity type. Every fetch method returns
// a one-shot stream: Loading(cached) followed by Success or Error.
type Repository[E domain.Entity[E]] struct {
	store  domain.EntityStore[E]
	api    domain.CatalogService[E]
	opts   Options
	logger *slog.Logger
}

// New creates a Repository over store and api
func New[E domain.Entity[E]](store domain.EntityStore[E], api domain.CatalogService[E], opts Options) *Repository[E] {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Policy == nil {
		opts.Policy = AlwaysFetch
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Repository[E]{store: store, api: api, opts: opts, logger: opts.Logger}
}

// runLogger tags one coordinator run so its log lines can be correlated
func (r *Repository[E]) runLogger(op string, args ...any) *slog.Logger {
	return r.logger.With(append([]any{"op", op, "run", uuid.NewString()}, args...)...)
}

// === List and search ===

// ListByType streams the rows of page tagged with listType, then refreshes
// them from the listing endpoint.
func (r *Repository[E]) ListByType(ctx context.Context, page int, listType string) <-chan resource.Resource[[]E] {
	return r.listBound(page, listType).Stream(ctx)
}

// Search streams the rows of page tagged with query, then refreshes them
// from the search endpoint. The query itself becomes the category tag.
func (r *Repository[E]) Search(ctx context.Context, query string, page int) <-chan resource.Resource[[]E] {
	return r.searchBound(query, page).Stream(ctx)
}

func (r *Repository[E]) listBound(page int, listType string) *resource.NetworkBound[[]E, *domain.Page[E]] {
	logger := r.runLogger("list", "page", page, "type", listType)
	return r.taggedBound(page, listType, logger, func(ctx context.Context) (*domain.Page[E], error) {
		return r.api.ListByType(ctx, listType, page)
	})
}

func (r *Repository[E]) searchBound(query string, page int) *resource.NetworkBound[[]E, *domain.Page[E]] {
	query = strings.TrimSpace(query)
	logger := r.runLogger("search", "page", page, "query", query)
	return r.taggedBound(page, query, logger, func(ctx context.Context) (*domain.Page[E], error) {
		if query == "" {
			return nil, errors.New("search query is empty")
		}
		return r.api.Search(ctx, query, page)
	})
}

// taggedBound wires the shared list/search shape: rows are read by page and
// filtered by tag, and every fetched row gets tag merged into its tags.
func (r *Repository[E]) taggedBound(
	page int,
	tag string,
	logger *slog.Logger,
	fetch func(ctx context.Context) (*domain.Page[E], error),
) *resource.NetworkBound[[]E, *domain.Page[E]] {
	return &resource.NetworkBound[[]E, *domain.Page[E]]{
		LoadFromDB: func(ctx context.Context) ([]E, bool, error) {
			rows, err := r.store.GetByPage(page)
			if err != nil || len(rows) == 0 {
				return nil, false, err
			}
			return filterByTag(rows, tag), true, nil
		},
		ShouldFetch: func(cached []E, ok bool) bool {
			return r.opts.Policy(records(cached...), r.opts.Now())
		},
		CreateCall: func(ctx context.Context) resource.Resource[*domain.Page[E]] {
			resp, err := fetch(ctx)
			if err != nil {
				return resource.ErrorEmpty[*domain.Page[E]](err.Error())
			}
			if resp == nil {
				return resource.Error(domain.ErrNoData.Error(), &domain.Page[E]{})
			}
			return resource.Success(resp)
		},
		SaveCallResult: func(ctx context.Context, resp *domain.Page[E]) error {
			return r.saveTagged(resp, tag, logger)
		},
		Logger: logger,
	}
}

// saveTagged stamps paging bookkeeping on every result and merges it with
// the stored row in one store transaction.
func (r *Repository[E]) saveTagged(resp *domain.Page[E], tag string, logger *slog.Logger) error {
	now := r.opts.Now().Unix()
	items := make([]E, 0, len(resp.Results))
	var zero E
	for i, item := range resp.Results {
		if item == zero {
			continue
		}
		meta := item.Meta()
		meta.Page = resp.Page
		meta.TotalPages = resp.TotalPages
		meta.Position = i
		meta.FetchedAt = now
		items = append(items, item)
	}

	if err := r.store.MergeAll(items, r.mergeTag(tag)); err != nil {
		return fmt.Errorf("save page %d: %w", resp.Page, err)
	}
	logger.Debug("saved page", "rows", len(items), "totalPages", resp.TotalPages)
	return nil
}

// mergeTag builds the merge applied to each listing row. New rows start
// with [tag]; existing rows keep their tags and gain tag. Detail-only
// collections survive a listing refresh that does not carry them.
func (r *Repository[E]) mergeTag(tag string) domain.MergeFunc[E] {
	return func(stored E, found bool, incoming E) E {
		meta := incoming.Meta()
		if !found {
			meta.CategoryTypes = []string{tag}
			return incoming
		}
		meta.CategoryTypes = r.appendTag(stored.Meta().CategoryTypes, tag)
		if incoming.Detail().IsEmpty() {
			*incoming.Detail() = *stored.Detail()
		}
		return incoming
	}
}

func (r *Repository[E]) appendTag(tags []string, tag string) []string {
	if r.opts.DedupeTags && slices.Contains(tags, tag) {
		return slices.Clone(tags)
	}
	return append(slices.Clone(tags), tag)
}

func filterByTag[E domain.Entity[E]](rows []E, tag string) []E {
	out := make([]E, 0, len(rows))
	for _, row := range rows {
		if row.Meta().HasCategory(tag) {
			out = append(out, row)
		}
	}
	return out
}

// === Detail ===

// Details streams the stored row for id, then refreshes it by joining the
// detail, reviews, videos, similar and credits endpoints.
func (r *Repository[E]) Details(ctx context.Context, id int64) <-chan resource.Resource[E] {
	return r.detailBound(id).Stream(ctx)
}

func (r *Repository[E]) detailBound(id int64) *resource.NetworkBound[E, E] {
	logger := r.runLogger("detail", "id", id)
	return &resource.NetworkBound[E, E]{
		LoadFromDB: func(ctx context.Context) (E, bool, error) {
			return r.store.GetByID(id)
		},
		ShouldFetch: func(cached E, ok bool) bool {
			if !ok {
				return r.opts.Policy(nil, r.opts.Now())
			}
			return r.opts.Policy(records(cached), r.opts.Now())
		},
		CreateCall: func(ctx context.Context) resource.Resource[E] {
			item, err := r.fetchDetail(ctx, id)
			if err != nil {
				logger.Warn("detail join failed", "error", err)
				return resource.ErrorEmpty[E](err.Error())
			}
			return resource.Success(item)
		},
		SaveCallResult: func(ctx context.Context, item E) error {
			return r.saveDetail(item)
		},
		Logger: logger,
	}
}

// fetchDetail runs the five calls concurrently. The first failure cancels
// the rest and fails the whole join; a nil payload counts as a failure.
func (r *Repository[E]) fetchDetail(ctx context.Context, id int64) (E, error) {
	var (
		zero    E
		item    E
		reviews *domain.ReviewPage
		videos  *domain.VideoPage
		similar *domain.Page[E]
		credits *domain.Credits
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if item, err = r.api.Detail(gctx, id); err != nil {
			return fmt.Errorf("detail: %w", err)
		}
		return noData("detail", item == zero)
	})
	g.Go(func() error {
		var err error
		if reviews, err = r.api.Reviews(gctx, id); err != nil {
			return fmt.Errorf("reviews: %w", err)
		}
		return noData("reviews", reviews == nil)
	})
	g.Go(func() error {
		var err error
		if videos, err = r.api.Videos(gctx, id); err != nil {
			return fmt.Errorf("videos: %w", err)
		}
		return noData("videos", videos == nil)
	})
	g.Go(func() error {
		var err error
		if similar, err = r.api.Similar(gctx, id, similarPage); err != nil {
			return fmt.Errorf("similar: %w", err)
		}
		return noData("similar", similar == nil)
	})
	g.Go(func() error {
		var err error
		if credits, err = r.api.Credits(gctx, id); err != nil {
			return fmt.Errorf("credits: %w", err)
		}
		return noData("credits", credits == nil)
	})
	if err := g.Wait(); err != nil {
		return zero, err
	}

	d := item.Detail()
	d.Reviews = reviews.Results
	d.Videos = videos.Results
	d.Similar = similar.Results
	d.Casts = credits.Cast
	d.Crews = credits.Crew
	return item, nil
}

func noData(call string, missing bool) error {
	if missing {
		return fmt.Errorf("%s: %w", call, domain.ErrNoData)
	}
	return nil
}

// saveDetail upserts the joined record. The detail payload knows nothing of
// listings, so stored tags and paging carry over.
func (r *Repository[E]) saveDetail(item E) error {
	item.Meta().FetchedAt = r.opts.Now().Unix()
	err := r.store.MergeAll([]E{item}, func(stored E, found bool, incoming E) E {
		if !found {
			return incoming
		}
		in, st := incoming.Meta(), stored.Meta()
		in.CategoryTypes = st.CategoryTypes
		in.Page = st.Page
		in.TotalPages = st.TotalPages
		in.Position = st.Position
		return incoming
	})
	if err != nil {
		return fmt.Errorf("save detail %d: %w", item.Meta().ID, err)
	}
	return nil
}

// === Warm ===

// Warm walks listType pages 1..maxPages sequentially, stopping early at the
// last page the server reports. onProgress receives (pages loaded, pages
// expected) after every page.
func (r *Repository[E]) Warm(
	ctx context.Context,
	listType string,
	maxPages int,
	onProgress domain.ProgressFunc,
) (domain.WarmResult, error) {
	result := domain.WarmResult{Category: listType}
	total := maxPages

	for page := 1; page <= total; page++ {
		states := r.listBound(page, listType).Run(ctx)
		if err := ctx.Err(); err != nil {
			return result, err
		}
		last := states[len(states)-1]
		if last.Status != resource.StatusSuccess {
			return result, fmt.Errorf("warm %s page %d: %w", listType, page, last.Err())
		}

		result.Pages++
		result.Rows += len(last.Data)

		if len(last.Data) == 0 {
			break
		}
		if server := last.Data[0].Meta().TotalPages; server > 0 && server < total {
			total = server
		}
		if onProgress != nil {
			onProgress(page, total)
		}
	}

	r.logger.Info("warm complete", "type", listType, "pages", result.Pages, "rows", result.Rows)
	return result, nil
}
