package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mmcdole/reel/internal/domain"
)

// Catalog implements domain.CatalogService for one entity type. The TV and
// movie catalogs differ only in their path segment and mapper.
type Catalog[E domain.Entity[E]] struct {
	client   *Client
	kind     domain.Kind
	mapTitle func(titleDTO) E
}

var (
	_ domain.CatalogService[*domain.TvShow] = (*Catalog[*domain.TvShow])(nil)
	_ domain.CatalogService[*domain.Movie]  = (*Catalog[*domain.Movie])(nil)
)

// NewTVCatalog returns the /tv endpoints
func NewTVCatalog(c *Client) *Catalog[*domain.TvShow] {
	return &Catalog[*domain.TvShow]{client: c, kind: domain.KindTV, mapTitle: mapTvShow}
}

// NewMovieCatalog returns the /movie endpoints
func NewMovieCatalog(c *Client) *Catalog[*domain.Movie] {
	return &Catalog[*domain.Movie]{client: c, kind: domain.KindMovie, mapTitle: mapMovie}
}

func (c *Catalog[E]) path(id int64, sub string) string {
	p := fmt.Sprintf("/%s/%d", c.kind, id)
	if sub != "" {
		p += "/" + sub
	}
	return p
}

func pageQuery(page int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	return q
}

func (c *Catalog[E]) fetchPage(ctx context.Context, path string, query url.Values) (*domain.Page[E], error) {
	var dto *pageDTO
	if err := c.client.getJSON(ctx, path, query, &dto); err != nil {
		return nil, err
	}
	return mapPage(dto, c.mapTitle), nil
}

// ListByType returns one page of a named listing ("popular", "top_rated")
func (c *Catalog[E]) ListByType(ctx context.Context, listType string, page int) (*domain.Page[E], error) {
	path := fmt.Sprintf("/%s/%s", c.kind, url.PathEscape(listType))
	return c.fetchPage(ctx, path, pageQuery(page))
}

// Detail returns the full record for id
func (c *Catalog[E]) Detail(ctx context.Context, id int64) (E, error) {
	var zero E
	var dto *titleDTO
	if err := c.client.getJSON(ctx, c.path(id, ""), nil, &dto); err != nil {
		return zero, err
	}
	if dto == nil {
		return zero, nil
	}
	return c.mapTitle(*dto), nil
}

// Reviews returns the first page of user reviews for id
func (c *Catalog[E]) Reviews(ctx context.Context, id int64) (*domain.ReviewPage, error) {
	var dto *reviewPageDTO
	if err := c.client.getJSON(ctx, c.path(id, "reviews"), nil, &dto); err != nil {
		return nil, err
	}
	return mapReviewPage(dto), nil
}

// Videos returns trailers and clips for id
func (c *Catalog[E]) Videos(ctx context.Context, id int64) (*domain.VideoPage, error) {
	var dto *videoPageDTO
	if err := c.client.getJSON(ctx, c.path(id, "videos"), nil, &dto); err != nil {
		return nil, err
	}
	return mapVideoPage(dto), nil
}

// Similar returns one page of titles similar to id
func (c *Catalog[E]) Similar(ctx context.Context, id int64, page int) (*domain.Page[E], error) {
	return c.fetchPage(ctx, c.path(id, "similar"), pageQuery(page))
}

// Credits returns cast and crew for id
func (c *Catalog[E]) Credits(ctx context.Context, id int64) (*domain.Credits, error) {
	var dto *creditsDTO
	if err := c.client.getJSON(ctx, c.path(id, "credits"), nil, &dto); err != nil {
		return nil, err
	}
	return mapCredits(dto), nil
}

// Search returns one page of titles matching query
func (c *Catalog[E]) Search(ctx context.Context, query string, page int) (*domain.Page[E], error) {
	q := pageQuery(page)
	q.Set("query", query)
	return c.fetchPage(ctx, fmt.Sprintf("/search/%s", c.kind), q)
}
