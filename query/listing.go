package query

import (
	"context"
	"net/url"

	"github.com/jonascoder/surf-shop/models"
)

// Pagination selects one page of a newest-first listing.
type Pagination struct {
	Page  int
	Limit int
	Skip  int
}

func PageOf(page int) Pagination {
	page = max(1, min(page, MaxPage))
	return Pagination{Page: page, Limit: PageSize, Skip: (page - 1) * PageSize}
}

// Paginator runs a filter against the post collection.
type Paginator interface {
	Paginate(ctx context.Context, f Filter, p Pagination) (models.PostPage, error)
}

// Listing is the outcome of one listing request.
type Listing struct {
	models.PostPage
	PaginateURL string     `json:"paginateUrl"`
	Query       url.Values `json:"query"`
}

type Pipeline struct {
	builder *Builder
	posts   Paginator
}

func NewPipeline(builder *Builder, posts Paginator) *Pipeline {
	return &Pipeline{builder: builder, posts: posts}
}

// List parses the request URL, builds the filter and fetches the page.
func (pl *Pipeline) List(ctx context.Context, u *url.URL) (Listing, error) {
	values := u.Query()
	params := ParseParams(values)

	filter, err := pl.builder.Build(ctx, params)
	if err != nil {
		return Listing{}, err
	}

	page, err := pl.posts.Paginate(ctx, filter, PageOf(params.Page))
	if err != nil {
		return Listing{}, err
	}

	return Listing{
		PostPage:    page,
		PaginateURL: PaginateURL(u),
		Query:       values,
	}, nil
}
