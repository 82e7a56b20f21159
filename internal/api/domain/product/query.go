package product

import "fmt"

type ProductsQuery struct {
	IDs       []string
	Slugs     []string
	Statuses  []Status
	Search    string
	Limit     int
	SortBy    string
	SortOrder string
}

func (q *ProductsQuery) Validate() error {
	if q.SortBy != "created_at" && q.SortBy != "name" && q.SortBy != "price" && q.SortBy != "event_date" {
		return fmt.Errorf("invalid sort by: %s", q.SortBy)
	}
	if q.SortOrder != "asc" && q.SortOrder != "desc" {
		return fmt.Errorf("invalid sort order: %s", q.SortOrder)
	}
	if q.Limit < 0 {
		return fmt.Errorf("invalid limit: %d", q.Limit)
	}
	return nil
}

type ProductsQueryBuilder struct {
	query *ProductsQuery
}

func NewProductsQueryBuilder() *ProductsQueryBuilder {
	return &ProductsQueryBuilder{
		query: &ProductsQuery{SortBy: "created_at", SortOrder: "desc"},
	}
}

func (b *ProductsQueryBuilder) Build() (*ProductsQuery, error) {
	if err := b.query.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err.Error())
	}
	return b.query, nil
}

func (b *ProductsQueryBuilder) WithIDs(ids ...string) *ProductsQueryBuilder {
	b.query.IDs = ids
	return b
}

func (b *ProductsQueryBuilder) WithSlugs(slugs ...string) *ProductsQueryBuilder {
	b.query.Slugs = slugs
	return b
}

func (b *ProductsQueryBuilder) WithStatuses(statuses ...Status) *ProductsQueryBuilder {
	b.query.Statuses = statuses
	return b
}

// WithSearch matches the text against name and description.
func (b *ProductsQueryBuilder) WithSearch(text string) *ProductsQueryBuilder {
	b.query.Search = text
	return b
}

func (b *ProductsQueryBuilder) WithLimit(limit int) *ProductsQueryBuilder {
	b.query.Limit = limit
	return b
}

func (b *ProductsQueryBuilder) WithSort(sortBy, sortOrder string) *ProductsQueryBuilder {
	b.query.SortBy = sortBy
	b.query.SortOrder = sortOrder
	return b
}
