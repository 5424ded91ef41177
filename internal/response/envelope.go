package response

import (
	"github.com/oggyb/lessons-api/internal/transform"
)

// Envelope is implemented by Success and Failure, the two top-level bodies
// a client can receive.
type Envelope interface {
	envelope()
}

// Success wraps the data of a successful request.
type Success[T any] struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Data       T      `json:"data"`
	Meta       *Meta  `json:"meta,omitempty"`
}

// Failure describes a failed request.
type Failure struct {
	Status string    `json:"status"`
	Error  ErrorBody `json:"error"`
}

// ErrorBody holds the status code and a human readable message.
type ErrorBody struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Meta carries extra information about a collection.
type Meta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes one page of a larger collection.
type Pagination struct {
	Total       int64 `json:"total"`
	Count       int   `json:"count"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

// NewPagination fills in the derived fields of a page.
func NewPagination(total int64, count, perPage, currentPage int) *Pagination {
	pages := 0
	if perPage > 0 {
		pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	return &Pagination{
		Total:       total,
		Count:       count,
		PerPage:     perPage,
		CurrentPage: currentPage,
		TotalPages:  pages,
	}
}

func (Success[T]) envelope() {}
func (Failure) envelope()    {}

// OK wraps data in a success envelope with the builder's status code.
func OK[T any](b *Builder, data T) Reply {
	return b.Response(Success[T]{
		Status:     StatusSuccess,
		StatusCode: b.StatusCode(),
		Data:       data,
	})
}

// Item transforms a single record and wraps it in a success envelope.
func Item(b *Builder, t transform.Transformer, rec transform.Record) (Reply, error) {
	shape, err := t.Transform(rec)
	if err != nil {
		return Reply{}, err
	}
	return OK(b, shape), nil
}

// Collection transforms every record and wraps the result in a success envelope.
func Collection(b *Builder, t transform.Transformer, recs []transform.Record) (Reply, error) {
	shapes, err := transform.Collection(t, recs)
	if err != nil {
		return Reply{}, err
	}
	return OK(b, shapes), nil
}

// Paginated wraps one page of already transformed items.
func Paginated[T any](b *Builder, items []T, p *Pagination) Reply {
	if items == nil {
		items = []T{}
	}
	return b.Response(Success[[]T]{
		Status:     StatusSuccess,
		StatusCode: b.StatusCode(),
		Data:       items,
		Meta:       &Meta{Pagination: p},
	})
}
