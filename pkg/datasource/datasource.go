package datasource

import (
	"context"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/query"
)

//go:generate mockgen -destination=datasource_mock.go -package=datasource -source=datasource.go

// DataSource serves pages of rows to a grid running in server-side mode. The grid makes no
// assumption about what backs it; latency and failure are the only things it observes.
type DataSource[T any] interface {
	FetchPage(ctx context.Context, params query.Params) (query.Result[T], error)
}

// FilterOptionsFetcher is implemented by sources that can list the distinct values of a
// filter field for multi-select filters.
type FilterOptionsFetcher interface {
	FetchFilterOptions(ctx context.Context, field string) ([]string, error)
}

// PeopleSearcher is implemented by sources backed by a people directory.
type PeopleSearcher interface {
	SearchPeople(ctx context.Context, query string) ([]filter.Person, error)
}

// UserLookup resolves a single person by email. A nil person with a nil error means not found.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*filter.Person, error)
}

// Wrapper is implemented by sources that decorate another source. A wrapper only offers a
// capability when the source it wraps does.
type Wrapper interface {
	Unwrap() any
}

// capability finds C on src, looking through wrappers.
func capability[C any](src any) (C, bool) {
	var zero C
	if src == nil {
		return zero, false
	}
	c, ok := src.(C)
	if !ok {
		return zero, false
	}
	if w, isWrapper := src.(Wrapper); isWrapper {
		if _, inner := capability[C](w.Unwrap()); !inner {
			return zero, false
		}
	}
	return c, true
}

// OptionsFetcher returns src's filter option capability, if it has one.
func OptionsFetcher(src any) (FilterOptionsFetcher, bool) {
	return capability[FilterOptionsFetcher](src)
}

// People returns src's people search capability, if it has one.
func People(src any) (PeopleSearcher, bool) {
	return capability[PeopleSearcher](src)
}

// Users returns src's user lookup capability, if it has one.
func Users(src any) (UserLookup, bool) {
	return capability[UserLookup](src)
}
