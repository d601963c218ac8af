package datasource

import (
	"context"
	"errors"
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/query"
	"golang.org/x/time/rate"
)

var errUnsupported = errors.New("operation not supported by data source")

// RateLimited throttles every call to the wrapped source through a shared limiter. Callers
// block until a token is available or their context ends.
type RateLimited[T any] struct {
	src     DataSource[T]
	limiter *rate.Limiter
}

// NewRateLimited wraps src. A nil limiter means no throttling.
func NewRateLimited[T any](src DataSource[T], limiter *rate.Limiter) *RateLimited[T] {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 0)
	}
	return &RateLimited[T]{src: src, limiter: limiter}
}

func (r *RateLimited[T]) Unwrap() any {
	return r.src
}

func (r *RateLimited[T]) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

func (r *RateLimited[T]) FetchPage(ctx context.Context, params query.Params) (query.Result[T], error) {
	if err := r.wait(ctx); err != nil {
		return query.Result[T]{}, err
	}
	return r.src.FetchPage(ctx, params)
}

func (r *RateLimited[T]) FetchFilterOptions(ctx context.Context, field string) ([]string, error) {
	f, ok := OptionsFetcher(r.src)
	if !ok {
		return nil, errUnsupported
	}
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return f.FetchFilterOptions(ctx, field)
}

func (r *RateLimited[T]) SearchPeople(ctx context.Context, q string) ([]filter.Person, error) {
	p, ok := People(r.src)
	if !ok {
		return nil, errUnsupported
	}
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return p.SearchPeople(ctx, q)
}

func (r *RateLimited[T]) GetUserByEmail(ctx context.Context, email string) (*filter.Person, error) {
	u, ok := Users(r.src)
	if !ok {
		return nil, errUnsupported
	}
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return u.GetUserByEmail(ctx, email)
}
