package grid

import (
	"github.com/alaarab/ogrid-go/pkg/query"
)

// fetch requests the page of the current state. Only the response to the latest request is
// kept; a failed request leaves an empty page.
func (g *Grid[T]) fetch() {
	params := g.Params()

	g.mu.Lock()
	if g.ctx.Err() != nil {
		g.mu.Unlock()
		return
	}
	g.fetchGen++
	gen := g.fetchGen
	g.loading = true
	g.lastParams = &params
	g.mu.Unlock()

	g.notify()

	go func() {
		res, err := g.source.FetchPage(g.ctx, params)

		g.mu.Lock()
		if gen != g.fetchGen {
			g.mu.Unlock()
			g.logger.Debug().Msgf("discarding stale page response %d", gen)
			return
		}
		if err != nil {
			g.logger.Error().Err(err).
				Int("page", params.Page).
				Int("pageSize", params.PageSize).
				Msg("failed to fetch page")
			res = query.Result[T]{Items: []T{}}
		}
		if res.Items == nil {
			res.Items = []T{}
		}
		g.result = res
		g.loading = false
		g.mu.Unlock()

		g.notify()
	}()
}

// Refresh re-reads controlled values. In server mode it fetches when they changed since the last
// request; in client mode the next View already reflects them.
func (g *Grid[T]) Refresh() {
	if g.source == nil {
		g.notify()
		return
	}

	params := g.Params()
	g.mu.Lock()
	stale := g.lastParams == nil || !g.lastParams.Equal(params)
	g.mu.Unlock()

	if stale {
		g.fetch()
		return
	}
	g.notify()
}

// Reload fetches the current page again regardless of state.
func (g *Grid[T]) Reload() {
	if g.source != nil {
		g.fetch()
	}
}
