// Package grid ties column definitions, filters, sorting and paging into one state machine. A
// grid either owns its rows (client mode) and recomputes every view synchronously, or asks a
// data source for each page (server mode) and keeps only the answer to its latest request.
package grid

import (
	"context"
	"errors"
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/datasource"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/options"
	"github.com/alaarab/ogrid-go/pkg/people"
	"github.com/alaarab/ogrid-go/pkg/query"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"sync"
	"time"
)

// DefaultPageSize is the page size used when Config leaves it unset.
const DefaultPageSize = 20

// Config describes a grid. Exactly one of Data and Source must be set.
type Config[T any] struct {
	Columns []column.Def[T]

	// Data puts the grid in client mode. A nil slice means no data; an empty one is a grid
	// with no rows.
	Data []T
	// Source puts the grid in server mode.
	Source datasource.DataSource[T]

	Page           Controlled[int]
	PageSize       Controlled[int]
	Sort           Controlled[query.Sort]
	Filters        Controlled[filter.Filters]
	VisibleColumns Controlled[[]string]

	DefaultPageSize      int
	DefaultSortBy        string
	DefaultSortDirection query.Direction

	// PeopleSearchDelay is the quiet period before a people search hits the directory.
	PeopleSearchDelay time.Duration

	// OnUpdate is called after every observable change, including async completions. It may
	// be called from any goroutine.
	OnUpdate func()

	// Context bounds every call the grid makes to the data source. Defaults to Background.
	Context context.Context
}

func (c *Config[T]) validate() error {
	var errGrp []error
	if c.Data == nil && c.Source == nil {
		errGrp = append(errGrp, configError(ErrNoDataSource, "supply Data for client mode or Source for server mode"))
	}
	if c.Data != nil && c.Source != nil {
		errGrp = append(errGrp, configError(ErrConflictingSources, "%d rows and a %T", len(c.Data), c.Source))
	}
	if len(c.Columns) == 0 {
		errGrp = append(errGrp, configError(ErrNoColumns, ""))
	}
	seen := make(map[string]bool, len(c.Columns))
	for _, col := range c.Columns {
		if seen[col.ID] {
			errGrp = append(errGrp, configError(ErrDuplicateColumn, "%q", col.ID))
		}
		seen[col.ID] = true
	}
	if c.DefaultPageSize < 0 {
		errGrp = append(errGrp, fmt.Errorf("default page size must not be negative: %d", c.DefaultPageSize))
	}
	if c.PeopleSearchDelay < 0 {
		errGrp = append(errGrp, fmt.Errorf("people search delay must not be negative: %s", c.PeopleSearchDelay))
	}
	return errors.Join(errGrp...)
}

// Grid holds the page, sort, filter and column state over one set of rows and answers the
// current view of it. It is safe for use by one owner plus its own async completions.
type Grid[T any] struct {
	id      uuid.UUID
	logger  zerolog.Logger
	columns []column.Def[T]
	data    []T
	source  datasource.DataSource[T]

	page     *slot[int]
	pageSize *slot[int]
	sort     *slot[query.Sort]
	filters  *slot[filter.Filters]
	visible  *slot[[]string]

	ctx    context.Context
	cancel context.CancelFunc

	// server mode
	mu         sync.Mutex
	fetchGen   uint64
	result     query.Result[T]
	loading    bool
	lastParams *query.Params

	loader  *options.Loader
	fetcher bool
	people  *people.Searcher

	onUpdate func()
	now      func() time.Time
}

// New validates cfg and builds a grid. In server mode the first page and the filter options
// are requested before New returns; their results arrive through OnUpdate.
func New[T any](cfg *Config[T]) (*Grid[T], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	g := &Grid[T]{
		id:       id,
		logger:   log.With().Str("grid", id.String()).Logger(),
		columns:  append([]column.Def[T](nil), cfg.Columns...),
		data:     cfg.Data,
		source:   cfg.Source,
		onUpdate: cfg.OnUpdate,
		now:      time.Now,
	}

	parent := cfg.Context
	if parent == nil {
		parent = context.Background()
	}
	g.ctx, g.cancel = context.WithCancel(parent)

	pageSize := cfg.DefaultPageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	g.page = newSlot(cfg.Page, 1)
	g.pageSize = newSlot(cfg.PageSize, pageSize)
	g.sort = newSlot(cfg.Sort, defaultSort(g.columns, cfg.DefaultSortBy, cfg.DefaultSortDirection))
	g.filters = newSlot(cfg.Filters, filter.Filters{})
	g.visible = newSlot(cfg.VisibleColumns, defaultVisible(g.columns))

	if g.source != nil {
		_, g.fetcher = datasource.OptionsFetcher(g.source)
		if g.fetcher {
			g.loader = options.NewLoader(func(options.State) { g.notify() })
		}

		if _, ok := datasource.People(g.source); ok {
			s, err := people.New(&people.Config{
				Source:   g.source,
				Delay:    cfg.PeopleSearchDelay,
				OnChange: func(people.Results) { g.notify() },
			})
			if err != nil {
				g.cancel()
				return nil, fmt.Errorf("failed to create people searcher: %w", err)
			}
			g.people = s
		}
	}

	g.logger.Debug().
		Bool("server", g.source != nil).
		Int("columns", len(g.columns)).
		Msg("grid created")

	if g.source != nil {
		if g.loader != nil {
			fields := options.FetchFields(g.columns)
			go g.loader.Load(g.ctx, g.source, fields)
		}
		g.fetch()
	}

	return g, nil
}

func defaultSort[T any](columns []column.Def[T], by string, dir query.Direction) query.Sort {
	if dir == "" {
		dir = query.Asc
	}
	if by != "" {
		return query.Sort{Field: by, Direction: dir}
	}
	for _, c := range columns {
		if c.Sortable() {
			return query.Sort{Field: c.ID, Direction: dir}
		}
	}
	return query.Sort{}
}

func defaultVisible[T any](columns []column.Def[T]) []string {
	var ids []string
	for _, c := range columns {
		if !c.DefaultHidden {
			ids = append(ids, c.ID)
		}
	}
	if len(ids) == 0 {
		for _, c := range columns {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// ID identifies the grid in logs.
func (g *Grid[T]) ID() string {
	return g.id.String()
}

// ServerSide reports whether rows come from a data source.
func (g *Grid[T]) ServerSide() bool {
	return g.source != nil
}

// Columns returns every column definition in order.
func (g *Grid[T]) Columns() []column.Def[T] {
	return append([]column.Def[T](nil), g.columns...)
}

// Close stops all async work. Responses that arrive afterwards are discarded.
func (g *Grid[T]) Close() {
	g.cancel()
	g.mu.Lock()
	g.fetchGen++
	g.loading = false
	g.mu.Unlock()
	if g.loader != nil {
		g.loader.Invalidate()
	}
	if g.people != nil {
		g.people.Close()
	}
	g.logger.Debug().Msg("grid closed")
}

func (g *Grid[T]) notify() {
	if g.onUpdate != nil {
		g.onUpdate()
	}
}
