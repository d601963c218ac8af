package options

import (
	"context"
	"github.com/alaarab/ogrid-go/pkg/datasource"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"maps"
	"sync"
)

// State is the published result of a Loader. Settled fields are absent from LoadingOptions.
type State struct {
	FilterOptions  map[string][]string
	LoadingOptions map[string]bool
}

func (s State) clone() State {
	out := State{
		FilterOptions:  make(map[string][]string, len(s.FilterOptions)),
		LoadingOptions: maps.Clone(s.LoadingOptions),
	}
	if out.LoadingOptions == nil {
		out.LoadingOptions = map[string]bool{}
	}
	for k, v := range s.FilterOptions {
		out.FilterOptions[k] = append([]string{}, v...)
	}
	return out
}

// Loader fetches the option lists of multi-select filter fields from a data source. Each Load
// supersedes the previous one: results of an older invocation never reach the published state.
type Loader struct {
	mu       sync.Mutex
	gen      uint64
	state    State
	onChange func(State)
}

// NewLoader creates a loader. onChange, when set, receives every published state.
func NewLoader(onChange func(State)) *Loader {
	return &Loader{
		state: State{
			FilterOptions:  map[string][]string{},
			LoadingOptions: map[string]bool{},
		},
		onChange: onChange,
	}
}

// Snapshot returns a copy of the current state.
func (l *Loader) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state.clone()
}

// Invalidate discards any in-flight load without publishing anything.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.gen++
	l.mu.Unlock()
}

// Load fetches the options of every field concurrently and blocks until they have settled or
// been superseded. Sources without the option capability settle immediately with empty maps.
// A failing field settles with an empty list; Load itself never fails.
func (l *Loader) Load(ctx context.Context, src any, fields []string) {
	gen := l.begin()

	fetcher, ok := datasource.OptionsFetcher(src)
	if !ok {
		l.publish(gen, State{
			FilterOptions:  map[string][]string{},
			LoadingOptions: map[string]bool{},
		})
		return
	}

	loading := make(map[string]bool, len(fields))
	for _, f := range fields {
		loading[f] = true
	}
	l.mu.Lock()
	current := l.state.FilterOptions
	l.mu.Unlock()
	if !l.publish(gen, State{FilterOptions: current, LoadingOptions: loading}) {
		return
	}

	var (
		mu      sync.Mutex
		results = make(map[string][]string, len(fields))
		g       errgroup.Group
	)
	for _, field := range fields {
		g.Go(func() error {
			opts, err := fetcher.FetchFilterOptions(ctx, field)
			if err != nil {
				log.Error().Err(err).Str("field", field).Msg("failed to load filter options")
				opts = []string{}
			}
			if opts == nil {
				opts = []string{}
			}
			mu.Lock()
			results[field] = opts
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if !l.publish(gen, State{FilterOptions: results, LoadingOptions: map[string]bool{}}) {
		log.Debug().Msgf("discarding filter options of superseded load %d", gen)
	}
}

func (l *Loader) begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.gen++
	return l.gen
}

// publish replaces the state when gen is still current and reports whether it did.
func (l *Loader) publish(gen uint64, s State) bool {
	l.mu.Lock()
	if gen != l.gen {
		l.mu.Unlock()
		return false
	}
	l.state = s.clone()
	snapshot := l.state.clone()
	l.mu.Unlock()

	if l.onChange != nil {
		l.onChange(snapshot)
	}
	return true
}
