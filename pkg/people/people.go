// Package people backs the people filter: a debounced directory search and a cached lookup of
// the selected person by email.
package people

import (
	"context"
	"errors"
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/datasource"
	"github.com/alaarab/ogrid-go/pkg/filter"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/romdo/go-debounce"
	"github.com/rs/zerolog/log"
	"strings"
	"sync"
	"time"
)

const (
	DefaultDelay     = 300 * time.Millisecond
	DefaultCacheSize = 128
)

var ErrUnsupported = errors.New("data source does not support people search")

// Results is the published state of a search.
type Results struct {
	Query   string
	People  []filter.Person
	Loading bool
}

type Config struct {
	// Source must implement datasource.PeopleSearcher; datasource.UserLookup enables Resolve.
	Source    any
	Delay     time.Duration
	CacheSize int
	// OnChange receives every published Results.
	OnChange func(Results)
}

func (c *Config) validate() error {
	var errs []error
	if _, ok := datasource.People(c.Source); !ok {
		errs = append(errs, ErrUnsupported)
	}
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative: %s", c.Delay))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache size must not be negative: %d", c.CacheSize))
	}
	return errors.Join(errs...)
}

// Searcher runs at most one directory search per quiet period. Keystrokes arriving within Delay
// of each other collapse into one search for the latest text, and results of a search that was
// superseded while in flight are dropped.
type Searcher struct {
	searcher datasource.PeopleSearcher
	users    datasource.UserLookup

	ctx    context.Context
	cancel context.CancelFunc

	debounced      func()
	cancelDebounce func()

	searches *lru.Cache[string, []filter.Person]
	persons  *lru.Cache[string, *filter.Person]

	mu       sync.Mutex
	gen      uint64
	pending  string
	results  Results
	onChange func(Results)
}

func New(cfg *Config) (*Searcher, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	delay := cfg.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	size := cfg.CacheSize
	if size == 0 {
		size = DefaultCacheSize
	}

	searches, err := lru.New[string, []filter.Person](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create search cache: %w", err)
	}
	persons, err := lru.New[string, *filter.Person](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create person cache: %w", err)
	}

	s := &Searcher{
		searches: searches,
		persons:  persons,
		onChange: cfg.OnChange,
	}
	s.searcher, _ = datasource.People(cfg.Source)
	s.users, _ = datasource.Users(cfg.Source)
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.debounced, s.cancelDebounce = debounce.New(delay, s.run)

	return s, nil
}

// Search schedules a search for text. Blank text clears the results at once.
func (s *Searcher) Search(text string) {
	q := strings.TrimSpace(text)

	s.mu.Lock()
	s.gen++
	s.pending = q
	if q == "" {
		s.results = Results{}
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		s.cancelDebounce()
		s.notify(snapshot)
		return
	}

	if cached, ok := s.searches.Get(q); ok {
		s.results = Results{Query: q, People: cached}
		snapshot := s.snapshotLocked()
		s.mu.Unlock()
		s.cancelDebounce()
		s.notify(snapshot)
		return
	}

	s.results = Results{Query: q, People: s.results.People, Loading: true}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	s.debounced()
}

// Results returns the current search state.
func (s *Searcher) Results() Results {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Searcher) run() {
	s.mu.Lock()
	gen, q := s.gen, s.pending
	s.mu.Unlock()
	if q == "" || s.ctx.Err() != nil {
		return
	}

	found, err := s.searcher.SearchPeople(s.ctx, q)
	if err != nil {
		log.Error().Err(err).Str("query", q).Msg("people search failed")
		found = []filter.Person{}
	} else {
		s.searches.Add(q, found)
	}

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		log.Debug().Msgf("dropping results of superseded people search %q", q)
		return
	}
	s.results = Results{Query: q, People: found}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Resolve looks up the person with the given email. A nil person with a nil error means the
// directory has no such person.
func (s *Searcher) Resolve(ctx context.Context, email string) (*filter.Person, error) {
	if s.users == nil {
		return nil, ErrUnsupported
	}
	key := strings.ToLower(strings.TrimSpace(email))
	if key == "" {
		return nil, nil
	}
	if p, ok := s.persons.Get(key); ok {
		return p, nil
	}

	p, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", email, err)
	}
	s.persons.Add(key, p)
	return p, nil
}

// Close stops pending searches. Results of in-flight searches are discarded.
func (s *Searcher) Close() {
	s.cancelDebounce()
	s.cancel()
	s.mu.Lock()
	s.gen++
	s.mu.Unlock()
}

func (s *Searcher) snapshotLocked() Results {
	r := s.results
	r.People = append([]filter.Person(nil), r.People...)
	return r
}

func (s *Searcher) notify(r Results) {
	if s.onChange != nil {
		s.onChange(r)
	}
}
