package grid

import (
	"context"
	"errors"
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/datasource"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/query"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"sync/atomic"
	"testing"
	"time"
)

type server struct {
	*datasource.MockDataSource[member]
	*datasource.MockFilterOptionsFetcher
}

type directoryServer struct {
	*datasource.MockDataSource[member]
	*datasource.MockPeopleSearcher
	*datasource.MockUserLookup
}

// pageIs matches query.Params asking for one page number.
type pageIs int

func (p pageIs) Matches(x any) bool {
	params, ok := x.(query.Params)
	return ok && params.Page == int(p)
}

func (p pageIs) String() string {
	return fmt.Sprintf("asks for page %d", int(p))
}

func settle(t *testing.T, g *Grid[member]) View[member] {
	t.Helper()
	require.Eventually(t, func() bool { return !g.View().Loading }, 2*time.Second, 5*time.Millisecond)
	return g.View()
}

func newServerGrid(t *testing.T, src datasource.DataSource[member], mutate func(cfg *Config[member])) *Grid[member] {
	t.Helper()
	cfg := &Config[member]{Columns: memberColumns(), Source: src}
	if mutate != nil {
		mutate(cfg)
	}
	g, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(g.Close)
	return g
}

func TestServer_initialFetch(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := datasource.NewMockDataSource[member](ctrl)

	var got atomic.Pointer[query.Params]
	src.EXPECT().FetchPage(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p query.Params) (query.Result[member], error) {
		got.Store(&p)
		return query.Result[member]{Items: members[:2], TotalCount: 42}, nil
	})

	g := newServerGrid(t, src, nil)
	req.True(g.ServerSide())

	v := settle(t, g)
	req.Equal([]string{"Alice", "Bob"}, names(v.Items))
	req.Equal(42, v.TotalCount)
	req.Equal("Showing 1 to 20 of 42 items", v.Pager.Summary(""))

	p := got.Load()
	req.Equal(1, p.Page)
	req.Equal(DefaultPageSize, p.PageSize)
	req.Equal(&query.Sort{Field: "name", Direction: query.Asc}, p.Sort)
	req.Empty(p.Filters)
}

func TestServer_oneFetchPerTransition(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := datasource.NewMockDataSource[member](ctrl)

	var calls atomic.Int32
	var last atomic.Pointer[query.Params]
	src.EXPECT().FetchPage(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p query.Params) (query.Result[member], error) {
		calls.Add(1)
		last.Store(&p)
		return query.Result[member]{Items: []member{}, TotalCount: 0}, nil
	}).Times(6)

	g := newServerGrid(t, src, nil)
	settle(t, g)

	g.SetPage(3)
	settle(t, g)
	req.Equal(3, last.Load().Page)

	g.SetTextFilter("name", "al")
	settle(t, g)
	req.Equal(1, last.Load().Page)
	req.Equal(filter.Filters{"name": filter.Text("al")}, last.Load().Filters)

	g.ToggleSort("age")
	settle(t, g)
	req.Equal(&query.Sort{Field: "age", Direction: query.Asc}, last.Load().Sort)

	g.SetPageSize(50)
	settle(t, g)
	req.Equal(50, last.Load().PageSize)

	// visibility changes never fetch
	g.ToggleColumnVisibility("team")
	g.SelectAllColumns()
	g.ClearAllColumns()
	req.False(g.View().Loading)

	// unchanged state does not fetch on Refresh
	g.Refresh()

	g.Reload()
	settle(t, g)
	req.Equal(int32(6), calls.Load())
}

func TestServer_staleResponseDiscarded(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := datasource.NewMockDataSource[member](ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	src.EXPECT().FetchPage(gomock.Any(), pageIs(1)).DoAndReturn(func(context.Context, query.Params) (query.Result[member], error) {
		close(started)
		<-release
		return query.Result[member]{Items: []member{{Name: "stale"}}, TotalCount: 1}, nil
	})
	src.EXPECT().FetchPage(gomock.Any(), pageIs(2)).Return(query.Result[member]{Items: members[2:4], TotalCount: 4}, nil)

	g := newServerGrid(t, src, nil)
	<-started
	req.True(g.View().Loading)

	g.SetPage(2)
	v := settle(t, g)
	req.Equal([]string{"Cal", "Dee"}, names(v.Items))

	close(release)
	req.Never(func() bool {
		items := g.View().Items
		return len(items) != 2 || items[0].Name == "stale"
	}, 100*time.Millisecond, 5*time.Millisecond)
	req.Equal(4, g.View().TotalCount)
}

func TestServer_fetchFailure(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := datasource.NewMockDataSource[member](ctrl)

	src.EXPECT().FetchPage(gomock.Any(), pageIs(1)).Return(query.Result[member]{Items: members, TotalCount: 5}, nil)
	src.EXPECT().FetchPage(gomock.Any(), pageIs(2)).Return(query.Result[member]{Items: members, TotalCount: 5}, errors.New("backend unavailable"))

	g := newServerGrid(t, src, nil)
	req.Len(settle(t, g).Items, 5)

	g.SetPage(2)
	v := settle(t, g)
	req.Empty(v.Items)
	req.NotNil(v.Items)
	req.Zero(v.TotalCount)
	req.False(v.Pager.Visible())
}

func TestServer_controlledRefresh(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := datasource.NewMockDataSource[member](ctrl)

	filters := filter.Filters{}
	var calls atomic.Int32
	src.EXPECT().FetchPage(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, query.Params) (query.Result[member], error) {
		calls.Add(1)
		return query.Result[member]{}, nil
	}).Times(2)

	g := newServerGrid(t, src, func(cfg *Config[member]) {
		cfg.Filters = Controlled[filter.Filters]{Get: func() filter.Filters { return filters }}
	})
	settle(t, g)

	g.Refresh()
	settle(t, g)
	req.Equal(int32(1), calls.Load())

	filters = filter.Filters{"team": filter.MultiSelect("Red")}
	g.Refresh()
	settle(t, g)
	req.Equal(int32(2), calls.Load())
}

func TestServer_filterOptions(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := &server{
		MockDataSource:           datasource.NewMockDataSource[member](ctrl),
		MockFilterOptionsFetcher: datasource.NewMockFilterOptionsFetcher(ctrl),
	}

	release := make(chan struct{})
	src.MockDataSource.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(query.Result[member]{Items: members, TotalCount: 5}, nil)
	src.MockFilterOptionsFetcher.EXPECT().FetchFilterOptions(gomock.Any(), "team").DoAndReturn(func(context.Context, string) ([]string, error) {
		<-release
		return []string{"Purple", "Red"}, nil
	})

	g := newServerGrid(t, datasource.NewRateLimited[member](src, nil), nil)
	g.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

	req.Eventually(func() bool { return g.LoadingOptions()["team"] }, time.Second, 5*time.Millisecond)
	req.Equal([]string{}, g.FilterOptions()["team"])
	req.Equal([]string{"Junior", "Senior"}, g.FilterOptions()["level"])

	close(release)
	req.Eventually(func() bool { return len(g.LoadingOptions()) == 0 }, time.Second, 5*time.Millisecond)
	req.Equal(map[string][]string{
		"team":   {"Purple", "Red"},
		"level":  {"Junior", "Senior"},
		"joined": {"2026", "2025", "2024"},
	}, g.FilterOptions())
}

func TestServer_filterOptionsWithoutFetcher(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := datasource.NewMockDataSource[member](ctrl)
	src.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(query.Result[member]{Items: members, TotalCount: 5}, nil)

	g := newServerGrid(t, src, nil)
	settle(t, g)

	// rows of a single page are not a reliable option source
	req.Empty(g.FilterOptions()["team"])
	req.Empty(g.LoadingOptions())
}

func TestServer_people(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := &directoryServer{
		MockDataSource:     datasource.NewMockDataSource[member](ctrl),
		MockPeopleSearcher: datasource.NewMockPeopleSearcher(ctrl),
		MockUserLookup:     datasource.NewMockUserLookup(ctrl),
	}
	alice := filter.Person{DisplayName: "Alice", Email: "alice@example.com"}

	src.MockDataSource.EXPECT().FetchPage(gomock.Any(), gomock.Any()).Return(query.Result[member]{}, nil).AnyTimes()
	src.MockPeopleSearcher.EXPECT().SearchPeople(gomock.Any(), "ali").Return([]filter.Person{alice}, nil)
	src.MockUserLookup.EXPECT().GetUserByEmail(gomock.Any(), "alice@example.com").Return(&alice, nil)

	var updates atomic.Int32
	g := newServerGrid(t, src, func(cfg *Config[member]) {
		cfg.PeopleSearchDelay = 10 * time.Millisecond
		cfg.OnUpdate = func() { updates.Add(1) }
	})
	req.True(g.SupportsPeople())

	g.SearchPeople("ali")
	req.Eventually(func() bool {
		r := g.PeopleResults()
		return !r.Loading && len(r.People) == 1
	}, time.Second, 5*time.Millisecond)

	p, err := g.ResolvePerson(context.Background(), "alice@example.com")
	req.NoError(err)
	req.Equal(&alice, p)

	g.SetPeopleFilter("email", p)
	v := settle(t, g)
	req.Equal(filter.Filters{"email": filter.PersonFilter(alice)}, v.Filters)
	req.Positive(updates.Load())
}

func TestServer_closeDiscards(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	src := datasource.NewMockDataSource[member](ctrl)

	release := make(chan struct{})
	src.EXPECT().FetchPage(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ query.Params) (query.Result[member], error) {
		<-release
		return query.Result[member]{Items: members, TotalCount: 5}, ctx.Err()
	})

	g, err := New(&Config[member]{Columns: memberColumns(), Source: src})
	req.NoError(err)

	g.Close()
	close(release)

	req.Never(func() bool { return len(g.View().Items) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	req.False(g.View().Loading)

	// no fetches after Close
	g.SetPage(2)
	req.False(g.View().Loading)
}
