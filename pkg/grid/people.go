package grid

import (
	"context"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/people"
)

// SupportsPeople reports whether people filters can search a directory.
func (g *Grid[T]) SupportsPeople() bool {
	return g.people != nil
}

// SearchPeople schedules a debounced directory search. It is a no-op when the data source has
// no directory.
func (g *Grid[T]) SearchPeople(text string) {
	if g.people == nil {
		return
	}
	g.people.Search(text)
}

// PeopleResults returns the latest directory search state.
func (g *Grid[T]) PeopleResults() people.Results {
	if g.people == nil {
		return people.Results{}
	}
	return g.people.Results()
}

// ResolvePerson looks up the person behind an email, typically the one stored in a people
// filter.
func (g *Grid[T]) ResolvePerson(ctx context.Context, email string) (*filter.Person, error) {
	if g.people == nil {
		return nil, people.ErrUnsupported
	}
	return g.people.Resolve(ctx, email)
}
