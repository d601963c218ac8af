// Package demo holds the sample project dataset shared by the skins and the SQLite store.
package demo

import (
	"cmp"
	"fmt"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

var (
	Statuses    = []string{"Active", "Planning", "On Hold", "Completed", "Cancelled"}
	Owners      = []string{"Alice Johnson", "Bob Smith", "Carol Lee", "David Kim", "Eve Torres", "Frank Wu", "Grace Park", "Henry Adams"}
	Departments = []string{"Engineering", "Marketing", "Sales", "Finance", "Operations", "HR"}
)

const firstYear = 2022

type Project struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Status     string  `json:"status"`
	Owner      string  `json:"owner"`
	OwnerEmail string  `json:"ownerEmail"`
	Budget     float64 `json:"budget"`
	StartDate  string  `json:"startDate"`
	Department string  `json:"department"`
}

// Year is the year the project started, zero when the start date is malformed.
func (p Project) Year() int {
	if len(p.StartDate) < 4 {
		return 0
	}
	y, err := strconv.Atoi(p.StartDate[:4])
	if err != nil {
		return 0
	}
	return y
}

// Email derives the directory address of a demo owner.
func Email(owner string) string {
	return strings.ReplaceAll(strings.ToLower(owner), " ", ".") + "@example.com"
}

// People lists the demo owners as directory entries.
func People() []filter.Person {
	out := make([]filter.Person, 0, len(Owners))
	for _, o := range Owners {
		out = append(out, filter.Person{DisplayName: o, Email: Email(o)})
	}
	return out
}

// MakeProjects builds count projects. The same seed always yields the same rows.
func MakeProjects(count int, seed uint64) []Project {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]Project, 0, count)
	for i := 0; i < count; i++ {
		suffix := ""
		if n := i / 26; n > 0 {
			suffix = strconv.Itoa(n)
		}
		owner := Owners[i%len(Owners)]
		start := time.Date(firstYear+i%5, time.Month(i%12+1), 1+i%28, 0, 0, 0, 0, time.UTC)
		out = append(out, Project{
			ID:         fmt.Sprintf("proj-%d", i+1),
			Name:       fmt.Sprintf("Project %c%s", 'A'+rune(i%26), suffix),
			Status:     Statuses[i%len(Statuses)],
			Owner:      owner,
			OwnerEmail: Email(owner),
			Budget:     float64(int((5000+r.Float64()*95000)*100)) / 100,
			StartDate:  start.Format(time.DateOnly),
			Department: Departments[i%len(Departments)],
		})
	}
	return out
}

// Columns describes how the grid shows projects.
func Columns() []column.Def[Project] {
	return []column.Def[Project]{
		{
			ID:           "name",
			Name:         "Project Name",
			Required:     true,
			Filter:       &column.FilterDef{Type: column.FilterText},
			MinWidth:     14,
			DefaultWidth: 16,
		},
		{
			ID:           "status",
			Name:         "Status",
			Filter:       &column.FilterDef{Type: column.FilterMultiSelect, Field: "status"},
			DefaultWidth: 10,
		},
		{
			ID:           "owner",
			Name:         "Owner",
			Filter:       &column.FilterDef{Type: column.FilterText},
			DefaultWidth: 14,
		},
		{
			ID:            "ownerEmail",
			Name:          "Owner Email",
			DefaultHidden: true,
			Filter:        &column.FilterDef{Type: column.FilterPeople},
			DefaultWidth:  26,
		},
		{
			ID:           "department",
			Name:         "Department",
			Filter:       &column.FilterDef{Type: column.FilterMultiSelect, Field: "department"},
			DefaultWidth: 12,
		},
		{
			ID:           "budget",
			Name:         "Budget",
			Compare:      func(a, b Project) int { return cmp.Compare(a.Budget, b.Budget) },
			Render:       func(p Project) string { return fmt.Sprintf("%.2f", p.Budget) },
			DefaultWidth: 10,
		},
		{
			ID:           "startDate",
			Name:         "Start Date",
			DefaultWidth: 10,
		},
		{
			ID:            "year",
			Name:          "Start Year",
			DefaultHidden: true,
			Filter:        &column.FilterDef{Type: column.FilterMultiSelect, OptionsSource: column.OptionsYears},
			Value:         func(p Project) any { return p.Year() },
			DefaultWidth:  6,
		},
	}
}
