package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/alaarab/ogrid-go/internal/app"
	"github.com/alaarab/ogrid-go/internal/config"
	"github.com/alaarab/ogrid-go/internal/demo"
	"github.com/alaarab/ogrid-go/internal/skin/table"
	"github.com/alaarab/ogrid-go/internal/skin/tui"
	"github.com/alaarab/ogrid-go/internal/store"
	"github.com/alaarab/ogrid-go/pkg/column"
	"github.com/alaarab/ogrid-go/pkg/csvexport"
	"github.com/alaarab/ogrid-go/pkg/datasource"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/grid"
	"github.com/alaarab/ogrid-go/pkg/query"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	serviceName   = "OGrid"
	stopTimeout   = 5 * time.Second
	settleTimeout = 30 * time.Second
	logFileName   = "ogrid.log"
	rowsLabel     = "projects"
)

// options are the settings shared by every command: the config file overridden by flags.
type options struct {
	cfg      *config.Config
	server   bool
	rows     int
	pageSize int
	sortBy   string
	filters  []string
}

func rootCmd(cfg *config.Config) *cobra.Command {
	o := &options{cfg: cfg}
	cmd := &cobra.Command{
		Use:          "ogrid",
		Short:        "Browse, filter and export a paginated data grid",
		Long:         "Runs the grid over a generated project dataset, in memory or behind a SQLite data source",
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&o.server, "server", cfg.Mode == config.ModeServer, "serve rows from the SQLite store instead of memory")
	flags.IntVar(&o.rows, "rows", cfg.Rows, "number of generated projects")
	flags.IntVar(&o.pageSize, "page-size", cfg.PageSize, "rows per page")
	flags.StringVar(&o.sortBy, "sort", "", "initial sort as field[:asc|desc]")
	flags.StringArrayVar(&o.filters, "filter", nil, "initial filter as field=value, multi-select values comma separated")

	cmd.AddCommand(tuiCmd(o), renderCmd(o), exportCmd(o))
	return cmd
}

func tuiCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// the terminal belongs to the UI, logs go to a file
			closeLog := logToFile(o.cfg.Debug)
			defer closeLog()

			return o.run(cmd.Context(), func(ctx context.Context, st *store.Store) error {
				updates := tui.NewUpdates()
				g, err := o.newGrid(ctx, st, updates.Notify)
				if err != nil {
					return err
				}
				defer g.Close()

				m := tui.New(&tui.Config[demo.Project]{
					Grid:       g,
					Updates:    updates,
					Downloader: &csvexport.FileDownloader{Dir: o.cfg.ExportDir},
					Label:      rowsLabel,
					Title:      title(o.server),
				})
				_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
				if errors.Is(err, tea.ErrProgramKilled) {
					return nil
				}
				return err
			})
		},
	}
}

func renderCmd(o *options) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print one page of the grid",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd.Context(), func(ctx context.Context, st *store.Store) error {
				updates := make(chan struct{}, 1)
				g, err := o.newGrid(ctx, st, notifier(updates))
				if err != nil {
					return err
				}
				defer g.Close()

				g.SetPage(page)
				if err = settle(ctx, g, updates); err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), table.Render(g.View(), rowsLabel))
				return err
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page to print")
	return cmd
}

func exportCmd(o *options) *cobra.Command {
	var out string
	var pageOnly bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered rows to a CSV file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd.Context(), func(ctx context.Context, st *store.Store) error {
				updates := make(chan struct{}, 1)
				g, err := o.newGrid(ctx, st, notifier(updates))
				if err != nil {
					return err
				}
				defer g.Close()

				if err = settle(ctx, g, updates); err != nil {
					return err
				}

				name := out
				if name == "" {
					name = csvexport.DefaultFilename(time.Now())
				}
				scope := grid.ExportAll
				if pageOnly {
					scope = grid.ExportPage
				}
				if err = g.ExportCSV(&csvexport.FileDownloader{Dir: o.cfg.ExportDir}, name, scope); err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), filepath.Join(o.cfg.ExportDir, name))
				return err
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "file name inside export_dir, export_YYYY-MM-DD.csv when empty")
	cmd.Flags().BoolVar(&pageOnly, "page-only", false, "export only the first page")
	return cmd
}

// run starts the store when serving from SQLite, runs fn and shuts everything down.
func (o *options) run(ctx context.Context, fn func(ctx context.Context, st *store.Store) error) error {
	var deps []app.Dependency
	var st *store.Store
	if o.server {
		var err error
		st, err = store.New(&store.Config{
			DSN:  o.cfg.Database,
			Seed: demo.MakeProjects(o.rows, o.cfg.Seed),
		})
		if err != nil {
			return err
		}
		deps = append(deps, st)
	}

	application, err := app.CreateApp(&app.Config{
		ServiceName: serviceName,
		StopTimeout: stopTimeout,
		Main: func(ctx context.Context) error {
			return fn(ctx, st)
		},
	}, deps...)
	if err != nil {
		return err
	}
	return application.Run(ctx)
}

// newGrid builds the grid over generated rows, or over the store when one is given.
func (o *options) newGrid(ctx context.Context, st *store.Store, onUpdate func()) (*grid.Grid[demo.Project], error) {
	cols := demo.Columns()
	s, err := parseSort(cols, o.sortBy)
	if err != nil {
		return nil, err
	}
	filters, err := parseFilters(cols, o.filters)
	if err != nil {
		return nil, err
	}

	cfg := &grid.Config[demo.Project]{
		Columns:              cols,
		DefaultPageSize:      o.pageSize,
		DefaultSortBy:        s.Field,
		DefaultSortDirection: s.Direction,
		OnUpdate:             onUpdate,
		Context:              ctx,
	}
	if st != nil {
		limiter := rate.NewLimiter(rate.Limit(o.cfg.FetchRate), o.cfg.FetchBurst)
		cfg.Source = datasource.NewRateLimited[demo.Project](st, limiter)
	} else {
		cfg.Data = demo.MakeProjects(o.rows, o.cfg.Seed)
	}

	g, err := grid.New(cfg)
	if err != nil {
		return nil, err
	}
	if len(filters) > 0 {
		g.SetFilters(filters)
	}
	return g, nil
}

func notifier(ch chan struct{}) func() {
	return func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// settle waits until the grid has no page request in flight.
func settle[T any](ctx context.Context, g *grid.Grid[T], updates <-chan struct{}) error {
	ctx, cancel := context.WithTimeout(ctx, settleTimeout)
	defer cancel()
	for g.View().Loading {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for the data source: %w", ctx.Err())
		case <-updates:
		}
	}
	return nil
}

// parseSort reads field[:asc|desc].
func parseSort[T any](cols []column.Def[T], raw string) (query.Sort, error) {
	if raw == "" {
		return query.Sort{}, nil
	}
	field, dir, _ := strings.Cut(raw, ":")
	c, ok := column.Find(cols, field)
	if !ok {
		return query.Sort{}, fmt.Errorf("unknown sort column %q", field)
	}
	if !c.Sortable() {
		return query.Sort{}, fmt.Errorf("column %q is not sortable", field)
	}

	s := query.Sort{Field: field, Direction: query.Asc}
	switch strings.ToLower(dir) {
	case "", string(query.Asc):
	case string(query.Desc):
		s.Direction = query.Desc
	default:
		return query.Sort{}, fmt.Errorf("invalid sort direction %q", dir)
	}
	return s, nil
}

// parseFilters reads field=value pairs, typed by the filter of the column owning the field.
func parseFilters[T any](cols []column.Def[T], args []string) (filter.Filters, error) {
	out := filter.Filters{}
	for _, raw := range args {
		field, value, ok := strings.Cut(raw, "=")
		if !ok {
			return nil, fmt.Errorf("invalid filter %q, want field=value", raw)
		}
		field = strings.TrimSpace(field)

		c, found := filterColumn(cols, field)
		if !found {
			return nil, fmt.Errorf("no column filters on %q", field)
		}
		switch c.FilterType() {
		case column.FilterText:
			out = filter.Merge(out, field, filter.Text(value))
		case column.FilterMultiSelect:
			var values []string
			for _, v := range strings.Split(value, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
			out = filter.Merge(out, field, filter.MultiSelect(values...))
		case column.FilterPeople:
			email := strings.TrimSpace(value)
			out = filter.Merge(out, field, filter.PersonFilter(filter.Person{DisplayName: email, Email: email}))
		}
	}
	return out, nil
}

func filterColumn[T any](cols []column.Def[T], field string) (column.Def[T], bool) {
	for _, c := range cols {
		if c.Filter != nil && c.FilterField() == field {
			return c, true
		}
	}
	return column.Def[T]{}, false
}

func title(server bool) string {
	if server {
		return "OGrid · SQLite"
	}
	return "OGrid · in memory"
}

// logToFile sends the global logger to ~/.ogrid/ogrid.log while the terminal UI runs.
func logToFile(debug bool) func() {
	dir, err := config.Dir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		setupLogging(io.Discard, debug)
		return func() {}
	}

	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		setupLogging(io.Discard, debug)
		return func() {}
	}
	setupLogging(f, debug)
	log.Debug().Msg("logging to " + f.Name())
	return func() {
		setupLogging(os.Stderr, debug)
		_ = f.Close()
	}
}
