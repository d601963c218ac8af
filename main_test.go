package main

import (
	"bytes"
	"github.com/alaarab/ogrid-go/internal/config"
	"github.com/alaarab/ogrid-go/internal/demo"
	"github.com/alaarab/ogrid-go/pkg/filter"
	"github.com/alaarab/ogrid-go/pkg/query"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSort(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		raw     string
		want    query.Sort
		wantErr string
	}{
		"empty":          {raw: "", want: query.Sort{}},
		"field only":     {raw: "budget", want: query.Sort{Field: "budget", Direction: query.Asc}},
		"descending":     {raw: "budget:DESC", want: query.Sort{Field: "budget", Direction: query.Desc}},
		"unknown column": {raw: "nope:asc", wantErr: `unknown sort column "nope"`},
		"bad direction":  {raw: "name:up", wantErr: `invalid sort direction "up"`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseSort(demo.Columns(), tc.raw)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseFilters(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		args    []string
		want    filter.Filters
		wantErr string
	}{
		"none": {want: filter.Filters{}},
		"typed by column": {
			args: []string{"name=proj", "status=Active, On Hold,", "ownerEmail=carol.lee@example.com"},
			want: filter.Filters{
				"name":       filter.Text("proj"),
				"status":     filter.MultiSelect("Active", "On Hold"),
				"ownerEmail": filter.PersonFilter(filter.Person{DisplayName: "carol.lee@example.com", Email: "carol.lee@example.com"}),
			},
		},
		"blank values drop": {args: []string{"name= ", "status=,"}, want: filter.Filters{}},
		"missing equals":    {args: []string{"name"}, wantErr: `invalid filter "name", want field=value`},
		"not filterable":    {args: []string{"budget=10"}, wantErr: `no column filters on "budget"`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parseFilters(demo.Columns(), tc.args)
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.True(t, tc.want.Equal(got), "got %v", got)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	defer setupLogging(os.Stderr, false)
	var buf bytes.Buffer

	setupLogging(&buf, false)
	log.Debug().Msg("hidden")
	log.Info().Msg("shown")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	setupLogging(&buf, true)
	log.Debug().Msg("details")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	out := buf.String()
	require.Contains(t, out, "shown")
	require.Contains(t, out, "details")
	require.NotContains(t, out, "hidden")
}

func execute(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRenderCmd(t *testing.T) {
	t.Parallel()
	tests := map[string][]string{
		"in memory": {"render", "--rows", "12", "--page-size", "5", "--sort", "name:desc", "--page", "2"},
		"sqlite":    {"render", "--server", "--rows", "12", "--page-size", "5", "--sort", "name:desc", "--page", "2"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			out := execute(t, config.Default(), args...)

			req.Contains(out, "Project Name ▼")
			req.Contains(out, "Showing 6 to 10 of 12 projects")
			// names descending: L K J I H on page 1, G F E D C on page 2
			req.Contains(out, "Project G")
			req.Contains(out, "Project C")
			req.NotContains(out, "Project H")
			req.NotContains(out, "Project B")
		})
	}
}

func TestRenderCmd_filtered(t *testing.T) {
	out := execute(t, config.Default(), "render", "--server", "--rows", "20", "--filter", "status=Planning")
	require.Contains(t, out, "Status •")
	require.Contains(t, out, "Showing 1 to 4 of 4 projects")

	out = execute(t, config.Default(), "render", "--rows", "20", "--filter", "name=zzz")
	require.Contains(t, out, "No results match the current filters")
}

func TestExportCmd(t *testing.T) {
	req := require.New(t)
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()

	out := execute(t, cfg, "export", "--rows", "30", "--filter", "department=Sales", "--out", "sales.csv")
	path := filepath.Join(cfg.ExportDir, "sales.csv")
	req.Equal(path+"\n", out)

	data, err := os.ReadFile(path)
	req.NoError(err)
	lines := strings.Split(string(data), "\n")
	req.Len(lines, 6, "header plus the five Sales projects")
	req.Equal("Project Name,Status,Owner,Department,Budget,Start Date", lines[0])
	for _, l := range lines[1:] {
		req.Contains(l, ",Sales,")
	}

	execute(t, cfg, "export", "--server", "--rows", "30", "--page-size", "10", "--page-only", "--out", "page.csv")
	data, err = os.ReadFile(filepath.Join(cfg.ExportDir, "page.csv"))
	req.NoError(err)
	req.Len(strings.Split(string(data), "\n"), 11)
}

func TestRootCmd_badFlags(t *testing.T) {
	cmd := rootCmd(config.Default())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render", "--sort", "nope"})
	require.ErrorContains(t, cmd.Execute(), `unknown sort column "nope"`)
}
