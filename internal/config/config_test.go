package config

import (
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func writeConf(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_missingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.conf"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad(t *testing.T) {
	p := writeConf(t, `
# demo settings
page_size = 50
rows=1000
seed=7
database = /tmp/ogrid.db
debug=true
fetch_rate=2.5
fetch_burst=3
export_dir=/tmp/out
mode = SERVER
unknown_key=ignored
not a pair
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, &Config{
		PageSize:   50,
		Rows:       1000,
		Seed:       7,
		Database:   "/tmp/ogrid.db",
		Debug:      true,
		FetchRate:  2.5,
		FetchBurst: 3,
		ExportDir:  "/tmp/out",
		Mode:       ModeServer,
	}, cfg)
}

func TestLoad_errors(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		body    string
		wantErr string
	}{
		"bad page size":  {body: "page_size=lots", wantErr: "invalid page size value"},
		"bad rows":       {body: "rows=-", wantErr: "invalid rows value"},
		"bad seed":       {body: "seed=-1", wantErr: "invalid seed value"},
		"bad rate":       {body: "fetch_rate=fast", wantErr: "invalid fetch rate value"},
		"bad burst":      {body: "fetch_burst=x", wantErr: "invalid fetch burst value"},
		"zero page size": {body: "page_size=0", wantErr: "page_size must be positive"},
		"negative rows":  {body: "rows=-4", wantErr: "rows cannot be negative"},
		"empty database": {body: "database=", wantErr: "database cannot be empty"},
		"zero rate":      {body: "fetch_rate=0", wantErr: "fetch_rate must be positive"},
		"zero burst":     {body: "fetch_burst=0", wantErr: "fetch_burst must be positive"},
		"unknown mode":   {body: "mode=hybrid", wantErr: `got "hybrid"`},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeConf(t, tc.body))
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDir(t *testing.T) {
	t.Setenv("HOME", "/home/someone")
	dir, err := Dir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/home/someone", configDirName), dir)
}
