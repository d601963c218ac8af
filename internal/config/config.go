package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	configDirName  = ".ogrid"
	configFileName = "ogrid.conf"

	ModeClient = "client"
	ModeServer = "server"
)

type Config struct {
	// PageSize is the initial grid page size.
	PageSize int
	// Rows is the number of demo projects generated.
	Rows int
	// Seed makes the demo rows reproducible.
	Seed uint64
	// Database is the SQLite file used in server mode, ":memory:" for a throwaway one.
	Database string
	Debug    bool
	// FetchRate and FetchBurst limit the calls made to the server-side data source.
	FetchRate  float64
	FetchBurst int
	ExportDir  string
	Mode       string
}

// Default is the configuration used when no file exists.
func Default() *Config {
	return &Config{
		PageSize:   20,
		Rows:       200,
		Seed:       42,
		Database:   ":memory:",
		FetchRate:  20,
		FetchBurst: 5,
		ExportDir:  ".",
		Mode:       ModeClient,
	}
}

// Dir returns the ogrid directory in the user's home directory.
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// NewConfig loads ~/.ogrid/ogrid.conf.
func NewConfig() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to get ogrid directory: %w", err)
	}
	return Load(filepath.Join(dir, configFileName))
}

// Load reads a key=value configuration file over the defaults. A missing file is not an error.
func Load(configPath string) (*Config, error) {
	config := Default()

	file, err := os.Open(configPath)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "page_size":
			config.PageSize, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid page size value: %w", err)
			}
		case "rows":
			config.Rows, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid rows value: %w", err)
			}
		case "seed":
			config.Seed, err = strconv.ParseUint(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid seed value: %w", err)
			}
		case "database":
			config.Database = value
		case "debug":
			config.Debug = value == "true"
		case "fetch_rate":
			config.FetchRate, err = strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid fetch rate value: %w", err)
			}
		case "fetch_burst":
			config.FetchBurst, err = strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid fetch burst value: %w", err)
			}
		case "export_dir":
			config.ExportDir = value
		case "mode":
			config.Mode = strings.ToLower(value)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return config, nil
}

func (c *Config) validate() error {
	var errGrp []error
	if c.PageSize <= 0 {
		errGrp = append(errGrp, errors.New("page_size must be positive"))
	}
	if c.Rows < 0 {
		errGrp = append(errGrp, errors.New("rows cannot be negative"))
	}
	if c.Database == "" {
		errGrp = append(errGrp, errors.New("database cannot be empty"))
	}
	if c.FetchRate <= 0 {
		errGrp = append(errGrp, errors.New("fetch_rate must be positive"))
	}
	if c.FetchBurst <= 0 {
		errGrp = append(errGrp, errors.New("fetch_burst must be positive"))
	}
	if c.Mode != ModeClient && c.Mode != ModeServer {
		errGrp = append(errGrp, fmt.Errorf("mode must be %q or %q, got %q", ModeClient, ModeServer, c.Mode))
	}
	return errors.Join(errGrp...)
}
