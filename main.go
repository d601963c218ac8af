package main

import (
	"github.com/alaarab/ogrid-go/internal/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"io"
	"os"
	"time"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}
	setupLogging(os.Stderr, cfg.Debug)

	if err = rootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging points the global logger at w in console format.
func setupLogging(w io.Writer, debug bool) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		With().
		Timestamp().
		Logger()
}
