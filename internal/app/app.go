package app

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog/log"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"
)

//go:generate mockgen -destination=./app_mock.go -package=app -source=app.go

// Dependency is the interface that wraps the basic methods of a dependency required for the application.
type Dependency interface {
	// Start is anything a dependency needs to do before it's ready to be used. It must not block.
	Start() error
	// Stop is anything a dependency needs to do before it's ready to be stopped
	Stop() error
	// Name is the name of the dependency. It is used for logging and identification purposes, only.
	Name() string
}

type App struct {
	serviceName string
	// deps are started in order and stopped in reverse.
	deps []Dependency
	// main runs in the foreground once every dependency has started.
	main func(ctx context.Context) error
	// osSignalChan is a channel that will be used to signal when the OS has sent a signal to the application.
	osSignalChan chan os.Signal
	// stopCalled is an atomic bool. It allows stop to be called once
	stopCalled *atomic.Bool
	// runCalled allows Run to be called once
	runCalled *atomic.Bool
	// stopTimeout is the amount of time the application will wait for dependencies to stop before exiting.
	stopTimeout time.Duration
}

type Config struct {
	ServiceName string
	StopTimeout time.Duration
	// Main is the foreground work of the application, such as a terminal UI. The app shuts down
	// when it returns. Without it the app runs until the context is cancelled or a signal arrives.
	Main func(ctx context.Context) error
}

func (c *Config) validate() error {
	var errs []error
	if c.ServiceName == "" {
		errs = append(errs, errors.New("service name is required"))
	}
	if c.StopTimeout <= 0 {
		errs = append(errs, errors.New("stop timeout is required"))
	}
	return errors.Join(errs...)
}

// CreateApp creates a new application with the provided dependencies.
func CreateApp(cfg *Config, deps ...Dependency) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &App{
		serviceName:  cfg.ServiceName,
		deps:         deps,
		main:         cfg.Main,
		stopTimeout:  cfg.StopTimeout,
		stopCalled:   &atomic.Bool{},
		runCalled:    &atomic.Bool{},
		osSignalChan: make(chan os.Signal, 1), // first signal we get shuts down the app
	}, nil
}

// Run starts all dependencies, runs the main function and stops everything once it returns.
func (a *App) Run(ctx context.Context) error {
	if !a.runCalled.CompareAndSwap(false, true) {
		return errors.New("run has already been called")
	}

	// defer funcs are always LIFO - don't forget!
	ctxCancel, cancel := context.WithCancel(ctx)
	defer cancel()

	started, err := a.start()
	if err != nil {
		log.Error().Msg("Dependency failed to start: " + err.Error())
		return errors.Join(err, a.stop(started))
	}

	mainDone := make(chan error, 1)
	if a.main != nil {
		go func() {
			defer func() {
				if r := recover(); r != nil {
					mainDone <- fmt.Errorf("panic in %s: %v", a.serviceName, r)
				}
			}()
			mainDone <- a.main(ctxCancel)
		}()
	}

	// here we are waiting for a signal from the OS, the main function to finish,
	// or the ctx to just cancel
	signal.Notify(a.osSignalChan, os.Interrupt, syscall.SIGTERM)
	var runErr error
	select {
	case <-ctxCancel.Done():
		log.Info().Msg("App Context cancelled: shutting down")
	case runErr = <-mainDone:
		if runErr != nil {
			log.Error().Err(runErr).Msg(a.serviceName + " failed")
		}
	case sig := <-a.osSignalChan:
		log.Info().Msg("OS Signal received: " + sig.String() + " shutdown beginning...")
	}
	signal.Stop(a.osSignalChan)
	cancel()

	if err = a.stop(a.deps); err != nil {
		log.Error().Msg("Error stopping application: " + err.Error())
	}
	return errors.Join(runErr, err)
}

// start starts each dependency in order and returns the ones that started.
func (a *App) start() ([]Dependency, error) {
	for i, dep := range a.deps {
		log.Info().Msg("Starting dependency: " + dep.Name())
		if err := startOne(dep); err != nil {
			return a.deps[:i], err
		}
	}
	return a.deps, nil
}

func startOne(dep Dependency) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in Start() for dependency %s: %v", dep.Name(), r)
		}
	}()
	if err = dep.Start(); err != nil {
		return fmt.Errorf("failure in Start() for dependency %s: %w", dep.Name(), err)
	}
	return nil
}

// stop attempts a graceful shutdown of each dependency, last started first.
func (a *App) stop(deps []Dependency) error {
	if !a.stopCalled.CompareAndSwap(false, true) {
		return errors.New("stop has already been called")
	}

	ctxTo, cancel := context.WithTimeout(context.Background(), a.stopTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		var errs []error
		for i := len(deps) - 1; i >= 0; i-- {
			dep := deps[i]
			log.Info().Msg("Stopping dependency: " + dep.Name())
			if err := dep.Stop(); err != nil {
				errs = append(errs, fmt.Errorf("failure in Stop() for dependency %s: %w", dep.Name(), err))
			}
		}
		done <- errors.Join(errs...)
	}()

	// we need all dependencies to stop before we can return, unless they take too long
	select {
	case err := <-done:
		return err
	case <-ctxTo.Done():
		return fmt.Errorf("stopping %s: %w", a.serviceName, ctxTo.Err())
	}
}
