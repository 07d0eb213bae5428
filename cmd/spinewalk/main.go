package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"spinewalk/internal/book"
	"spinewalk/internal/config"
	"spinewalk/internal/eventbus"
	"spinewalk/internal/logging"
	"spinewalk/internal/navigation"
	"spinewalk/internal/ui"
)

func main() {
	os.Exit(run())
}

// run does all the work so that deferred cleanup happens before exit
func run() int {
	// Parse command line arguments
	var bookPath, configPath, startAt, logPath, logLevel string
	flag.StringVar(&bookPath, "book", "", "Book directory or book.toml manifest")
	flag.StringVar(&bookPath, "b", "", "Book directory or book.toml manifest (shorthand)")
	flag.StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	flag.StringVar(&startAt, "start", "", `Where to start: "cover", "first" or a section id`)
	flag.StringVar(&logPath, "log", config.DefaultLogPath(), "Log file")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	// If no book specified, check for remaining args
	if bookPath == "" && flag.NArg() > 0 {
		bookPath = flag.Arg(0)
	}
	if bookPath == "" {
		var err error
		bookPath, err = os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			return 1
		}
	}

	absPath, err := filepath.Abs(bookPath)
	if err != nil {
		fmt.Printf("Error resolving path: %v\n", err)
		return 1
	}

	// Set up logging; the terminal belongs to the UI
	logger, err := logging.New(logging.Options{Path: logPath, Level: logLevel})
	if err != nil {
		fmt.Printf("Error setting up logging: %v\n", err)
		return 1
	}
	defer logger.Close()
	log := logger.Logger

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	bus := eventbus.New(log)
	defer bus.Close()
	subscribeLogging(bus, log)

	cfg, err := loadOrCreateConfig(config.NewConfigServiceWithBus(configPath, bus), log)
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		fmt.Printf("Error loading config: %v\n", err)
		return 1
	}
	if startAt == "" {
		startAt = cfg.Reader.StartAt
	}

	b, err := book.NewLoader(bus, log).Load(ctx, absPath)
	if err != nil {
		bus.Publish(eventbus.ErrorEvent{Message: "failed to load book " + absPath, Err: err})
		fmt.Printf("Error loading book: %v\n", err)
		return 1
	}

	cursor, err := navigation.NewCursor(b.Spine)
	if err != nil {
		fmt.Printf("Error creating cursor: %v\n", err)
		return 1
	}
	eventbus.NewCursorBridge(bus, cursor)

	model := ui.NewModel(b, cursor, cfg, bus, log)
	model.Open(startAt)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	log.Info().Str("book", b.Title()).Msg("starting UI")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("error running program")
		fmt.Printf("Error running program: %v\n", err)
		return 1
	}
	log.Info().Msg("UI exited normally")
	return 0
}

// subscribeLogging records config changes, reading positions and errors in the log
func subscribeLogging(bus eventbus.EventBus, log zerolog.Logger) {
	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			log.Info().Str("path", event.Path).Msg("config loaded")
		}
	})
	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			log.Info().Str("path", event.Path).Msg("config saved")
		}
	})
	bus.Subscribe(eventbus.EventSectionChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SectionChangedEvent); ok {
			log.Info().
				Str("from", event.PreviousID).
				Str("to", event.CurrentID).
				Int("index", event.CurrentIndex).
				Msg("reading position")
		}
	})
	bus.Subscribe(eventbus.EventError, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ErrorEvent); ok {
			log.Error().Err(event.Err).Msg(event.Message)
		}
	})
}

// loadOrCreateConfig loads the config file, writing the defaults on first run
func loadOrCreateConfig(cs config.ConfigService, log zerolog.Logger) (*config.Config, error) {
	if config.Exists(cs) {
		return cs.Load()
	}

	cfg := config.DefaultConfig()
	if err := cs.Save(cfg); err != nil {
		// Reading works without a config file
		log.Warn().Err(err).Str("path", cs.Path()).Msg("could not write default config")
	}
	return cfg, nil
}
