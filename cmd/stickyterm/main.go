// Command stickyterm runs the sticky circle in a terminal. Drag with the
// left mouse button to pull, s stops the reload, q quits.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/notify"
)

func main() {
	fs := flag.NewFlagSet("stickyterm", flag.ExitOnError)
	logFile := fs.String("log-file", "", "write logs here; the terminal is busy")
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")

	cfg, _, err := config.Parse(fs, os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.Nop()
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		lvl, err := zerolog.ParseLevel(*logLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Bad log level: %v\n", err)
			os.Exit(1)
		}
		logger = zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	}
	log.Logger = logger

	sinks, chime, err := notify.FromConfig(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Reload sound disabled")
	}
	if chime != nil {
		defer chime.Close()
	}
	dispatcher := notify.NewDispatcher(sinks...)
	defer dispatcher.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseDragEvents)
	screen.HideCursor()

	h := newHost(screen, cfg, logger.With().Str("module", "sticky").Logger())
	h.notify = dispatcher.Notify
	h.run()
}
