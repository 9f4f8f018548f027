package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/sticky-circle/internal/config"
	"github.com/iburimskiy/sticky-circle/internal/game"
	"github.com/iburimskiy/sticky-circle/internal/notify"
	"github.com/iburimskiy/sticky-circle/internal/watch"
)

func initLogger(level string, json bool) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	zerolog.SetGlobalLevel(lvl)
	if !json {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

func main() {
	fs := flag.NewFlagSet("sticky-circle", flag.ExitOnError)
	logLevel := fs.String("log-level", "info", "debug, info, warn or error")
	logJSON := fs.Bool("log-json", false, "log JSON lines instead of console output")
	watchConfig := fs.Bool("watch", false, "reload the -config file when it changes")
	dumpConfig := fs.Bool("dump-config", false, "print the effective config and exit")
	pickSound := fs.Bool("pick-sound", false, "choose the reload sound in a file dialog")

	cfg, path, err := config.Parse(fs, os.Args[1:])
	if lerr := initLogger(*logLevel, *logJSON); lerr != nil {
		log.Fatal().Err(lerr).Msg("Failed to initialize logger")
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid config")
	}

	if *dumpConfig {
		b, err := cfg.JSON()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode config")
		}
		fmt.Println(string(b))
		return
	}

	if *pickSound {
		p, err := notify.PickSound()
		if err != nil {
			log.Warn().Err(err).Msg("Sound dialog failed")
		} else if p != "" {
			cfg.Sound = p
		}
	}

	var opts []game.Option
	sinks, chime, err := notify.FromConfig(cfg)
	if err != nil {
		log.Warn().Err(err).Str("sound", cfg.Sound).Msg("Reload sound disabled")
	}
	if chime != nil {
		defer chime.Close()
		opts = append(opts, game.WithSoundPicker(func() error {
			p, err := notify.PickSound()
			if err != nil || p == "" {
				return err
			}
			if err := chime.SetSound(p); err != nil {
				return err
			}
			log.Info().Str("sound", p).Msg("Reload sound changed")
			return nil
		}))
	}
	dispatcher := notify.NewDispatcher(sinks...)
	defer dispatcher.Close()

	if *watchConfig {
		if path == "" {
			log.Warn().Msg("-watch needs -config, not watching")
		} else {
			w, err := watch.New(path)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to watch config")
			}
			defer w.Close()
			opts = append(opts, game.WithConfigUpdates(w.Updates(), w.Errors()))
		}
	}

	opts = append(opts,
		game.WithLogger(log.With().Str("module", "sticky").Logger()),
		game.WithNotifier(dispatcher),
	)
	g := game.New(cfg, opts...)

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("Sticky circle - pull to reload, S: stop, Esc/Q: quit")

	log.Info().Str("config", path).Msg("Starting")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("Game stopped")
		os.Exit(1)
	}
}
