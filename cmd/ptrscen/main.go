// Copyright 2025 dacapoday
// SPDX-License-Identifier: Apache-2.0

// ptrscen runs the ownership scenarios and a concurrent stress of weak
// Lock against the last strong Reset.
//
// Usage:
//
//	ptrscen                       # scenarios + stress with defaults
//	ptrscen -config ptrscen.yaml  # sizes from a yaml file
//	ptrscen -metrics              # print counters when done
//
// A .env file in the working directory is loaded first; PTRSCEN_*
// variables override the yaml file, flags override both.
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/term"

	"github.com/dacapoday/smart"
)

func main() {
	configFlag := flag.String("config", "", "yaml config file")
	levelFlag := flag.String("log-level", "", "log level (overrides config)")
	metricsFlag := flag.Bool("metrics", false, "print metrics when done")
	flag.Parse()

	boot := newLogger("info")
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		boot.Warn().Err(err).Msg("[main] load .env")
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		boot.Error().Err(err).Msg("[config] failed to load")
		os.Exit(1)
	}
	if *levelFlag != "" {
		cfg.LogLevel = *levelFlag
	}
	if *metricsFlag {
		cfg.Metrics = true
	}

	log := newLogger(cfg.LogLevel)
	smart.SetLogger(log)

	logf := func(format string, args ...any) { log.Debug().Msgf(format, args...) }
	if _, err := maxprocs.Set(maxprocs.Logger(logf)); err != nil {
		log.Warn().Err(err).Msg("[main] setting up GOMAXPROCS value failed")
	}
	log.Debug().Msgf("[main] GOMAXPROCS=%d", runtime.GOMAXPROCS(0))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if !run(ctx, log, cfg) {
		os.Exit(1)
	}
}

func run(ctx context.Context, log zerolog.Logger, cfg *Config) (ok bool) {
	ok = true
	for _, s := range scenarios {
		if err := s.run(); err != nil {
			log.Error().Err(err).Str("scenario", s.name).Msg("failed")
			ok = false
			continue
		}
		log.Info().Str("scenario", s.name).Msg("ok")
	}

	start := time.Now()
	if err := stress(ctx, cfg.Stress); err != nil {
		log.Error().Err(err).Msg("stress failed")
		ok = false
	} else {
		log.Info().
			Int("workers", cfg.Stress.Workers).
			Int("rounds", cfg.Stress.Rounds).
			Int("lockers", cfg.Stress.Lockers).
			Dur("took", time.Since(start)).
			Msg("stress ok")
	}

	if cfg.Metrics {
		smart.WriteMetrics(os.Stdout)
	}
	return
}

// newLogger writes human-readable logs to a terminal and JSON otherwise.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if term.IsTerminal(int(os.Stderr.Fd())) {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(lvl).With().Timestamp().Logger()
}
