// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/poiesic/ncerr"
	"github.com/poiesic/ncerr/batch"
	"github.com/poiesic/ncerr/config"
	"github.com/poiesic/ncerr/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cfg).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(cfg *config.Config) *cli.App {
	dbFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to BadgerDB session error directory",
			Value:   cfg.DBPath,
		}
	}
	formatFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (text, yaml)",
			Value:   formatText,
		}
	}

	return &cli.App{
		Name:  "ncerr",
		Usage: "Translate datastore validation errors into NETCONF protocol errors",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   cfg.LogLevel,
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "translate",
				Usage:     "Translate validation messages and attach the results to a session",
				ArgsUsage: "[message...] (reads one message per line from stdin when omitted)",
				Action:    translateCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.BoolFlag{
						Name:  "in-memory",
						Usage: "Keep session errors in memory only",
						Value: cfg.InMemory,
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Translation to apply (edit, lock-denied, in-use)",
						Value: batch.KindEdit.String(),
					},
					&cli.Uint64Flag{
						Name:  "src",
						Usage: "First source session; message i is recorded on session src+i",
						Value: 1000,
					},
					&cli.Uint64Flag{
						Name:     "dst",
						Usage:    "Destination session receiving the protocol errors",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "sessions",
						Usage: "Live sessions as internal:public pairs (e.g. 42:7,43:8)",
						Value: cfg.SessionMap,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of translation workers (0 = one per CPU)",
						Value: cfg.PoolSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N messages",
						Value: cfg.ReportInterval,
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Panic on messages that break their class format",
						Value: cfg.Strict,
					},
					&cli.BoolFlag{
						Name:  "metrics",
						Usage: "Print translation counters to stderr when done",
					},
					formatFlag(),
				},
			},
			{
				Name:   "show",
				Usage:  "Show the protocol errors attached to a session",
				Action: showCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Uint64Flag{
						Name:     "session",
						Aliases:  []string{"s"},
						Usage:    "Session to show",
						Required: true,
					},
					formatFlag(),
				},
			},
			{
				Name:   "clear",
				Usage:  "Remove the protocol errors attached to a session",
				Action: clearCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.Uint64Flag{
						Name:     "session",
						Aliases:  []string{"s"},
						Usage:    "Session to clear",
						Required: true,
					},
				},
			},
		},
	}
}

func translateCommand(c *cli.Context) error {
	ctx := context.Background()

	kind, err := parseKind(c.String("kind"))
	if err != nil {
		return err
	}
	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	cfg := config.NewConfig(
		config.WithDBPath(c.String("db")),
		config.WithInMemory(c.Bool("in-memory")),
		config.WithLogLevel(c.String("log-level")),
		config.WithPoolSize(c.Int("pool-size")),
		config.WithReportInterval(c.Int("report-interval")),
		config.WithStrict(c.Bool("strict")),
		config.WithSessionMap(c.String("sessions")),
	)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	messages := c.Args().Slice()
	if len(messages) == 0 {
		if messages, err = readMessages(c.App.Reader); err != nil {
			return fmt.Errorf("failed to read messages: %w", err)
		}
	}
	if len(messages) == 0 {
		return fmt.Errorf("no validation messages given")
	}

	src, err := sessionFlag(c, "src")
	if err != nil {
		return err
	}
	dst, err := sessionFlag(c, "dst")
	if err != nil {
		return err
	}
	if err := checkSourceRange(src, dst, len(messages)); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	engine, err := ncerr.OpenConfig(cfg, ncerr.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	jobs := make([]batch.Job, len(messages))
	for i, message := range messages {
		record := core.ValidationErrorRecord{Message: message}
		jobs[i] = batch.Job{Kind: kind, Src: src + core.SessionID(i), Dst: dst, Records: []core.ValidationErrorRecord{record}}

		// Foreign messages are passed through from the session the validation engine reported them on
		if kind == batch.KindEdit {
			if err := engine.Translator().RecordValidationError(ctx, jobs[i].Src, record); err != nil {
				return fmt.Errorf("failed to record validation error: %w", err)
			}
		}
	}

	pipelineOpts := []batch.Option{
		batch.WithProgress(batch.NewProgressTracker(c.App.ErrWriter, len(jobs), cfg.ReportInterval)),
	}
	if cfg.PoolSize > 0 {
		pipelineOpts = append(pipelineOpts, batch.WithPoolSize(cfg.PoolSize))
	}
	pipeline, err := engine.NewPipeline(pipelineOpts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	runErr := pipeline.Run(ctx, jobs)
	if runErr != nil {
		slog.Error("some messages could not be translated", "err", runErr)
	}

	if c.Bool("metrics") {
		if err := writeMetrics(c.App.ErrWriter, registry); err != nil {
			return err
		}
	}

	errs, err := engine.Repository().GetErrors(ctx, dst)
	if err != nil {
		return fmt.Errorf("failed to read session errors: %w", err)
	}
	if err := writeErrors(c.App.Writer, format, errs); err != nil {
		return err
	}

	if runErr != nil {
		return fmt.Errorf("translation failed: %w", runErr)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	format := c.String("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	session, err := sessionFlag(c, "session")
	if err != nil {
		return err
	}

	engine, err := openStore(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	errs, err := engine.Repository().GetErrors(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to read session errors: %w", err)
	}
	return writeErrors(c.App.Writer, format, errs)
}

func clearCommand(c *cli.Context) error {
	ctx := context.Background()

	session, err := sessionFlag(c, "session")
	if err != nil {
		return err
	}

	engine, err := openStore(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	if err := engine.Repository().ClearErrors(ctx, session); err != nil {
		return fmt.Errorf("failed to clear session errors: %w", err)
	}
	slog.Info("cleared session errors", "session", session)
	return nil
}

// sessionFlag reads a session id flag, rejecting values outside 32 bits.
func sessionFlag(c *cli.Context, name string) (core.SessionID, error) {
	v := c.Uint64(name)
	if v > math.MaxUint32 {
		return 0, fmt.Errorf("invalid --%s %d: session ids are 32-bit", name, v)
	}
	return core.SessionID(v), nil
}

// checkSourceRange ensures the sessions src..src+count-1 that hold the raw
// messages fit in 32 bits and do not include dst.
func checkSourceRange(src, dst core.SessionID, count int) error {
	last := uint64(src) + uint64(count) - 1
	if last > math.MaxUint32 {
		return fmt.Errorf("source sessions %d..%d exceed 32-bit session ids", src, last)
	}
	if uint64(dst) >= uint64(src) && uint64(dst) <= last {
		return fmt.Errorf("destination session %d overlaps source sessions %d..%d", dst, src, last)
	}
	return nil
}

// openStore opens the on-disk store named by --db.
func openStore(c *cli.Context) (*ncerr.Engine, error) {
	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	engine, err := ncerr.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func parseKind(name string) (batch.Kind, error) {
	for _, kind := range []batch.Kind{batch.KindEdit, batch.KindLockDenied, batch.KindInUse} {
		if kind.String() == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("invalid kind %q: must be one of edit, lock-denied, in-use", name)
}

// readMessages returns the non-blank lines of r.
func readMessages(r io.Reader) ([]string, error) {
	var messages []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		messages = append(messages, line)
	}
	return messages, scanner.Err()
}

func setupLogger(c *cli.Context) error {
	level, err := config.ParseLogLevel(c.String("log-level"))
	if err != nil {
		return err
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
