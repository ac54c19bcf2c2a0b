package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/sidescroller/internal/config"
	"github.com/tomz197/sidescroller/internal/loop"
)

func main() {
	logger, closeLog, err := newLogger(config.GetEnv("SIDESCROLLER_LOG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	level, err := loadLevel(config.GetEnv("SIDESCROLLER_LEVEL", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load level: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	s, err := loop.NewSession(reader, os.Stdout, loop.Options{
		Level:  level,
		Seed:   config.GetEnvInt("SIDESCROLLER_SEED", 0),
		Bell:   config.GetEnv("SIDESCROLLER_SOUND", "bell") == "bell",
		Logger: logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
	if err := s.Run(context.Background()); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to the named file, or discards when path is empty. The
// game owns the terminal, so nothing is written to stderr.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "sidescroller",
	})
	if lvl, err := log.ParseLevel(config.GetEnv("SIDESCROLLER_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, func() { f.Close() }, nil
}

// loadLevel reads a level file, or returns nil for the embedded default.
func loadLevel(path string) (*config.Level, error) {
	if path == "" {
		return nil, nil
	}
	return config.LoadLevel(path)
}
