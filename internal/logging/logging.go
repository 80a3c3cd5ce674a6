// Package logging builds the structured logger shared by the simulation.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"kinetic3d/internal/config"

	"github.com/charmbracelet/log"
)

const timeFormat = "2006-01-02 15:04:05"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to stderr and, if cfg.LogFile is set, appending
// to that file as well. The returned closer releases the file.
func New(cfg config.Config) (*log.Logger, io.Closer, error) {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter is New with a custom console writer.
func NewWithWriter(w io.Writer, cfg config.Config) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var closer io.Closer = nopCloser{}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return nil, nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = io.MultiWriter(w, f)
		closer = f
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "kinetic3d",
		ReportTimestamp: true,
		TimeFormat:      timeFormat,
	})
	return logger, closer, nil
}
