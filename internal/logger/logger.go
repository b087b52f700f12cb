// Package logger configures the process-wide logrus logger and hands out
// per-component entries.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"enquirycrm/internal/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	base   = logrus.New()
	baseMu sync.RWMutex
)

// Init applies cfg to the shared logger. When cfg.File is set, output goes to
// both stdout and a size-rotated file.
func Init(cfg config.LogConfig) error {
	l := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05.000",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05.000",
		})
	}

	writers := []io.Writer{os.Stdout}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		})
	}
	l.SetOutput(io.MultiWriter(writers...))

	baseMu.Lock()
	base = l
	baseMu.Unlock()

	l.WithFields(logrus.Fields{
		"level":  level.String(),
		"format": cfg.Format,
		"file":   cfg.File,
	}).Info("Logger initialized")
	return nil
}

// Get returns the shared logger.
func Get() *logrus.Logger {
	baseMu.RLock()
	defer baseMu.RUnlock()
	return base
}

// For returns an entry tagged with a component name, e.g. For("ENQUIRY").
func For(component string) *logrus.Entry {
	return Get().WithField("component", component)
}

// SetOutput redirects the shared logger, mostly for tests.
func SetOutput(w io.Writer) {
	Get().SetOutput(w)
}
