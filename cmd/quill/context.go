package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"quill/internal/api"
	"quill/internal/config"
	"quill/internal/session"

	"github.com/joho/godotenv"
)

// commandContext lazily builds the shared config, logger, API client and
// session used by every subcommand.
type commandContext struct {
	cfg     *config.Config
	logger  *slog.Logger
	logFile *os.File
	client  *api.Client
	session *session.Session
}

func newCommandContext() *commandContext {
	return &commandContext{}
}

func (c *commandContext) ensure() error {
	if c.client != nil {
		return nil
	}

	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	logLevel := slog.LevelInfo
	var out io.Writer = os.Stderr
	if cfg.Debug {
		logLevel = slog.LevelDebug
		// Debug runs also keep a log file around for later inspection.
		if dir, err := os.UserCacheDir(); err == nil {
			if f, err := config.SetupLogFile(filepath.Join(dir, "quill", "logs"), 5); err == nil {
				c.logFile = f
				out = io.MultiWriter(os.Stderr, f)
			}
		}
	}
	opts := &slog.HandlerOptions{Level: logLevel}
	if cfg.Environment == "prod" {
		c.logger = slog.New(slog.NewJSONHandler(out, opts))
	} else {
		c.logger = slog.New(slog.NewTextHandler(out, opts))
	}

	c.client = api.NewClient(cfg.BaseURL, cfg.Token, cfg.HTTPTimeout, c.logger)
	c.session = session.New(c.client, c.logger, session.Options{
		AutoSaveDelay: cfg.AutoSaveDelay,
		PollInterval:  cfg.PollInterval,
	})
	return nil
}

func (c *commandContext) close() {
	if c.session != nil {
		c.session.Close()
	}
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}
