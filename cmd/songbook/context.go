package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"songbook/internal/catalog"
	"songbook/internal/config"
	"songbook/internal/history"
	"songbook/internal/logging"
	"songbook/internal/stems"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) flagPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.flagPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) withCatalog(fn func(cfg *config.Config, cat *catalog.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	return fn(cfg, cat)
}

func (c *commandContext) withHistory(fn func(cfg *config.Config, hist *history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	hist, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer hist.Close()
	return fn(cfg, hist)
}

// withStems wires the full processing stack: catalog, history, logger, and
// the stems service on top of them.
func (c *commandContext) withStems(fn func(cfg *config.Config, cat *catalog.Store, svc *stems.Service, logger *slog.Logger) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	cat, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	hist, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer hist.Close()

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	svc := stems.NewService(cfg, cat, hist, logger)
	return fn(cfg, cat, svc, logger)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
