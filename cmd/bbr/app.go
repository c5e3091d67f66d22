package main

import (
	"context"
	"fmt"

	"github.com/yourusername/bbrepo/internal/adapter/bitbucket"
	"github.com/yourusername/bbrepo/internal/adapter/config"
	"github.com/yourusername/bbrepo/internal/adapter/tokenstore"
	"github.com/yourusername/bbrepo/internal/domain"
	"github.com/yourusername/bbrepo/internal/query"
	"github.com/yourusername/bbrepo/internal/ui"
	"pkt.systems/pslog"
)

// app holds the dependencies shared by commands.
type app struct {
	manager *config.Manager
	cfg     *config.Config
	store   *tokenstore.Store
	tokens  domain.TokenProvider
	hooks   *query.Hooks
}

func (o *rootOptions) manager() (*config.Manager, error) {
	if o.configPath != "" {
		return config.NewManagerAt(o.configPath), nil
	}
	return config.NewManager()
}

// loadConfig reads and validates the configuration.
func (o *rootOptions) loadConfig() (*config.Manager, *config.Config, error) {
	mgr, err := o.manager()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	cfg, err := mgr.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	ui.SetGlobalTheme(cfg.Theme)
	return mgr, cfg, nil
}

// openStore loads the config and the token store without building a client.
func (o *rootOptions) openStore() (*app, error) {
	mgr, cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	store, err := tokenstore.Open(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}
	return &app{
		manager: mgr,
		cfg:     cfg,
		store:   store,
		tokens:  tokenProvider(cfg, store),
	}, nil
}

// load builds the full dependency graph down to the query hooks.
func (o *rootOptions) load(ctx context.Context) (*app, error) {
	a, err := o.openStore()
	if err != nil {
		return nil, err
	}

	logger := pslog.Ctx(ctx)
	client, err := bitbucket.NewClient(a.cfg.BaseURL, a.tokens, bitbucket.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	a.hooks = query.NewHooks(bitbucket.NewAPI(client), a.tokens, nil)

	logger.Debug("configuration loaded",
		"base_url", a.cfg.BaseURL,
		"app_mode", a.cfg.AppMode,
		"storage", a.store.Path(),
		"token", domain.HasToken(a.tokens),
	)
	return a, nil
}

// tokenProvider prefers BITBUCKET_TOKEN over the stored token.
func tokenProvider(cfg *config.Config, store *tokenstore.Store) domain.TokenProvider {
	if cfg.Token != "" {
		return domain.StaticToken(cfg.Token)
	}
	return store.TokenProvider()
}
