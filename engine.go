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


// Package ncerr translates datastore validation failures into NETCONF
// protocol errors and keeps them per outgoing session.
package ncerr

import (
	"errors"
	"log/slog"

	"github.com/poiesic/ncerr/batch"
	"github.com/poiesic/ncerr/config"
	"github.com/poiesic/ncerr/session"
	"github.com/poiesic/ncerr/storage"
	"github.com/poiesic/ncerr/storage/badger"
	"github.com/poiesic/ncerr/translate"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine wires session error storage, the session registry and a translator.
type Engine struct {
	backend    *badger.Backend
	repo       storage.ErrorRepository
	registry   *session.Registry
	translator *translate.Translator
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	inMemory       bool
	logger         *slog.Logger
	registerer     prometheus.Registerer
	strict         bool
	translatorOpts []translate.Option
}

// WithInMemory keeps session errors in memory; the file path is ignored.
func WithInMemory() EngineOption {
	return func(o *engineOptions) {
		o.inMemory = true
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithRegisterer registers translation metrics with reg.
func WithRegisterer(reg prometheus.Registerer) EngineOption {
	return func(o *engineOptions) {
		o.registerer = reg
	}
}

// WithStrictContracts makes contract violations panic.
func WithStrictContracts() EngineOption {
	return func(o *engineOptions) {
		o.strict = true
	}
}

// WithTranslatorOptions passes extra options to the translator.
func WithTranslatorOptions(opts ...translate.Option) EngineOption {
	return func(o *engineOptions) {
		o.translatorOpts = append(o.translatorOpts, opts...)
	}
}

// Open opens the session error store at filePath and builds the engine.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	// Apply options
	options := &engineOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	// Open backend
	backend, err := badger.OpenBackendWithLogger(filePath, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}

	// Create error repository
	repo, err := badger.NewErrorRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	registry := session.NewRegistry()

	// Create translator with configured settings
	translatorOpts := []translate.Option{
		translate.WithLogger(options.logger),
		translate.WithRegisterer(options.registerer),
	}
	if options.strict {
		translatorOpts = append(translatorOpts, translate.WithStrictContracts())
	}
	translatorOpts = append(translatorOpts, options.translatorOpts...)

	translator, err := translate.NewTranslator(registry, repo, translatorOpts...)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, err
	}

	return &Engine{
		backend:    backend,
		repo:       repo,
		registry:   registry,
		translator: translator,
		logger:     options.logger,
	}, nil
}

// OpenConfig opens an engine described by cfg and registers its session map.
func OpenConfig(cfg *config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sessions, err := cfg.Sessions()
	if err != nil {
		return nil, err
	}

	if cfg.InMemory {
		opts = append(opts, WithInMemory())
	}
	if cfg.Strict {
		opts = append(opts, WithStrictContracts())
	}

	e, err := Open(cfg.DBPath, opts...)
	if err != nil {
		return nil, err
	}
	for id, public := range sessions {
		if _, err := e.registry.Register(id, public); err != nil {
			e.Close()
			return nil, err
		}
	}
	return e, nil
}

// Close releases the repository and the backend. The backend is closed even
// when releasing the repository fails.
func (e *Engine) Close() error {
	var errs []error
	if err := e.repo.Close(); err != nil {
		e.logger.Error("error closing error repository", "err", err)
		errs = append(errs, err)
	}

	// Close backend
	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Repository returns the session error store.
func (e *Engine) Repository() storage.ErrorRepository {
	return e.repo
}

// Sessions returns the registry used to resolve lock holders.
func (e *Engine) Sessions() *session.Registry {
	return e.registry
}

// Translator returns the engine's translator.
func (e *Engine) Translator() *translate.Translator {
	return e.translator
}

// NewPipeline creates a batch pipeline driving the engine's translator.
func (e *Engine) NewPipeline(opts ...batch.Option) (*batch.Pipeline, error) {
	opts = append([]batch.Option{batch.WithLogger(e.logger)}, opts...)
	return batch.NewPipeline(e.translator, opts...)
}
