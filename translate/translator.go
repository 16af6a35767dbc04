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


package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/ncerr/core"
	"github.com/prometheus/client_golang/prometheus"
)

// Translator attaches translated protocol errors to outgoing sessions.
// It holds no per-call state and is safe for concurrent use.
type Translator struct {
	resolver SessionResolver
	sink     ErrorSink
	logger   *slog.Logger
	reg      prometheus.Registerer
	metrics  *metrics
	strict   bool
}

// Option configures a Translator.
type Option func(*Translator) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// WithRegisterer registers the translator's metrics with reg.
// By default metrics are collected but not registered.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(t *Translator) error {
		t.reg = reg
		return nil
	}
}

// WithStrictContracts makes contract violations panic instead of returning a *ContractError.
func WithStrictContracts() Option {
	return func(t *Translator) error {
		t.strict = true
		return nil
	}
}

// NewTranslator creates a translator resolving lock holders with resolver and
// delivering errors to sink.
func NewTranslator(resolver SessionResolver, sink ErrorSink, opts ...Option) (*Translator, error) {
	if resolver == nil {
		return nil, ErrResolverRequired
	}
	if sink == nil {
		return nil, ErrSinkRequired
	}

	t := &Translator{
		resolver: resolver,
		sink:     sink,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	m, err := newMetrics(t.reg)
	if err != nil {
		return nil, err
	}
	t.metrics = m

	return t, nil
}

// Edit translates the first validation record of a failed edit and attaches
// the result to dst. Records no rule recognizes are not reshaped: every error
// of src is copied to dst instead.
func (t *Translator) Edit(ctx context.Context, src, dst core.SessionID, records []core.ValidationErrorRecord) error {
	if len(records) == 0 {
		return t.violation(fmt.Errorf("%w: session %d", core.ErrNoValidationError, src))
	}
	record := records[0]

	outcome, err := Translate(record)
	if err != nil {
		return t.violation(err)
	}
	t.metrics.translations.WithLabelValues(outcome.Class.String()).Inc()

	if outcome.Foreign() {
		t.logger.Debug("passing through foreign validation error",
			"src", src, "dst", dst, "fingerprint", core.IDFromContent(record.Message))
		if err := t.sink.CopyErrors(ctx, src, dst); err != nil {
			return fmt.Errorf("copying errors of session %d: %w", src, err)
		}
		return nil
	}

	return t.attach(ctx, dst, outcome.Error)
}

// LockDenied attaches a lock-denied error naming the session holding the lock.
// A record that names no holder produces nothing.
func (t *Translator) LockDenied(ctx context.Context, dst core.SessionID, record core.ValidationErrorRecord) error {
	return t.lockConflict(ctx, ConflictLockDenied, dst, record)
}

// InUse attaches an in-use error naming the session holding the lock.
// A record that names no holder produces nothing.
func (t *Translator) InUse(ctx context.Context, dst core.SessionID, record core.ValidationErrorRecord) error {
	return t.lockConflict(ctx, ConflictInUse, dst, record)
}

func (t *Translator) lockConflict(ctx context.Context, conflict Conflict, dst core.SessionID, record core.ValidationErrorRecord) error {
	perr, ok := LockConflict(conflict, record.Message, t.resolver)
	if !ok {
		t.metrics.lockNoops.WithLabelValues(conflict.String()).Inc()
		t.logger.Debug("lock conflict without holder session", "tag", conflict.String(), "dst", dst)
		return nil
	}
	return t.attach(ctx, dst, perr)
}

// SameDatastore attaches an invalid-value error for an operation whose source
// and target datastores are the same.
func (t *Translator) SameDatastore(ctx context.Context, dst core.SessionID, message string) error {
	return t.attach(ctx, dst, &core.ProtocolError{
		Type:    core.ErrorTypeApplication,
		Tag:     core.TagInvalidValue,
		Message: message,
	})
}

// MissingElement attaches a missing-element error for element.
func (t *Translator) MissingElement(ctx context.Context, dst core.SessionID, element string) error {
	return t.attach(ctx, dst, &core.ProtocolError{
		Type:    core.ErrorTypeProtocol,
		Tag:     core.TagMissingElement,
		Message: core.MessageMissingElement,
		Info:    []core.ErrorInfo{{Name: core.InfoBadElement, Value: element}},
	})
}

// BadElement attaches a bad-element error for element.
func (t *Translator) BadElement(ctx context.Context, dst core.SessionID, element, description string) error {
	return t.attach(ctx, dst, &core.ProtocolError{
		Type:    core.ErrorTypeProtocol,
		Tag:     core.TagBadElement,
		Message: description,
		Info:    []core.ErrorInfo{{Name: core.InfoBadElement, Value: element}},
	})
}

// InvalidValue attaches an invalid-value error. badElement is reported only when not empty.
func (t *Translator) InvalidValue(ctx context.Context, dst core.SessionID, description, badElement string) error {
	perr := &core.ProtocolError{
		Type:    core.ErrorTypeApplication,
		Tag:     core.TagInvalidValue,
		Message: description,
	}
	if badElement != "" {
		perr.Info = []core.ErrorInfo{{Name: core.InfoBadElement, Value: badElement}}
	}
	return t.attach(ctx, dst, perr)
}

// NoSuchSubscription attaches the error for an unknown notification subscription.
func (t *Translator) NoSuchSubscription(ctx context.Context, dst core.SessionID, message string) error {
	return t.attach(ctx, dst, &core.ProtocolError{
		Type:    core.ErrorTypeApplication,
		Tag:     core.TagInvalidValue,
		AppTag:  core.AppTagNoSuchSubscription,
		Message: message,
	})
}

// RecordValidationError stores a raw validation record on session src the way
// the validation engine reports it, as an application operation-failed error.
func (t *Translator) RecordValidationError(ctx context.Context, src core.SessionID, record core.ValidationErrorRecord) error {
	return t.attach(ctx, src, &core.ProtocolError{
		Type:    core.ErrorTypeApplication,
		Tag:     core.TagOperationFailed,
		Message: record.Message,
	})
}

func (t *Translator) attach(ctx context.Context, dst core.SessionID, perr *core.ProtocolError) error {
	if err := t.sink.AttachError(ctx, dst, perr); err != nil {
		return fmt.Errorf("attaching %s error to session %d: %w", perr.Tag, dst, err)
	}
	return nil
}

// violation logs and counts a contract violation. In strict mode it panics.
func (t *Translator) violation(err error) error {
	class := "none"
	attrs := []any{"err", err}
	var cerr *ContractError
	if errors.As(err, &cerr) {
		class = cerr.Class.String()
		attrs = append(attrs, "field", cerr.Field, "fingerprint", cerr.Fingerprint)
	}
	t.metrics.contractViolations.WithLabelValues(class).Inc()
	t.logger.Error("validation message contract violation", append([]any{"class", class}, attrs...)...)
	if t.strict {
		panic(err)
	}
	return err
}
