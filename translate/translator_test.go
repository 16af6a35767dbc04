package translate_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"testing"

	"github.com/poiesic/ncerr/core"
	"github.com/poiesic/ncerr/translate"
	"github.com/poiesic/ncerr/translate/mock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	srcSession core.SessionID = 100
	dstSession core.SessionID = 200
)

func setupTranslator(t *testing.T, opts ...translate.Option) (*translate.Translator, *mock.MockResolver, *mock.MockSink, *prometheus.Registry) {
	t.Helper()
	resolver := mock.NewMockResolver(map[core.SessionID]uint32{42: 7})
	sink := mock.NewMockSink()
	reg := prometheus.NewRegistry()

	opts = append([]translate.Option{
		translate.WithLogger(slog.New(slog.DiscardHandler)),
		translate.WithRegisterer(reg),
	}, opts...)

	tr, err := translate.NewTranslator(resolver, sink, opts...)
	require.NoError(t, err)
	return tr, resolver, sink, reg
}

// counterValue returns the value of the counter name with label set to value.
func counterValue(t *testing.T, reg *prometheus.Registry, name, label, value string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == value {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func records(messages ...string) []core.ValidationErrorRecord {
	out := make([]core.ValidationErrorRecord, len(messages))
	for i, message := range messages {
		out[i] = core.ValidationErrorRecord{Message: message}
	}
	return out
}

func TestNewTranslator_Validation(t *testing.T) {
	_, err := translate.NewTranslator(nil, mock.NewMockSink())
	assert.ErrorIs(t, err, translate.ErrResolverRequired)

	_, err = translate.NewTranslator(mock.NewMockResolver(nil), nil)
	assert.ErrorIs(t, err, translate.ErrSinkRequired)

	failing := func(*translate.Translator) error { return assert.AnError }
	_, err = translate.NewTranslator(mock.NewMockResolver(nil), mock.NewMockSink(), failing)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestNewTranslator_SharedRegisterer(t *testing.T) {
	reg := prometheus.NewRegistry()
	for range 2 {
		_, err := translate.NewTranslator(mock.NewMockResolver(nil), mock.NewMockSink(), translate.WithRegisterer(reg))
		require.NoError(t, err)
	}
}

func TestTranslator_Edit(t *testing.T) {
	tr, _, sink, reg := setupTranslator(t)
	ctx := context.Background()

	err := tr.Edit(ctx, srcSession, dstSession, records(`Unique data leaf(s) "x" not satisfied. data location /a/b/c..`))
	require.NoError(t, err)

	attached := sink.Attached()
	require.Len(t, attached, 1)
	assert.Equal(t, dstSession, attached[0].Dst)
	assert.Equal(t, core.TagOperationFailed, attached[0].Error.Tag)
	assert.Equal(t, core.AppTagDataNotUnique, attached[0].Error.AppTag)
	assert.Equal(t, []core.ErrorInfo{{Name: core.InfoNonUnique, Value: "/a/b/c"}}, attached[0].Error.Info)
	assert.Empty(t, sink.Copies())

	assert.Equal(t, 1.0, counterValue(t, reg, "ncerr_translations_total", "class", "data-not-unique"))
}

func TestTranslator_Edit_OnlyFirstRecord(t *testing.T) {
	tr, _, sink, _ := setupTranslator(t)

	err := tr.Edit(context.Background(), srcSession, dstSession, records(
		`Too many "a" instances. data location /a..`,
		`Too few "b" instances. data location /b..`,
	))
	require.NoError(t, err)

	attached := sink.Attached()
	require.Len(t, attached, 1)
	assert.Equal(t, core.AppTagTooManyElements, attached[0].Error.AppTag)
}

func TestTranslator_Edit_Foreign(t *testing.T) {
	tr, _, sink, reg := setupTranslator(t)

	err := tr.Edit(context.Background(), srcSession, dstSession, records(`Value "300" is out of range.`))
	require.NoError(t, err)

	assert.Empty(t, sink.Attached())
	assert.Equal(t, []mock.Copy{{Src: srcSession, Dst: dstSession}}, sink.Copies())
	assert.Equal(t, 1.0, counterValue(t, reg, "ncerr_translations_total", "class", "foreign"))
}

func TestTranslator_Edit_NoRecords(t *testing.T) {
	tr, _, sink, reg := setupTranslator(t)

	err := tr.Edit(context.Background(), srcSession, dstSession, nil)
	assert.ErrorIs(t, err, core.ErrNoValidationError)
	assert.Empty(t, sink.Attached())
	assert.Empty(t, sink.Copies())
	assert.Equal(t, 1.0, counterValue(t, reg, "ncerr_contract_violations_total", "class", "none"))
}

func TestTranslator_Edit_ContractViolation(t *testing.T) {
	tr, _, sink, reg := setupTranslator(t)

	err := tr.Edit(context.Background(), srcSession, dstSession, records(`Too many "server" instances.`))

	var cerr *translate.ContractError
	require.True(t, errors.As(err, &cerr))
	assert.ErrorIs(t, err, core.ErrContractViolation)
	assert.Empty(t, sink.Attached())
	assert.Empty(t, sink.Copies())
	assert.Equal(t, 1.0, counterValue(t, reg, "ncerr_contract_violations_total", "class", "too-many-elements"))
}

func TestTranslator_Edit_ContractViolationLogsFingerprint(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	tr, _, _, _ := setupTranslator(t, translate.WithLogger(logger))

	message := `Mandatory choice "c" data do not exist. data location choice..`
	err := tr.Edit(context.Background(), srcSession, dstSession, records(message))
	require.Error(t, err)

	var entry map[string]any
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&entry))
	assert.Equal(t, "mandatory-choice", entry["class"])
	assert.Equal(t, "parent node", entry["field"])
	assert.Equal(t, json.Number(strconv.FormatUint(uint64(core.IDFromContent(message)), 10)), entry["fingerprint"])
}

func TestTranslator_Edit_StrictContracts(t *testing.T) {
	tr, _, sink, _ := setupTranslator(t, translate.WithStrictContracts())

	assert.Panics(t, func() {
		_ = tr.Edit(context.Background(), srcSession, dstSession, records(`Too many "server" instances.`))
	})
	assert.Empty(t, sink.Attached())

	// Well-formed messages are unaffected
	require.NoError(t, tr.Edit(context.Background(), srcSession, dstSession, records(`Too many "server" instances. data location /s..`)))
	assert.Len(t, sink.Attached(), 1)
}

func TestTranslator_Edit_SinkFailures(t *testing.T) {
	tr, _, sink, _ := setupTranslator(t)
	ctx := context.Background()

	sink.AttachErrorFunc = func(context.Context, core.SessionID, *core.ProtocolError) error { return assert.AnError }
	err := tr.Edit(ctx, srcSession, dstSession, records(`Too many "a" instances. data location /a..`))
	assert.ErrorIs(t, err, assert.AnError)

	sink.CopyErrorsFunc = func(context.Context, core.SessionID, core.SessionID) error { return assert.AnError }
	err = tr.Edit(ctx, srcSession, dstSession, records("unrelated"))
	assert.ErrorIs(t, err, assert.AnError)
}

func TestTranslator_Edit_Idempotent(t *testing.T) {
	tr, _, sink, _ := setupTranslator(t)
	ctx := context.Background()
	input := records(`Invalid leafref value "foo" - no existing target instance "bar". data location /x/y..`)

	require.NoError(t, tr.Edit(ctx, srcSession, dstSession, input))
	require.NoError(t, tr.Edit(ctx, srcSession, dstSession, input))

	attached := sink.Attached()
	require.Len(t, attached, 2)
	assert.Equal(t, attached[0].Error, attached[1].Error)
	assert.Equal(t, `Required leafref target with value "foo" missing.`, attached[0].Error.Message)
}

func TestTranslator_LockConflicts(t *testing.T) {
	tests := []struct {
		name    string
		call    func(*translate.Translator, context.Context, core.SessionID, core.ValidationErrorRecord) error
		tag     string
		message string
	}{
		{"lock-denied", (*translate.Translator).LockDenied, core.TagLockDenied, core.MessageLockDenied},
		{"in-use", (*translate.Translator).InUse, core.TagInUse, core.MessageInUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Run("resolved holder", func(t *testing.T) {
				tr, resolver, sink, _ := setupTranslator(t)
				record := core.ValidationErrorRecord{Message: `Module "ietf-interfaces" is DS-locked by session 42.`}

				require.NoError(t, tt.call(tr, context.Background(), dstSession, record))

				attached := sink.Attached()
				require.Len(t, attached, 1)
				assert.Equal(t, &core.ProtocolError{
					Type:    core.ErrorTypeProtocol,
					Tag:     tt.tag,
					Message: tt.message,
					Info:    []core.ErrorInfo{{Name: core.InfoSessionID, Value: "7"}},
				}, attached[0].Error)
				assert.Equal(t, 1, resolver.CallCount())
			})

			t.Run("unresolved holder", func(t *testing.T) {
				tr, _, sink, _ := setupTranslator(t)
				record := core.ValidationErrorRecord{Message: `Module "ietf-interfaces" is DS-locked by session 9.`}

				require.NoError(t, tt.call(tr, context.Background(), dstSession, record))

				attached := sink.Attached()
				require.Len(t, attached, 1)
				value, ok := attached[0].Error.InfoValue(core.InfoSessionID)
				require.True(t, ok)
				assert.Equal(t, "0", value)
			})

			t.Run("no holder marker", func(t *testing.T) {
				tr, resolver, sink, reg := setupTranslator(t)
				record := core.ValidationErrorRecord{Message: `Module "ietf-interfaces" is locked.`}

				require.NoError(t, tt.call(tr, context.Background(), dstSession, record))

				assert.Empty(t, sink.Attached())
				assert.Empty(t, sink.Copies())
				assert.Zero(t, resolver.CallCount())
				assert.Equal(t, 1.0, counterValue(t, reg, "ncerr_lock_noops_total", "tag", tt.tag))
			})
		})
	}
}

func TestTranslator_FixedMessages(t *testing.T) {
	tests := []struct {
		name string
		call func(*translate.Translator) error
		want *core.ProtocolError
	}{
		{
			name: "same datastore",
			call: func(tr *translate.Translator) error {
				return tr.SameDatastore(context.Background(), dstSession, "Source and target datastores are the same.")
			},
			want: &core.ProtocolError{
				Type:    core.ErrorTypeApplication,
				Tag:     core.TagInvalidValue,
				Message: "Source and target datastores are the same.",
			},
		},
		{
			name: "missing element",
			call: func(tr *translate.Translator) error {
				return tr.MissingElement(context.Background(), dstSession, "target")
			},
			want: &core.ProtocolError{
				Type:    core.ErrorTypeProtocol,
				Tag:     core.TagMissingElement,
				Message: "An expected element is missing.",
				Info:    []core.ErrorInfo{{Name: core.InfoBadElement, Value: "target"}},
			},
		},
		{
			name: "bad element",
			call: func(tr *translate.Translator) error {
				return tr.BadElement(context.Background(), dstSession, "filter", "Unsupported filter type.")
			},
			want: &core.ProtocolError{
				Type:    core.ErrorTypeProtocol,
				Tag:     core.TagBadElement,
				Message: "Unsupported filter type.",
				Info:    []core.ErrorInfo{{Name: core.InfoBadElement, Value: "filter"}},
			},
		},
		{
			name: "invalid value with element",
			call: func(tr *translate.Translator) error {
				return tr.InvalidValue(context.Background(), dstSession, "Invalid stop time.", "stop-time")
			},
			want: &core.ProtocolError{
				Type:    core.ErrorTypeApplication,
				Tag:     core.TagInvalidValue,
				Message: "Invalid stop time.",
				Info:    []core.ErrorInfo{{Name: core.InfoBadElement, Value: "stop-time"}},
			},
		},
		{
			name: "invalid value without element",
			call: func(tr *translate.Translator) error {
				return tr.InvalidValue(context.Background(), dstSession, "Invalid stop time.", "")
			},
			want: &core.ProtocolError{
				Type:    core.ErrorTypeApplication,
				Tag:     core.TagInvalidValue,
				Message: "Invalid stop time.",
			},
		},
		{
			name: "no such subscription",
			call: func(tr *translate.Translator) error {
				return tr.NoSuchSubscription(context.Background(), dstSession, "Subscription with ID 5 not found.")
			},
			want: &core.ProtocolError{
				Type:    core.ErrorTypeApplication,
				Tag:     core.TagInvalidValue,
				AppTag:  "ietf-subscribed-notifications:no-such-subscription",
				Message: "Subscription with ID 5 not found.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, _, sink, _ := setupTranslator(t)
			require.NoError(t, tt.call(tr))

			attached := sink.Attached()
			require.Len(t, attached, 1)
			assert.Equal(t, dstSession, attached[0].Dst)
			assert.Equal(t, tt.want, attached[0].Error)
		})
	}
}

func TestTranslator_RecordValidationError(t *testing.T) {
	tr, _, sink, _ := setupTranslator(t)

	require.NoError(t, tr.RecordValidationError(context.Background(), srcSession, core.ValidationErrorRecord{Message: "Value out of range."}))

	attached := sink.Attached()
	require.Len(t, attached, 1)
	assert.Equal(t, srcSession, attached[0].Dst)
	assert.Equal(t, &core.ProtocolError{
		Type:    core.ErrorTypeApplication,
		Tag:     core.TagOperationFailed,
		Message: "Value out of range.",
	}, attached[0].Error)
}
