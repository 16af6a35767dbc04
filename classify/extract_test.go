package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPath(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantOK  bool
	}{
		{"data location", "Unique data leaf(s) \"x\" not satisfied. data location /a/b/c..", "/a/b/c", true},
		{"schema location", msgTooFew, "/a:servers/server", true},
		{"data location preferred", "Too many \"x\". Schema location /s/x, data location /d/x..", "/d/x", true},
		{"predicates kept", msgNotUnique, "/a:list[k='2']", true},
		{"no marker", "Too many \"x\" instances.", "", false},
		{"marker is case-sensitive", "Too many. Data location /a/b..", "", false},
		{"trailer missing", "Too many. data location ", "", false},
		{"empty path", "Too many. data location ..", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPath(tt.message)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMustMessage(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
		wantOK  bool
	}{
		{"strips path annotation", "Must condition 'x > 0' not satisfied. (path: /a/b)", "Must condition 'x > 0' not satisfied.", true},
		{"uses last parenthesis", msgMust, `Must condition "count(server) > 0" not satisfied.`, true},
		{"custom error message", "Must condition \"../enabled = 'true'\" not satisfied: interface must be enabled (path: /if:x)", "Must condition \"../enabled = 'true'\" not satisfied: interface must be enabled", true},
		{"no parenthesis", "Must condition not satisfied.", "", false},
		{"parenthesis first", "(path: /a)", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MustMessage(tt.message)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeafrefValue(t *testing.T) {
	value, ok := LeafrefValue(msgLeafref)
	require.True(t, ok)
	assert.Equal(t, "eth9", value)

	value, ok = LeafrefValue(`Invalid leafref value "foo" - no existing target instance "bar". data location /x/y..`)
	require.True(t, ok)
	assert.Equal(t, "foo", value)

	value, ok = LeafrefValue(`Invalid leafref value "" - no existing target instance "bar".`)
	require.True(t, ok)
	assert.Empty(t, value)

	_, ok = LeafrefValue(`Invalid leafref value  "foo" - no existing target instance`)
	assert.False(t, ok, "quote must sit at the fixed offset")

	_, ok = LeafrefValue(`Invalid leafref value "foo - no existing target instance`)
	assert.False(t, ok, "unterminated value")

	_, ok = LeafrefValue("Invalid leafref value")
	assert.False(t, ok, "message shorter than offset")
}

func TestInstanceIdentifierValue(t *testing.T) {
	value, ok := InstanceIdentifierValue(msgInstanceIdentifier)
	require.True(t, ok)
	assert.Equal(t, "/a:servers/a:server[a:name='x']", value)

	_, ok = InstanceIdentifierValue(`Invalid instance-identifier /a:b value - required instance not found.`)
	assert.False(t, ok)
}

func TestQuotedValue(t *testing.T) {
	value, ok := QuotedValue(`x"abc"def"`, 1)
	require.True(t, ok)
	assert.Equal(t, "abc", value)

	_, ok = QuotedValue(`"abc"`, -1)
	assert.False(t, ok)

	_, ok = QuotedValue(`"abc"`, 5)
	assert.False(t, ok)
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		path   string
		want   string
		wantOK bool
	}{
		{"/a/b/choice", "/a/b", true},
		{"/a:servers/server[name='s1']/transport", "/a:servers/server[name='s1']", true},
		{"/choice", "/", true},
		{"/", "/", true},
		{"choice", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := ParentPath(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLockSessionID(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    uint32
		wantOK  bool
	}{
		{"marker with id", "Module \"ietf-interfaces\" is DS-locked by session 42.", 42, true},
		{"id at end of message", "DS-locked by session 42", 42, true},
		{"max uint32", "DS-locked by session 4294967295", 4294967295, true},
		{"overflow", "DS-locked by session 4294967296", 0, true},
		{"no digits", "DS-locked by session abc", 0, true},
		{"leading spaces", "DS-locked by session  42.", 42, true},
		{"leading tab and newline", "DS-locked by session \t\n42", 42, true},
		{"plus sign", "DS-locked by session +42", 42, true},
		{"spaces then plus sign", "DS-locked by session  +7 ", 7, true},
		{"minus sign", "DS-locked by session -42", 0, true},
		{"space after sign", "DS-locked by session + 42", 0, true},
		{"no marker", "Module \"ietf-interfaces\" is locked.", 0, false},
		{"empty message", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LockSessionID(tt.message)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
