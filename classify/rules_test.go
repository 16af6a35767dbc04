package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample messages in the validation engine's phrasing, one per rule.
const (
	msgNotUnique          = `Unique data leaf(s) "name" not satisfied in "/a:list[k='1']" and "/a:list[k='2']". data location /a:list[k='2']..`
	msgTooMany            = `Too many "server" instances. data location /a:servers/server..`
	msgTooFew             = `Too few "server" instances. Schema location /a:servers/server..`
	msgMust               = `Must condition "count(server) > 0" not satisfied. (path: /a:servers)`
	msgLeafref            = `Invalid leafref value "eth9" - no existing target instance "/if:interfaces/if:interface/if:name". data location /a:bind/iface..`
	msgInstanceIdentifier = `Invalid instance-identifier "/a:servers/a:server[a:name='x']" value - required instance not found. data location /a:ref..`
	msgMandatoryChoice    = `Mandatory choice "transport" data do not exist. data location /a:servers/server[name='s1']/transport..`
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Class
	}{
		{"data-not-unique", msgNotUnique, ClassDataNotUnique},
		{"too-many-elements", msgTooMany, ClassTooManyElements},
		{"too-few-elements", msgTooFew, ClassTooFewElements},
		{"must-violation", msgMust, ClassMustViolation},
		{"leafref instance-required", msgLeafref, ClassLeafrefRequired},
		{"instance-identifier instance-required", msgInstanceIdentifier, ClassInstanceIdentifierRequired},
		{"mandatory-choice", msgMandatoryChoice, ClassMandatoryChoice},
		{"unrelated message", "Unsatisfied range - value \"300\" is out of type uint8 min/max bounds.", ClassForeign},
		{"empty message", "", ClassForeign},
		{"leafref without missing target", `Invalid leafref value "eth9" - wrong type. data location /a:bind..`, ClassForeign},
		{"instance-identifier without missing instance", `Invalid instance-identifier "/a:b" value - syntax error.`, ClassForeign},
		{"prefix is case-sensitive", "too many \"server\" instances.", ClassForeign},
		{"prefix must start the message", "Error: Too many \"server\" instances.", ClassForeign},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message))
		})
	}
}

func TestClassify_RuleOrdering(t *testing.T) {
	samples := map[Class]string{
		ClassDataNotUnique:              msgNotUnique,
		ClassTooManyElements:            msgTooMany,
		ClassTooFewElements:             msgTooFew,
		ClassMustViolation:              msgMust,
		ClassLeafrefRequired:            msgLeafref,
		ClassInstanceIdentifierRequired: msgInstanceIdentifier,
		ClassMandatoryChoice:            msgMandatoryChoice,
	}

	// A message satisfying rule k and none of the rules before it classifies as rule k.
	table := Rules()
	for k, rule := range table {
		message, ok := samples[rule.Class]
		if !assert.True(t, ok, "missing sample for %s", rule.Class) {
			continue
		}
		assert.True(t, rule.Matches(message), "rule %d should match its sample", k)
		for _, earlier := range table[:k] {
			assert.False(t, earlier.Matches(message), "rule %s should not match sample of %s", earlier.Class, rule.Class)
		}
		assert.Equal(t, rule.Class, Classify(message))
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	table := Rules()
	require.Len(t, table, 7)
	table[0] = Rule{Class: ClassMandatoryChoice, Prefix: "Too many"}

	assert.Equal(t, ClassDataNotUnique, Rules()[0].Class)
	assert.Len(t, Rules(), 7)
	assert.Equal(t, ClassTooManyElements, Classify(msgTooMany))
}

func TestClassifyWith_FirstMatchWins(t *testing.T) {
	rules := []Rule{
		{Class: ClassTooManyElements, Prefix: "Too"},
		{Class: ClassTooFewElements, Prefix: "Too few"},
	}
	assert.Equal(t, ClassTooManyElements, ClassifyWith(rules, msgTooFew))

	reversed := []Rule{rules[1], rules[0]}
	assert.Equal(t, ClassTooFewElements, ClassifyWith(reversed, msgTooFew))

	assert.Equal(t, ClassForeign, ClassifyWith(nil, msgTooFew))
}

func TestRule_Matches(t *testing.T) {
	rule := Rule{Class: ClassLeafrefRequired, Prefix: "Invalid leafref value", Contains: "no existing target instance"}

	assert.True(t, rule.Matches(msgLeafref))
	assert.False(t, rule.Matches("Invalid leafref value \"x\""), "substring required")
	assert.False(t, rule.Matches("no existing target instance"), "prefix required")
}

func TestClass_String(t *testing.T) {
	assert.Equal(t, "foreign", ClassForeign.String())
	assert.Equal(t, "must-violation", ClassMustViolation.String())
	assert.Equal(t, "mandatory-choice", ClassMandatoryChoice.String())
	assert.Equal(t, "unknown", Class(99).String())
}
