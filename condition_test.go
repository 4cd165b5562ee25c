package fluentdb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCondition(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		raw   any
		kind  ConditionKind
		op    string
		value any
		sql   string
	}{
		{"plain string", "2", Equals, "=", "2", "id = :id "},
		{"text with spaces", "hello world", Equals, "=", "hello world", "id = :id "},
		{"integer", 42, Equals, "=", 42, "id = :id "},
		{"nil", nil, Equals, "=", nil, "id = :id "},
		{"time", now, Equals, "=", now, "id = :id "},
		{"greater or equal", ">= 1", Compare, ">=", "1", "id >= :id "},
		{"less", "< 10", Compare, "<", "10", "id < :id "},
		{"greater", "> 0", Compare, ">", "0", "id > :id "},
		{"less or equal", "<= 5", Compare, "<=", "5", "id <= :id "},
		{"equals", "= 3", Compare, "=", "3", "id = :id "},
		{"not equal", "!= 3", Compare, "!=", "3", "id != :id "},
		{"diamond", "<> 3", Compare, "<>", "3", "id <> :id "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseCondition("id", tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind)
			assert.Equal(t, "id", c.Column)
			assert.Equal(t, tt.op, c.Operator)
			assert.Equal(t, tt.value, c.Value)
			assert.Equal(t, tt.sql, c.SQL())
		})
	}
}

func TestParseCondition_OperatorCharsAlwaysCompare(t *testing.T) {
	for _, v := range []string{"< 1", "> 1", "= 1", "<= a", ">= b", "!= c"} {
		c, err := ParseCondition("x", v)
		require.NoError(t, err, v)
		assert.Equal(t, Compare, c.Kind, v)
	}
	for _, v := range []string{"1", "abc", "a b c", "!", "", "LIKE %x%"} {
		c, err := ParseCondition("x", v)
		require.NoError(t, err, v)
		assert.Equal(t, Equals, c.Kind, v)
	}
}

func TestParseCondition_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no space", ">=18"},
		{"extra token", ">= 18 years"},
		{"double space", ">=  18"},
		{"not allowed", "== 1"},
		{"like", "LIKE a=b"},
		{"empty operator", " =1"},
		{"empty value", "> "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCondition("age", tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedCondition))
			assert.Contains(t, err.Error(), "age")
		})
	}
}

func TestCondsFromMap(t *testing.T) {
	conds := CondsFromMap(map[string]any{"b": 2, "c": "x", "a": ">= 1"})
	require.Len(t, conds, 3)
	assert.Equal(t, Cond{"a", ">= 1"}, conds[0])
	assert.Equal(t, Cond{"b", 2}, conds[1])
	assert.Equal(t, Cond{"c", "x"}, conds[2])

	assert.Empty(t, CondsFromMap(nil))
}

func TestConditionKind_String(t *testing.T) {
	assert.Equal(t, "Equals", Equals.String())
	assert.Equal(t, "Compare", Compare.String())
}
