package fluentdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	l := &recordingLogger{}
	d := NewDB(nil,
		WithLogger(l),
		WithDebug(true),
		WithLogArgs(true),
		WithFetchMode(FetchBoth),
		WithStrictIdentifiers(true),
		nil,
	)

	assert.Same(t, l, d.logger)
	assert.True(t, d.debug)
	assert.True(t, d.logArgs)
	assert.Equal(t, FetchBoth, d.fetchMode)
	assert.True(t, d.strict)
}

func TestNewDB_Defaults(t *testing.T) {
	d := NewDB(nil)

	assert.IsType(t, NopLogger{}, d.logger)
	assert.False(t, d.debug)
	assert.Equal(t, FetchAssoc, d.fetchMode)
	assert.Same(t, d, d.executor())
}

func TestDB_BuilderInheritsOptions(t *testing.T) {
	d := NewDB(nil, WithFetchMode(FetchNum), WithStrictIdentifiers(true), WithDebug(true))

	b := d.Builder()
	assert.Equal(t, FetchNum, b.fetchMode)
	assert.True(t, b.strict)
	assert.IsType(t, &loggingExecutor{}, b.executor)

	b = d.Select("users; --")
	assert.ErrorIs(t, b.Err(), ErrInvalidIdentifier)

	assert.NotSame(t, d.Builder(), d.Builder())
}

func TestBuilderOptions(t *testing.T) {
	b := NewBuilder(nil, Strict(), WithBuilderFetchMode(FetchBoth), nil)
	assert.True(t, b.strict)
	assert.Equal(t, FetchBoth, b.fetchMode)
}
