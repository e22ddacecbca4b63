package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ashn.dev/daedalus"
	"ashn.dev/daedalus/demo"
)

func TestIsIncomplete(t *testing.T) {
	language, err := demo.New(demo.DefaultConfig())
	require.NoError(t, err)

	assert.True(t, isIncomplete(language, "{ let x = 1"))
	assert.True(t, isIncomplete(language, "1 +"))
	assert.False(t, isIncomplete(language, "{ 1 }"))
	assert.False(t, isIncomplete(language, ")"))
	assert.False(t, isIncomplete(language, ""))
}

func TestPrintErrorLocation(t *testing.T) {
	language, err := demo.New(demo.DefaultConfig())
	require.NoError(t, err)

	_, err = language.Run("1 +\n)", &daedalus.SourceLocation{File: "test.dd", Line: 1})
	require.Error(t, err)
	assert.Equal(t, &daedalus.SourceLocation{File: "test.dd", Line: 2}, errorLocation(err))

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "[test.dd:2]")

	assert.Nil(t, errorLocation(errors.New("plain")))
}

func TestPrintTrace(t *testing.T) {
	var buf bytes.Buffer
	printTrace(&buf, []daedalus.RuntimeResult{{ExpressionRepr: "NumberExpression(21.000000)", ValueRepr: "21.000000"}})
	assert.Contains(t, buf.String(), "NumberExpression(21.000000)")
	assert.Contains(t, buf.String(), "21.000000")

	buf.Reset()
	printTrace(&buf, nil)
	assert.Empty(t, buf.String())
}
