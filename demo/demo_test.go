package demo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ashn.dev/daedalus"
)

func newLanguage(t *testing.T, configure func(config *Config)) *daedalus.Daedalus {
	config := DefaultConfig()
	if configure != nil {
		configure(config)
	}
	language, err := New(config)
	require.NoError(t, err)
	return language
}

func folding(config *Config) {
	config.FoldConstants = true
}

func terminated(config *Config) {
	config.Terminator = TOKEN_SEMICOLON
}

func values(results []daedalus.RuntimeResult) []string {
	result := []string{}
	for _, r := range results {
		result = append(result, r.ValueRepr)
	}
	return result
}

func run(t *testing.T, language *daedalus.Daedalus, source string) []string {
	results, err := language.Run(source, nil)
	require.NoError(t, err)
	return values(results)
}

func TestRunFoldedExpression(t *testing.T) {
	results, err := newLanguage(t, folding).Run("3 + 100 * .2 / 1 - 2", nil)
	require.NoError(t, err)
	assert.Equal(t, []daedalus.RuntimeResult{{ExpressionRepr: "NumberExpression(21.000000)", ValueRepr: "21.000000"}}, results)
}

func TestRunUnfoldedExpression(t *testing.T) {
	results, err := newLanguage(t, nil).Run("3 + 100 * .2 / 1 - 2", nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "21.000000", results[0].ValueRepr)
	assert.Contains(t, results[0].ExpressionRepr, "NumberExpression(100.000000)")
}

func TestRunPrecedence(t *testing.T) {
	language := newLanguage(t, nil)
	assert.Equal(t, []string{"7.000000"}, run(t, language, "1 + 2 * 3"))
	assert.Equal(t, []string{"9.000000"}, run(t, language, "(1 + 2) * 3"))
	assert.Equal(t, []string{"1.000000"}, run(t, language, "6 - 3 - 2"))
	assert.Equal(t, []string{"-1.000000"}, run(t, language, "-3 - -2"))
}

func TestRunLogic(t *testing.T) {
	language := newLanguage(t, nil)
	assert.Equal(t, []string{"true"}, run(t, language, "!(1 < 2) || null == null"))
	assert.Equal(t, []string{"false"}, run(t, language, "1 == true"))
	assert.Equal(t, []string{"true"}, run(t, language, "!0"))
	assert.Equal(t, []string{"false"}, run(t, language, "1 >= 2 && true"))
}

func TestRunWithoutTerminator(t *testing.T) {
	language := newLanguage(t, nil)
	assert.Equal(t, []string{"1.000000", "2.000000", "3.000000"}, run(t, language, "1 2\n3"))

	_, err := language.Run("1; 2", nil)
	assert.True(t, errors.Is(err, daedalus.ErrUnexpectedToken))
}

func TestRunTerminator(t *testing.T) {
	language := newLanguage(t, terminated)
	assert.Equal(t, []string{"1.000000", "2.000000"}, run(t, language, "1; 2;"))

	_, err := language.Run("1; 2", nil)
	assert.True(t, errors.Is(err, daedalus.ErrUnexpectedToken))
}

func TestRunVariables(t *testing.T) {
	language := newLanguage(t, terminated)
	assert.Equal(t,
		[]string{"2.000000", "6.000000", "6.000000", "7.000000"},
		run(t, language, "let x = 2; mut y = x * 3; y = y + 1; y;"),
	)
}

func TestRunImmutable(t *testing.T) {
	_, err := newLanguage(t, terminated).Run("let x = 1; x = 2;", nil)
	assert.True(t, errors.Is(err, daedalus.ErrRuleRejected))
}

func TestRunUndeclared(t *testing.T) {
	language := newLanguage(t, terminated)
	_, err := language.Run("y;", nil)
	assert.True(t, errors.Is(err, daedalus.ErrUndeclared))

	_, err = language.Run("y = 1;", nil)
	assert.True(t, errors.Is(err, daedalus.ErrUndeclared))
}

func TestRunRedeclaration(t *testing.T) {
	_, err := newLanguage(t, terminated).Run("let x = 1; let x = 2;", nil)
	assert.True(t, errors.Is(err, daedalus.ErrRedeclaration))
}

func TestRunBlockReturn(t *testing.T) {
	language := newLanguage(t, terminated)
	assert.Equal(t, []string{"2.000000"}, run(t, language, "{ 1; return 2; 3 };"))
	assert.Equal(t, []string{"1.000000"}, run(t, language, "{ 1; return; 3 };"))
	assert.Equal(t, []string{"null"}, run(t, language, "{ return };"))
	assert.Equal(t, []string{"3.000000"}, run(t, language, "{ 1 2 3 };"))
	assert.Equal(t, []string{"null"}, run(t, language, "{ };"))
}

func TestRunNestedBlockReturn(t *testing.T) {
	language := newLanguage(t, terminated)
	assert.Equal(t, []string{"5.000000"}, run(t, language, "{ { return 1; 2 }; 5 };"))
	assert.Equal(t, []string{"4.000000"}, run(t, language, "{ let a = { return 4 }; a };"))
}

func TestRunTopLevelReturn(t *testing.T) {
	language := newLanguage(t, terminated)
	assert.Equal(t, []string{"5.000000", "6.000000"}, run(t, language, "return 5; 6;"))
}

func TestRunBlockScope(t *testing.T) {
	language := newLanguage(t, terminated)
	assert.Equal(t,
		[]string{"1.000000", "10.000000", "5.000000"},
		run(t, language, "mut x = 1; { x = 5; let x = 10; x }; x;"),
	)

	_, err := language.Run("{ let inner = 1 }; inner;", nil)
	assert.True(t, errors.Is(err, daedalus.ErrUndeclared))
}

func TestRunDivisionByZero(t *testing.T) {
	_, err := newLanguage(t, nil).Run("1 / 0", nil)
	assert.True(t, errors.Is(err, daedalus.ErrDivisionByZero))

	// Folding reports the error while parsing.
	_, err = newLanguage(t, folding).Parse("1 / (2 - 2)", nil)
	assert.True(t, errors.Is(err, daedalus.ErrDivisionByZero))
}

func TestRunOperandMismatch(t *testing.T) {
	_, err := newLanguage(t, nil).Run("1 + true", nil)
	assert.True(t, errors.Is(err, daedalus.ErrOperandMismatch))

	_, err = newLanguage(t, nil).Run("-null", nil)
	assert.True(t, errors.Is(err, daedalus.ErrOperandMismatch))
}

func TestRunDecimalSeparator(t *testing.T) {
	language := newLanguage(t, func(config *Config) {
		config.DecimalSeparator = ","
	})
	assert.Equal(t, []string{"2.500000"}, run(t, language, "1,5 + 1"))
}
