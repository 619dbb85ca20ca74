package gram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// This file mirrors the end-to-end scenarios of spec.md §8 one-to-one,
// each as its own test function, independent of the more granular
// per-file unit tests in charset_test.go/grammar_test.go/matcher_test.go/
// transform_test.go.

func TestScenario1LiteralFooExactAndTrailing(t *testing.T) {
	g := Literal[string]("foo")

	mt, err := Match(g, "foo")
	assert.NoError(t, err)
	assert.Equal(t, Token[string]("foo", &Range{0, 3}), mt)

	_, err = Match(g, "foobar")
	var perr *Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, KindUnexpectedToken, perr.Kind)
	assert.Equal(t, "bar", string(perr.Remaining))
	assert.Equal(t, 3, perr.Offset)
}

func TestScenario2CharClassRange(t *testing.T) {
	g := Class[string](CharFromRange('a', 'c'))

	mt, err := Match(g, "a")
	assert.NoError(t, err)
	assert.Equal(t, Token[string]("a", &Range{0, 1}), mt)

	_, err = Match(g, "d")
	var perr *Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, KindExpected, perr.Kind)
	assert.Equal(t, 0, perr.Offset)
}

func TestScenario3AlternationFooBar(t *testing.T) {
	g := Alternation(Literal[string]("foo"), Literal[string]("bar"))

	mt, err := Match(g, "bar")
	assert.NoError(t, err)
	assert.Equal(t, Token[string]("bar", &Range{0, 3}), mt)

	_, err = Match(g, "")
	var perr *Error
	assert.True(t, errors.As(err, &perr))
	assert.Equal(t, KindExpected, perr.Kind)
	assert.Equal(t, 0, perr.Offset)
}

func TestScenario4OptionalThenLiteral(t *testing.T) {
	g := Concat(Optional(Literal[string]("foo")), Literal[string]("bar"))

	mt, err := Match(g, "bar")
	assert.NoError(t, err)
	assert.Equal(t, Node[string](nil, []*Match[string]{Token[string]("bar", &Range{0, 3})}), mt)

	mt, err = Match(g, "foobar")
	assert.NoError(t, err)
	assert.Equal(t, Node[string](nil, []*Match[string]{
		Token[string]("foo", &Range{0, 3}),
		Token[string]("bar", &Range{3, 6}),
	}), mt)
}

func TestScenario5OneOrMoreFoo(t *testing.T) {
	g := OneOrMore(Literal[string]("foo"))

	mt, err := Match(g, "foofoo")
	assert.NoError(t, err)
	assert.Equal(t, Node[string](nil, []*Match[string]{
		Token[string]("foo", &Range{0, 3}),
		Token[string]("foo", &Range{3, 6}),
	}), mt)

	_, err = Match(g, "")
	assert.Error(t, err)
}

func TestScenario6FlattenOverOptionalEmpty(t *testing.T) {
	g := Flatten(Optional(Literal[string]("foo")))

	mt, err := Match(g, "")
	assert.NoError(t, err)
	assert.Equal(t, Token[string]("", nil), mt)
}

func TestLawLiteralRoundTrip(t *testing.T) {
	mt, err := Match(Literal[string]("hello"), "hello")
	assert.NoError(t, err)
	assert.Equal(t, Token[string]("hello", &Range{0, 5}), mt)
}

func TestLawConcatenationSplicing(t *testing.T) {
	mt, err := Match(Concat(Literal[string]("a"), Literal[string]("b")), "ab")
	assert.NoError(t, err)
	assert.Equal(t, Node[string](nil, []*Match[string]{
		Token[string]("a", &Range{0, 1}),
		Token[string]("b", &Range{1, 2}),
	}), mt)
}

func TestLawDiscardIdentityConsumesSameInput(t *testing.T) {
	lit := Literal[string]("xyz")
	discarded := Discard(lit)

	mt1, err1 := Match(lit, "xyz")
	mt2, err2 := Match(discarded, "xyz")
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.True(t, mt1.IsToken())
	assert.True(t, mt2.IsNode())
	assert.Empty(t, mt2.Children())

	_, err1 = Match(lit, "abc")
	_, err2 = Match(discarded, "abc")
	assert.Error(t, err1)
	assert.Error(t, err2)
}

func TestLawReplaceIdentityKeepsRangeOfX(t *testing.T) {
	lit := Literal[string]("xyz")
	replaced := Replace(lit, "R")

	litMatch, err := Match(lit, "xyz")
	assert.NoError(t, err)
	replMatch, err := Match(replaced, "xyz")
	assert.NoError(t, err)

	assert.Equal(t, litMatch.Range(), replMatch.Range())
	assert.Equal(t, "R", replMatch.Text())
}
