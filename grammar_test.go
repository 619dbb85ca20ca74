package gram

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarEqualLiteral(t *testing.T) {
	a := Literal[string]("foo")
	b := Literal[string]("foo")
	c := Literal[string]("bar")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestGrammarEqualClass(t *testing.T) {
	a := Class[string](CharFromRange('a', 'z'))
	b := Class[string](CharFromString("abcdefghijklmnopqrstuvwxyz"))
	assert.True(t, a.Equal(b))
}

func TestGrammarEqualConcatAndAlternation(t *testing.T) {
	a := Concat(Literal[string]("a"), Literal[string]("b"))
	b := Concat(Literal[string]("a"), Literal[string]("b"))
	assert.True(t, a.Equal(b))

	c := Alternation(Literal[string]("a"), Literal[string]("b"))
	d := Alternation(Literal[string]("a"), Literal[string]("c"))
	assert.False(t, c.Equal(d))
}

func TestGrammarEqualLabelAndReference(t *testing.T) {
	a := LabelTerm("x", Literal[string]("foo"))
	b := LabelTerm("x", Literal[string]("foo"))
	assert.True(t, a.Equal(b))

	r1 := Reference[string]("x")
	r2 := Reference[string]("x")
	r3 := Reference[string]("y")
	assert.True(t, r1.Equal(r2))
	assert.False(t, r1.Equal(r3))
}

func TestOrFlattensNestedAlternations(t *testing.T) {
	a := Literal[string]("a")
	b := Literal[string]("b")
	c := Literal[string]("c")
	d := Literal[string]("d")

	// any(a,b) | c -> any(a,b,c)
	ab := Alternation(a, b)
	abc := Or(ab, c)
	assert.Equal(t, KindAlternation, abc.kind)
	assert.Equal(t, 3, len(abc.subterms))
	assert.True(t, abc.Equal(Alternation(a, b, c)))

	// a | any(b,c) -> any(a,b,c)
	bc := Alternation(b, c)
	abc2 := Or(a, bc)
	assert.True(t, abc2.Equal(Alternation(a, b, c)))

	// any(a,b) | any(c,d) -> any(a,b,c,d)
	cd := Alternation(c, d)
	abcd := Or(ab, cd)
	assert.True(t, abcd.Equal(Alternation(a, b, c, d)))
}

func TestOrOfTwoCharClassesUnions(t *testing.T) {
	digits := Class[string](CharFromRange('0', '9'))
	letters := Class[string](CharFromRange('a', 'z'))
	combined := Or(digits, letters)
	assert.Equal(t, KindClass, combined.kind)
	assert.True(t, combined.class.Contains('5'))
	assert.True(t, combined.class.Contains('q'))
}

func TestSingleScalarLiteralKeptAsLiteral(t *testing.T) {
	// spec.md §4.2: a short literal-string grammar of exactly one scalar
	// is NOT promoted to a character class; it stays a literal.
	g := Literal[string]("a")
	assert.Equal(t, KindLiteral, g.kind)
}

func TestOneOrMoreIsConcatOfXAndZeroOrMoreX(t *testing.T) {
	x := Literal[string]("foo")
	oom := OneOrMore(x)
	expected := Concat(x, ZeroOrMore(x))
	assert.True(t, oom.Equal(expected))
}

func TestInterleavedDerivation(t *testing.T) {
	item := Literal[string]("x")
	sep := Literal[string](",")
	got := Interleaved(item, sep)
	expected := Concat(ZeroOrMore(Concat(item, sep)), item)
	assert.True(t, got.Equal(expected))
}

func TestIsOptional(t *testing.T) {
	assert.True(t, IsOptional(Optional(Literal[string]("x"))))
	assert.True(t, IsOptional(ZeroOrMore(Literal[string]("x"))))
	assert.True(t, IsOptional(Concat(Optional(Literal[string]("a")), Optional(Literal[string]("b")))))
	assert.False(t, IsOptional(Concat(Optional(Literal[string]("a")), Literal[string]("b"))))
	assert.True(t, IsOptional(Alternation(Optional(Literal[string]("a")), Literal[string]("b"))))
	assert.False(t, IsOptional(Alternation(Literal[string]("a"), Literal[string]("b"))))
	assert.False(t, IsOptional(Reference[string]("x")))
}
