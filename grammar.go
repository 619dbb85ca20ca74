package gram

// Kind discriminates the variants of a Grammar term.
type Kind int

// The grammar variants of spec.md §3.1.
const (
	KindLiteral Kind = iota
	KindClass
	KindAlternation
	KindConcat
	KindOptional
	KindZeroOrMore
	KindFlatten
	KindDiscard
	KindReplace
	KindLabel
	KindReference
)

// Grammar is a recursive, persistent, structurally-comparable value
// describing what to match. It is generic over the label type L, which
// must support equality (the comparable constraint also gives it the
// hashing Go's own map type needs to key a reference environment by L).
//
// Subterms are held as *Grammar[L] pointers; Go's garbage collector already
// gives structural sharing across combinators for free, so no further
// reference counting is implemented.
type Grammar[L comparable] struct {
	kind Kind

	literal     string  // KindLiteral
	class       CharSet // KindClass
	replacement string  // KindReplace
	label       L       // KindLabel, KindReference

	sub      *Grammar[L]   // KindOptional, KindZeroOrMore, KindFlatten, KindDiscard, KindReplace, KindLabel
	subterms []*Grammar[L] // KindAlternation, KindConcat
}

// Literal returns a grammar matching the exact scalar sequence s.
func Literal[L comparable](s string) *Grammar[L] {
	return &Grammar[L]{kind: KindLiteral, literal: s}
}

// Class returns a grammar matching exactly one scalar in c.
func Class[L comparable](c CharSet) *Grammar[L] {
	return &Grammar[L]{kind: KindClass, class: c}
}

// Alternation returns a grammar matching the first of terms that succeeds,
// in order. It does not flatten nested alternations; use Or to combine two
// grammars with the flattening rule of spec.md §4.2.
func Alternation[L comparable](terms ...*Grammar[L]) *Grammar[L] {
	return &Grammar[L]{kind: KindAlternation, subterms: append([]*Grammar[L]{}, terms...)}
}

// Concat returns a grammar requiring every term of terms to match in
// order.
func Concat[L comparable](terms ...*Grammar[L]) *Grammar[L] {
	return &Grammar[L]{kind: KindConcat, subterms: append([]*Grammar[L]{}, terms...)}
}

// Optional returns a grammar matching g, or an empty match without
// consuming input if g fails.
func Optional[L comparable](g *Grammar[L]) *Grammar[L] {
	return &Grammar[L]{kind: KindOptional, sub: g}
}

// ZeroOrMore returns a grammar matching g greedily, zero or more times.
func ZeroOrMore[L comparable](g *Grammar[L]) *Grammar[L] {
	return &Grammar[L]{kind: KindZeroOrMore, sub: g}
}

// Flatten returns a grammar that, on success of g, replaces g's match tree
// with a single token holding the concatenation of all leaf strings g
// would have produced.
func Flatten[L comparable](g *Grammar[L]) *Grammar[L] {
	return &Grammar[L]{kind: KindFlatten, sub: g}
}

// Discard returns a grammar that succeeds iff g succeeds, producing an
// empty node with no tokens.
func Discard[L comparable](g *Grammar[L]) *Grammar[L] {
	return &Grammar[L]{kind: KindDiscard, sub: g}
}

// Replace returns a grammar that succeeds iff g succeeds, producing a
// single token with literal content r spanning whatever g consumed. If g
// consumed no input, the token has no range.
func Replace[L comparable](g *Grammar[L], r string) *Grammar[L] {
	return &Grammar[L]{kind: KindReplace, sub: g, replacement: r}
}

// LabelTerm names a subterm. The match tree node produced is tagged with
// name, and each time the matcher descends through it, name is bound to this
// term in the reference environment (spec.md §3.3). The binding is not undone
// on return or backtracking; it lasts for the rest of the match invocation
// unless a later descent through a LabelTerm of the same name overwrites it.
func LabelTerm[L comparable](name L, g *Grammar[L]) *Grammar[L] {
	return &Grammar[L]{kind: KindLabel, label: name, sub: g}
}

// Reference resolves to the most recently bound LabelTerm of name at match
// time. Referencing an unbound name is a programmer error, not a parse
// error (spec.md §7): the matcher panics rather than returning an *Error.
func Reference[L comparable](name L) *Grammar[L] {
	return &Grammar[L]{kind: KindReference, label: name}
}

// OneOrMore is concat(X, zero_or_more(X)), per spec.md §3.1.
func OneOrMore[L comparable](g *Grammar[L]) *Grammar[L] {
	return Concat(g, ZeroOrMore(g))
}

// Interleaved is concat(zero_or_more(concat(item, sep)), item), per
// spec.md §3.1.
func Interleaved[L comparable](item, sep *Grammar[L]) *Grammar[L] {
	return Concat(ZeroOrMore(Concat(item, sep)), item)
}

// Or combines a and b into an alternation, applying the flattening rules
// of spec.md §4.2: nested alternations on either side are spliced rather
// than nested, and a disjunction of two character classes collapses into
// a single character-class grammar over the union of their sets.
func Or[L comparable](a, b *Grammar[L]) *Grammar[L] {
	if a.kind == KindClass && b.kind == KindClass {
		return Class[L](a.class.Union(b.class))
	}

	var terms []*Grammar[L]
	if a.kind == KindAlternation {
		terms = append(terms, a.subterms...)
	} else {
		terms = append(terms, a)
	}
	if b.kind == KindAlternation {
		terms = append(terms, b.subterms...)
	} else {
		terms = append(terms, b)
	}
	return Alternation(terms...)
}

// Equal reports whether g and other describe the same grammar: equal
// variants with structurally equal fields, recursively. Equality on
// character classes is equality of the underlying scalar set (spec.md
// §3.1).
func (g *Grammar[L]) Equal(other *Grammar[L]) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.kind != other.kind {
		return false
	}
	switch g.kind {
	case KindLiteral:
		return g.literal == other.literal
	case KindClass:
		return g.class.Equal(other.class)
	case KindAlternation, KindConcat:
		if len(g.subterms) != len(other.subterms) {
			return false
		}
		for i := range g.subterms {
			if !g.subterms[i].Equal(other.subterms[i]) {
				return false
			}
		}
		return true
	case KindOptional, KindZeroOrMore, KindFlatten, KindDiscard:
		return g.sub.Equal(other.sub)
	case KindReplace:
		return g.replacement == other.replacement && g.sub.Equal(other.sub)
	case KindLabel:
		return g.label == other.label && g.sub.Equal(other.sub)
	case KindReference:
		return g.label == other.label
	default:
		return false
	}
}

// IsOptional reports whether g can succeed while consuming no input. It is
// consumed only by the pretty-printing/diagnostics collaborator (out of
// scope here, spec.md §4.5); it does not affect matching semantics.
//
// For a Reference it returns false, to avoid infinite recursion in the
// absence of cycle tracking — spec.md §4.3 notes this explicitly as a
// known limitation of the predicate, not of the matcher.
func IsOptional[L comparable](g *Grammar[L]) bool {
	switch g.kind {
	case KindOptional, KindZeroOrMore:
		return true
	case KindConcat:
		for _, sub := range g.subterms {
			if !IsOptional(sub) {
				return false
			}
		}
		return true
	case KindAlternation:
		for _, sub := range g.subterms {
			if IsOptional(sub) {
				return true
			}
		}
		return false
	case KindLabel, KindFlatten, KindDiscard, KindReplace:
		return IsOptional(g.sub)
	case KindReference:
		return false
	case KindLiteral:
		return g.literal == ""
	default:
		return false
	}
}
