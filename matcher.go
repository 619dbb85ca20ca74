package gram

import (
	"fmt"
	"strings"
)

// matcher holds the running state of a single Match invocation: the
// random-access scalar input, the current cursor, the farthest position
// reached by any failed attempt (for diagnostics), and the reference
// environment (spec.md §4.3, §3.3). No state here is shared across
// invocations.
type matcher[L comparable] struct {
	input []rune
	index int

	bestIndex int

	env map[L]*Grammar[L]
}

// Match runs the backtracking matcher for g over input, returning the
// resulting match tree, or an *Error describing why matching failed
// (spec.md §4.3, §6.1). input is converted to a scalar slice once up
// front; matching never revisits text the caller didn't supply.
func Match[L comparable](g *Grammar[L], input string) (*Match[L], error) {
	m := &matcher[L]{input: []rune(input), env: make(map[L]*Grammar[L])}

	mt, ok := m.matchTree(g)
	if !ok {
		return nil, m.farthestFailure()
	}
	if m.index != len(m.input) {
		return nil, newUnexpectedTokenError(m.input[m.index:], m.index)
	}
	return mt, nil
}

func (m *matcher[L]) farthestFailure() *Error {
	return newExpectedError(m.input[m.bestIndex:], m.bestIndex)
}

// noteFailure records at as the farthest position reached by any failed
// attempt so far, for the eventual Expected error (spec.md §7: "only the
// farthest failure location is retained for reporting").
func (m *matcher[L]) noteFailure(at int) {
	if at > m.bestIndex {
		m.bestIndex = at
	}
}

// appendSpliced implements the node-splicing rule shared by concatenation
// and zero-or-more (spec.md §4.3): an unlabeled node's children are
// spliced into the parent; a token or a labeled node is appended whole.
func appendSpliced[L comparable](children []*Match[L], child *Match[L]) []*Match[L] {
	if child.kind == matchNode && child.label == nil {
		return append(children, child.children...)
	}
	return append(children, child)
}

// bind records that name resolves to term for the remainder of this
// match invocation (spec.md §3.3, §9: "each descent through a label adds
// or overwrites the binding" — bindings are never unwound on return or on
// backtracking).
func (m *matcher[L]) bind(name L, term *Grammar[L]) {
	m.env[name] = term
}

func (m *matcher[L]) resolve(name L) *Grammar[L] {
	term, ok := m.env[name]
	if !ok {
		panic(fmt.Sprintf("gram: unbound reference %v", name))
	}
	return term
}

// skip evaluates g for success/failure only, discarding any match tree.
// It is used where no tree is retained: discard, inside flatten for
// subterms whose textual content doesn't matter, and the character-class
// hot loop under zero-or-more (spec.md §4.3).
func (m *matcher[L]) skip(g *Grammar[L]) bool {
	switch g.kind {
	case KindLiteral:
		return m.skipLiteral(g.literal)

	case KindClass:
		if m.index >= len(m.input) || !g.class.Contains(m.input[m.index]) {
			m.noteFailure(m.index)
			return false
		}
		m.index++
		return true

	case KindAlternation:
		for _, alt := range g.subterms {
			start := m.index
			if m.skip(alt) && m.index > start {
				return true
			}
			m.index = start
		}
		return false

	case KindConcat:
		start := m.index
		for _, sub := range g.subterms {
			at := m.index
			if !m.skip(sub) {
				m.noteFailure(at)
				m.index = start
				return false
			}
		}
		return true

	case KindOptional:
		start := m.index
		if !m.skip(g.sub) {
			m.index = start
		}
		return true

	case KindZeroOrMore:
		m.skipZeroOrMore(g.sub)
		return true

	case KindFlatten, KindDiscard, KindReplace:
		return m.skip(g.sub)

	case KindLabel:
		m.bind(g.label, g)
		return m.skip(g.sub)

	case KindReference:
		return m.skip(m.resolve(g.label))

	default:
		panic(fmt.Sprintf("gram: unhandled grammar kind %v", g.kind))
	}
}

func (m *matcher[L]) skipLiteral(s string) bool {
	rs := []rune(s)
	for i, r := range rs {
		if m.index+i >= len(m.input) || m.input[m.index+i] != r {
			m.noteFailure(m.index + i)
			return false
		}
	}
	m.index += len(rs)
	return true
}

func (m *matcher[L]) skipZeroOrMore(sub *Grammar[L]) {
	if sub.kind == KindClass {
		for m.index < len(m.input) && sub.class.Contains(m.input[m.index]) {
			m.index++
		}
		return
	}
	for {
		start := m.index
		if !m.skip(sub) {
			m.index = start
			return
		}
		if m.index == start {
			return
		}
	}
}

// matchString evaluates g for its concatenated scalar content, used under
// flatten (spec.md §4.3).
func (m *matcher[L]) matchString(g *Grammar[L]) (string, bool) {
	switch g.kind {
	case KindLiteral:
		start := m.index
		if !m.skipLiteral(g.literal) {
			return "", false
		}
		return string(m.input[start:m.index]), true

	case KindClass:
		if m.index >= len(m.input) || !g.class.Contains(m.input[m.index]) {
			m.noteFailure(m.index)
			return "", false
		}
		r := m.input[m.index]
		m.index++
		return string(r), true

	case KindAlternation:
		for _, alt := range g.subterms {
			start := m.index
			s, ok := m.matchString(alt)
			if ok && m.index > start {
				return s, true
			}
			m.index = start
		}
		return "", false

	case KindConcat:
		start := m.index
		var sb strings.Builder
		for _, sub := range g.subterms {
			at := m.index
			s, ok := m.matchString(sub)
			if !ok {
				m.noteFailure(at)
				m.index = start
				return "", false
			}
			sb.WriteString(s)
		}
		return sb.String(), true

	case KindOptional:
		start := m.index
		s, ok := m.matchString(g.sub)
		if !ok {
			m.index = start
			return "", true
		}
		return s, true

	case KindZeroOrMore:
		return m.matchStringZeroOrMore(g.sub), true

	case KindFlatten:
		return m.matchString(g.sub)

	case KindDiscard:
		if !m.skip(g.sub) {
			return "", false
		}
		return "", true

	case KindReplace:
		if !m.skip(g.sub) {
			return "", false
		}
		return g.replacement, true

	case KindLabel:
		m.bind(g.label, g)
		return m.matchString(g.sub)

	case KindReference:
		return m.matchString(m.resolve(g.label))

	default:
		panic(fmt.Sprintf("gram: unhandled grammar kind %v", g.kind))
	}
}

func (m *matcher[L]) matchStringZeroOrMore(sub *Grammar[L]) string {
	var sb strings.Builder
	if sub.kind == KindClass {
		for m.index < len(m.input) && sub.class.Contains(m.input[m.index]) {
			sb.WriteRune(m.input[m.index])
			m.index++
		}
		return sb.String()
	}
	for {
		start := m.index
		s, ok := m.matchString(sub)
		if !ok {
			m.index = start
			break
		}
		if m.index == start {
			break
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// matchTree evaluates g, building a full match tree (spec.md §4.3). This
// is the top-level entry point invoked by Match.
func (m *matcher[L]) matchTree(g *Grammar[L]) (*Match[L], bool) {
	switch g.kind {
	case KindLiteral:
		return m.matchTreeLiteral(g)

	case KindClass:
		return m.matchTreeClass(g)

	case KindAlternation:
		for _, alt := range g.subterms {
			start := m.index
			mt, ok := m.matchTree(alt)
			if ok && m.index > start {
				return mt, true
			}
			m.index = start
		}
		return nil, false

	case KindConcat:
		return m.matchTreeConcat(g)

	case KindOptional:
		start := m.index
		mt, ok := m.matchTree(g.sub)
		if !ok {
			m.index = start
			return Node[L](nil, nil), true
		}
		return mt, true

	case KindZeroOrMore:
		return m.matchTreeZeroOrMore(g)

	case KindFlatten:
		return m.matchTreeFlatten(g)

	case KindDiscard:
		start := m.index
		if !m.skip(g.sub) {
			m.index = start
			return nil, false
		}
		return Node[L](nil, nil), true

	case KindReplace:
		start := m.index
		if !m.skip(g.sub) {
			m.index = start
			return nil, false
		}
		end := m.index
		if end == start {
			return Token[L](g.replacement, nil), true
		}
		return Token[L](g.replacement, &Range{start, end}), true

	case KindLabel:
		return m.matchTreeLabel(g)

	case KindReference:
		return m.matchTree(m.resolve(g.label))

	default:
		panic(fmt.Sprintf("gram: unhandled grammar kind %v", g.kind))
	}
}

func (m *matcher[L]) matchTreeLiteral(g *Grammar[L]) (*Match[L], bool) {
	start := m.index
	if !m.skipLiteral(g.literal) {
		return nil, false
	}
	end := m.index
	return Token[L](g.literal, &Range{start, end}), true
}

func (m *matcher[L]) matchTreeClass(g *Grammar[L]) (*Match[L], bool) {
	if m.index >= len(m.input) || !g.class.Contains(m.input[m.index]) {
		m.noteFailure(m.index)
		return nil, false
	}
	start := m.index
	r := m.input[start]
	m.index++
	return Token[L](string(r), &Range{start, m.index}), true
}

func (m *matcher[L]) matchTreeConcat(g *Grammar[L]) (*Match[L], bool) {
	start := m.index
	var children []*Match[L]
	for _, sub := range g.subterms {
		at := m.index
		mt, ok := m.matchTree(sub)
		if !ok {
			m.noteFailure(at)
			m.index = start
			return nil, false
		}
		children = appendSpliced(children, mt)
	}
	return Node[L](nil, children), true
}

func (m *matcher[L]) matchTreeZeroOrMore(g *Grammar[L]) (*Match[L], bool) {
	if g.sub.kind == KindClass {
		var children []*Match[L]
		for m.index < len(m.input) && g.sub.class.Contains(m.input[m.index]) {
			start := m.index
			m.index++
			children = append(children, Token[L](string(m.input[start]), &Range{start, m.index}))
		}
		return Node[L](nil, children), true
	}

	var children []*Match[L]
	for {
		start := m.index
		mt, ok := m.matchTree(g.sub)
		if !ok {
			m.index = start
			break
		}
		if m.index == start {
			break
		}
		children = appendSpliced(children, mt)
	}
	return Node[L](nil, children), true
}

func (m *matcher[L]) matchTreeFlatten(g *Grammar[L]) (*Match[L], bool) {
	start := m.index
	text, ok := m.matchString(g.sub)
	if !ok {
		m.index = start
		return nil, false
	}
	end := m.index
	if end == start {
		return Token[L](text, nil), true
	}
	return Token[L](text, &Range{start, end}), true
}

func (m *matcher[L]) matchTreeLabel(g *Grammar[L]) (*Match[L], bool) {
	m.bind(g.label, g)
	mt, ok := m.matchTree(g.sub)
	if !ok {
		return nil, false
	}

	name := g.label
	if mt.kind == matchNode && mt.label == nil {
		return Node[L](&name, mt.children), true
	}
	return Node[L](&name, []*Match[L]{mt}), true
}
