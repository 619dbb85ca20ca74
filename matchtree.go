package gram

// Range is a half-open scalar-offset interval [Start, End) into the
// matched input. It is absent (nil *Range) for synthetic tokens produced
// by flatten/replace over empty input (spec.md §3.2).
type Range struct {
	Start, End int
}

// Equal reports whether r and other describe the same interval.
func (r *Range) Equal(other *Range) bool {
	if r == nil || other == nil {
		return r == other
	}
	return *r == *other
}

// matchKind discriminates the two match tree variants (spec.md §3.2).
type matchKind int

const (
	matchToken matchKind = iota
	matchNode
)

// Match is the result AST of a successful match: a token holding a literal
// scalar sequence and optional source range, or a node holding an ordered
// list of children and an optional label. Match is parameterized by the
// same label type L as the Grammar it was produced from, so a Node's label
// equality (not just its presence) is type-checked.
type Match[L comparable] struct {
	kind matchKind

	text string // matchToken
	span *Range // matchToken

	label    *L         // matchNode, nil if unlabeled
	children []*Match[L] // matchNode
}

// Token returns a leaf match holding text and, if span is non-nil, the
// source range it came from.
func Token[L comparable](text string, span *Range) *Match[L] {
	return &Match[L]{kind: matchToken, text: text, span: span}
}

// Node returns a non-leaf match holding children, tagged with label if
// label is non-nil.
func Node[L comparable](label *L, children []*Match[L]) *Match[L] {
	return &Match[L]{kind: matchNode, label: label, children: children}
}

// IsToken reports whether m is a token.
func (m *Match[L]) IsToken() bool { return m.kind == matchToken }

// IsNode reports whether m is a node.
func (m *Match[L]) IsNode() bool { return m.kind == matchNode }

// Text returns a token's literal content. Calling it on a node returns "".
func (m *Match[L]) Text() string {
	if m.kind != matchToken {
		return ""
	}
	return m.text
}

// Label returns a node's label, or nil if the node is unlabeled or m is a
// token.
func (m *Match[L]) Label() *L {
	if m.kind != matchNode {
		return nil
	}
	return m.label
}

// Children returns a node's ordered children, or nil for a token.
func (m *Match[L]) Children() []*Match[L] {
	if m.kind != matchNode {
		return nil
	}
	return m.children
}

// Range returns the match's source range. For a token it is the range it
// was constructed with. For a node it is derived: first_child.start ..
// last_child.end over the children that have a range, or absent if none
// do (spec.md §3.2).
func (m *Match[L]) Range() *Range {
	if m.kind == matchToken {
		return m.span
	}

	var start, end *Range
	for _, c := range m.children {
		if r := c.Range(); r != nil {
			if start == nil {
				start = r
			}
			end = r
		}
	}
	if start == nil {
		return nil
	}
	return &Range{Start: start.Start, End: end.End}
}

// Equal reports whether m and other describe the same match tree: tokens
// equal iff (string, range) equal; nodes equal iff (label, children)
// equal (spec.md §6.2).
func (m *Match[L]) Equal(other *Match[L]) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.kind != other.kind {
		return false
	}
	if m.kind == matchToken {
		return m.text == other.text && m.span.Equal(other.span)
	}

	if (m.label == nil) != (other.label == nil) {
		return false
	}
	if m.label != nil && *m.label != *other.label {
		return false
	}
	if len(m.children) != len(other.children) {
		return false
	}
	for i := range m.children {
		if !m.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}
