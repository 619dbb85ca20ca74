package gram

import "fmt"

// ErrorKind discriminates the three ways a match can fail (spec.md §7).
type ErrorKind int

const (
	// KindExpected means the matcher exhausted its options; the farthest
	// failure position's expectation is reported.
	KindExpected ErrorKind = iota
	// KindUnexpectedToken means the top-level term succeeded but input
	// remained.
	KindUnexpectedToken
	// KindCustom wraps a user reducer error (spec.md §4.4, §7).
	KindCustom
)

func (k ErrorKind) String() string {
	switch k {
	case KindExpected:
		return "expected"
	case KindUnexpectedToken:
		return "unexpected-token"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Error is the single structured failure a caller of Match or Transform
// ever receives (spec.md §3.4, §7): a kind, the remaining unmatched
// scalars, and the scalar offset the error is pinned at. No partial match
// tree is exposed alongside it.
type Error struct {
	Kind      ErrorKind
	Remaining []rune
	Offset    int

	// Inner holds the wrapped user error for KindCustom, nil otherwise.
	Inner error
}

// NoOffset marks an *Error built by application code (typically a reducer
// passed to Transform) that hasn't pinned an offset yet. Transform fills
// it in from the originating node's range (spec.md §4.4, §7).
const NoOffset = -1

func newExpectedError(remaining []rune, offset int) *Error {
	return &Error{Kind: KindExpected, Remaining: remaining, Offset: offset}
}

func newUnexpectedTokenError(remaining []rune, offset int) *Error {
	return &Error{Kind: KindUnexpectedToken, Remaining: remaining, Offset: offset}
}

func newCustomError(inner error, offset int) *Error {
	return &Error{Kind: KindCustom, Offset: offset, Inner: inner}
}

// Error renders a one-line textual description (spec.md §6.3). It does not
// attempt to describe the grammar term itself or pretty-print the match
// tree — that is the out-of-scope diagnostics collaborator's job; here the
// "token" shown at the failure site is the remaining input truncated to
// its first whitespace-delimited run.
func (e *Error) Error() string {
	switch e.Kind {
	case KindUnexpectedToken:
		return fmt.Sprintf("unexpected token %q at %d", failureToken(e.Remaining), e.Offset)
	case KindCustom:
		return fmt.Sprintf("%s at %d", e.Inner, e.Offset)
	default:
		return fmt.Sprintf("expected input at %d", e.Offset)
	}
}

// Unwrap exposes the wrapped reducer error for KindCustom, so callers can
// use errors.Is/errors.As against it idiomatically.
func (e *Error) Unwrap() error {
	return e.Inner
}

// failureToken renders the "token" at a failure site per spec.md §6.3: the
// first scalar if it is whitespace, otherwise the longest run of
// non-whitespace scalars from the failure point.
func failureToken(remaining []rune) string {
	if len(remaining) == 0 {
		return ""
	}
	if isSpace(remaining[0]) {
		return string(remaining[0])
	}
	i := 0
	for i < len(remaining) && !isSpace(remaining[i]) {
		i++
	}
	return string(remaining[:i])
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
