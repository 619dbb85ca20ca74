package gram

import "errors"

// Reducer is invoked by Transform at every labeled node, with the values
// already yielded by its children (spec.md §4.4). Transform never invokes
// it for tokens or unlabeled nodes — those are folded structurally instead.
type Reducer[L comparable] func(label L, values []any) (any, error)

// Transform folds a match tree into an application value (spec.md §4.4):
// a token yields its string content; an unlabeled node yields the flat
// list of its children's yields; a labeled node instead yields whatever
// reduce returns for that list. A nil value returned by reduce is treated
// as "contributes nothing" and is omitted from its parent's list, letting
// a reducer elide purely-structural labels.
func Transform[L comparable](m *Match[L], reduce Reducer[L]) (any, error) {
	if m.IsToken() {
		return m.Text(), nil
	}

	values, err := transformChildren(m.Children(), reduce)
	if err != nil {
		return nil, err
	}
	label := m.Label()
	if label == nil {
		return values, nil
	}

	result, err := reduce(*label, values)
	if err != nil {
		return nil, enrichTransformError(err, m)
	}
	return result, nil
}

// transformChild folds a single child, reporting whether its yield is
// itself a list to be spliced (unlabeled node) rather than appended as one
// element (token, or labeled node).
func transformChild[L comparable](m *Match[L], reduce Reducer[L]) (value any, isList bool, err error) {
	if m.IsToken() {
		return m.Text(), false, nil
	}

	values, err := transformChildren(m.Children(), reduce)
	if err != nil {
		return nil, false, err
	}
	label := m.Label()
	if label == nil {
		return values, true, nil
	}

	result, err := reduce(*label, values)
	if err != nil {
		return nil, false, enrichTransformError(err, m)
	}
	return result, false, nil
}

func transformChildren[L comparable](children []*Match[L], reduce Reducer[L]) ([]any, error) {
	var values []any
	for _, c := range children {
		v, isList, err := transformChild(c, reduce)
		if err != nil {
			return nil, err
		}
		if isList {
			values = append(values, v.([]any)...)
		} else if v != nil {
			values = append(values, v)
		}
	}
	return values, nil
}

// enrichTransformError implements the error-enrichment contract of
// spec.md §4.4/§7: a reducer error that's already an *Error is propagated
// as-is, its offset back-filled from m's range if it hasn't pinned one;
// any other error is wrapped as KindCustom, pinned at m's range start.
func enrichTransformError[L comparable](err error, m *Match[L]) error {
	var perr *Error
	if errors.As(err, &perr) {
		if perr.Offset == NoOffset {
			perr.Offset = nodeOffset(m)
		}
		return perr
	}
	return newCustomError(err, nodeOffset(m))
}

func nodeOffset[L comparable](m *Match[L]) int {
	if r := m.Range(); r != nil {
		return r.Start
	}
	return 0
}
