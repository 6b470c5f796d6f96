package exec

import "github.com/luigirelational/pagedb/internal/table"

// Eq returns a Predicate matching tuples whose u32 value at the 1-indexed
// ordinal position pos equals want. Only the u32 payload is compared; the
// value's kind is not checked.
func Eq(pos int, want uint32) Predicate {
	return func(tup table.Tuple) bool {
		return tup.Values[pos-1].U32 == want
	}
}

// Lt returns a Predicate matching tuples whose u32 value at pos is strictly
// less than want.
func Lt(pos int, want uint32) Predicate {
	return func(tup table.Tuple) bool {
		return tup.Values[pos-1].U32 < want
	}
}

// Gte returns a Predicate matching tuples whose u32 value at pos is greater
// than or equal to want.
func Gte(pos int, want uint32) Predicate {
	return func(tup table.Tuple) bool {
		return tup.Values[pos-1].U32 >= want
	}
}

// And composes predicates, short-circuiting on the first that rejects.
func And(preds ...Predicate) Predicate {
	return func(tup table.Tuple) bool {
		for _, p := range preds {
			if !p(tup) {
				return false
			}
		}
		return true
	}
}
