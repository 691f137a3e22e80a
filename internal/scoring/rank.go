package scoring

import "slices"

// Entry pairs a ranked item with its score.
type Entry[T any] struct {
	Item   T
	Result Result
}

// Rank orders entries by total score, highest first. Ties keep their input order.
func Rank[T any](entries []Entry[T]) []Entry[T] {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b Entry[T]) int {
		switch {
		case a.Result.Total > b.Result.Total:
			return -1
		case a.Result.Total < b.Result.Total:
			return 1
		default:
			return 0
		}
	})
	return ranked
}
