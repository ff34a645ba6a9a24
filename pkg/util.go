package pkg

import "iter"

// TypeCast is a function that converts a value of type T to type U.
type TypeCast[T, U any] func(T) U

// Values returns an iterator over the given values, casting each value
// from type T to type U using the TypeCast receiver.
func (c TypeCast[T, U]) Values(v ...T) iter.Seq[U] {
	return func(yield func(U) bool) {
		for _, x := range v {
			if !yield(c(x)) {
				return
			}
		}
	}
}

// Collect returns the given values cast from type T to type U.
// The result is never nil, so an empty input still encodes as an empty list.
func (c TypeCast[T, U]) Collect(v ...T) []U {
	out := make([]U, 0, len(v))
	for x := range c.Values(v...) {
		out = append(out, x)
	}

	return out
}
