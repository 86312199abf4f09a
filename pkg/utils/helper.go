package utils

// Or returns the first non-zero value, or the zero value when none is set.
func Or[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
