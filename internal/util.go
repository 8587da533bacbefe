package internal

// Abs returns the absolute value of v.
func Abs[T ~int | ~int32 | ~int64](v T) T {
	if v < 0 {
		return -v
	}
	return v
}
