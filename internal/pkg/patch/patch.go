// Package patch applies partial updates where a nil pointer means "leave unchanged".
package patch

func Coalesce[T any](ptr *T, current T) T {
	if ptr != nil {
		return *ptr
	}
	return current
}

// Differs reports whether ptr is set to something other than current.
func Differs[T any](ptr *T, current T, equal func(a, b T) bool) bool {
	return ptr != nil && !equal(*ptr, current)
}
