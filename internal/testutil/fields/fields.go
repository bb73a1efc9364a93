//go:build unit || integration

package fields

// Field sets key on a request map; a nil value removes the key.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// Apply copies base and runs every mutation over the copy.
func Apply(base map[string]any, mutate ...func(m map[string]any)) map[string]any {
	out := make(map[string]any, len(base))
	for k, v := range base {
		out[k] = v
	}
	for _, fn := range mutate {
		fn(out)
	}
	return out
}
