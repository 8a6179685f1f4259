// Package jsonfilter removes denylisted keys from decoded JSON trees.
//
// Trees are plain decoded-JSON values, so maps carry no source key
// order; re-encoding emits keys sorted, which keeps output
// deterministic.
package jsonfilter

// KeySet builds a lookup set from key names.
func KeySet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// Filter returns a copy of v with every key in keys removed, at any
// nesting depth. Maps and slices are rebuilt, scalars are returned
// unchanged. The input is never modified.
func Filter(v interface{}, keys map[string]struct{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		filtered := make(map[string]interface{}, len(value))
		for k, child := range value {
			if _, skip := keys[k]; skip {
				continue
			}
			filtered[k] = Filter(child, keys)
		}
		return filtered
	case []interface{}:
		filtered := make([]interface{}, len(value))
		for i, child := range value {
			filtered[i] = Filter(child, keys)
		}
		return filtered
	default:
		return v
	}
}
