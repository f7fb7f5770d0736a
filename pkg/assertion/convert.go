package assertion

// toFloat64 converts common numeric types to float64.
func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// toInt converts common numeric types to int.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}

// collectionLen returns the length of slice and map shapes the
// engine understands.
func collectionLen(value any) (int, bool) {
	switch v := value.(type) {
	case []any:
		return len(v), true
	case []string:
		return len(v), true
	case map[string]any:
		return len(v), true
	case map[string]float64:
		return len(v), true
	case string:
		return len(v), true
	}
	return 0, false
}

// mapKeys normalizes supported map shapes to a key set.
func mapKeys(value any) (map[string]struct{}, bool) {
	switch v := value.(type) {
	case map[string]any:
		keys := make(map[string]struct{}, len(v))
		for k := range v {
			keys[k] = struct{}{}
		}
		return keys, true
	case map[string]float64:
		keys := make(map[string]struct{}, len(v))
		for k := range v {
			keys[k] = struct{}{}
		}
		return keys, true
	}
	return nil, false
}

// stringSlice normalizes supported collection shapes to a
// string slice.
func stringSlice(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
