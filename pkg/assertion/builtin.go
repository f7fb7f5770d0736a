package assertion

import (
	"fmt"
	"reflect"
	"strings"
)

// evaluateEquals checks exact equality. Numeric values are
// compared as float64 so JSON numbers and Go ints interoperate.
func evaluateEquals(assertion Definition, value any) (bool, string) {
	if af, aok := toFloat64(value); aok {
		if ef, eok := toFloat64(assertion.Value); eok {
			if af == ef {
				return true, fmt.Sprintf("equals %v", assertion.Value)
			}
			return false, fmt.Sprintf(
				"expected %v, got %v", assertion.Value, value,
			)
		}
	}
	if reflect.DeepEqual(value, assertion.Value) {
		return true, fmt.Sprintf("equals %v", assertion.Value)
	}
	return false, fmt.Sprintf(
		"expected %v, got %v", assertion.Value, value,
	)
}

// evaluateNotEmpty checks that a value is non-nil and non-empty.
func evaluateNotEmpty(_ Definition, value any) (bool, string) {
	if value == nil {
		return false, "value is nil"
	}
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return false, "string is empty"
		}
	case []any:
		if len(v) == 0 {
			return false, "array is empty"
		}
	case []string:
		if len(v) == 0 {
			return false, "array is empty"
		}
	case map[string]any:
		if len(v) == 0 {
			return false, "map is empty"
		}
	case map[string]float64:
		if len(v) == 0 {
			return false, "map is empty"
		}
	}
	return true, "value is not empty"
}

// evaluateOneOf checks that a string value is a member of the
// expected set.
func evaluateOneOf(assertion Definition, value any) (bool, string) {
	str, ok := value.(string)
	if !ok {
		return false, "value is not a string"
	}
	for _, candidate := range assertion.Values {
		if s, ok := candidate.(string); ok && s == str {
			return true, fmt.Sprintf("%q is in the expected set", str)
		}
	}
	return false, fmt.Sprintf(
		"%q is not one of %v", str, assertion.Values,
	)
}

// evaluatePositive checks that a numeric value is greater than
// zero.
func evaluatePositive(_ Definition, value any) (bool, string) {
	n, ok := toFloat64(value)
	if !ok {
		return false, "value is not a number"
	}
	if n > 0 {
		return true, fmt.Sprintf("%v > 0", value)
	}
	return false, fmt.Sprintf("%v is not positive", value)
}

// evaluateMinValue checks that a numeric value meets a minimum.
func evaluateMinValue(assertion Definition, value any) (bool, string) {
	n, ok := toFloat64(value)
	if !ok {
		return false, "value is not a number"
	}
	minimum, ok := toFloat64(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}
	if n >= minimum {
		return true, fmt.Sprintf("%v >= %v", value, assertion.Value)
	}
	return false, fmt.Sprintf("%v < %v", value, assertion.Value)
}

// evaluateExactCount checks that a collection has exactly the
// expected number of elements.
func evaluateExactCount(assertion Definition, value any) (bool, string) {
	n, ok := collectionLen(value)
	if !ok {
		return false, "value is not a collection"
	}
	expected, ok := toInt(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}
	if n == expected {
		return true, fmt.Sprintf("count is %d", n)
	}
	return false, fmt.Sprintf("expected %d entries, got %d", expected, n)
}

// evaluateMinCount checks that a collection has at least the
// expected number of elements.
func evaluateMinCount(assertion Definition, value any) (bool, string) {
	n, ok := collectionLen(value)
	if !ok {
		return false, "value is not a collection"
	}
	expected, ok := toInt(assertion.Value)
	if !ok {
		return false, "expected value is not a number"
	}
	if n >= expected {
		return true, fmt.Sprintf("count %d >= %d", n, expected)
	}
	return false, fmt.Sprintf("count %d < %d", n, expected)
}

// evaluateHasKeys checks that a map contains every expected key.
// Used for category-score completeness.
func evaluateHasKeys(assertion Definition, value any) (bool, string) {
	keys, ok := mapKeys(value)
	if !ok {
		return false, "value is not a map"
	}
	var missing []string
	for _, expected := range assertion.Values {
		s, ok := expected.(string)
		if !ok {
			continue
		}
		if _, present := keys[s]; !present {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return false, fmt.Sprintf(
			"missing keys: %s", strings.Join(missing, ", "),
		)
	}
	return true, "all expected keys present"
}

// evaluateURLPrefix checks that a string value starts with the
// expected URL prefix.
func evaluateURLPrefix(assertion Definition, value any) (bool, string) {
	str, ok := value.(string)
	if !ok {
		return false, "value is not a string"
	}
	prefix, ok := assertion.Value.(string)
	if !ok {
		return false, "expected value is not a string"
	}
	if strings.HasPrefix(str, prefix) {
		return true, fmt.Sprintf("URL has prefix %s", prefix)
	}
	return false, fmt.Sprintf(
		"%q does not start with %q", str, prefix,
	)
}

// evaluateNoDuplicates checks that a collection of strings has
// no repeated entries.
func evaluateNoDuplicates(_ Definition, value any) (bool, string) {
	items, ok := stringSlice(value)
	if !ok {
		return false, "value is not a string collection"
	}
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item]; dup {
			return false, fmt.Sprintf("duplicate entry: %q", item)
		}
		seen[item] = struct{}{}
	}
	return true, "no duplicate entries"
}

// evaluateCoversAll checks that every expected value appears in
// the actual string collection. Used for career-set and
// category coverage.
func evaluateCoversAll(assertion Definition, value any) (bool, string) {
	items, ok := stringSlice(value)
	if !ok {
		return false, "value is not a string collection"
	}
	present := make(map[string]struct{}, len(items))
	for _, item := range items {
		present[item] = struct{}{}
	}
	var missing []string
	for _, expected := range assertion.Values {
		s, ok := expected.(string)
		if !ok {
			continue
		}
		if _, found := present[s]; !found {
			missing = append(missing, s)
		}
	}
	if len(missing) > 0 {
		return false, fmt.Sprintf(
			"missing entries: %s", strings.Join(missing, ", "),
		)
	}
	return true, "all expected entries present"
}

// evaluateContains checks that a string collection contains the
// expected entry. Used for badge membership.
func evaluateContains(assertion Definition, value any) (bool, string) {
	items, ok := stringSlice(value)
	if !ok {
		return false, "value is not a string collection"
	}
	expected, ok := assertion.Value.(string)
	if !ok {
		return false, "expected value is not a string"
	}
	for _, item := range items {
		if item == expected {
			return true, fmt.Sprintf("contains %q", expected)
		}
	}
	return false, fmt.Sprintf("does not contain %q", expected)
}
