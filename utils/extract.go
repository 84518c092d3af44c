package utils

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// Extract walks path through nested JSON-like maps and slices and returns
// the terminal value rendered as a string. Path steps are string keys (for
// map[string]any) or int indices (for []any). The moment any step is
// absent, wrong-shaped, or the terminal value is empty, the fallback is
// returned. Absence is a normal outcome, never an error.
func Extract(source any, path []any, fallback string) string {
	value, ok := Lookup(source, path)
	if !ok {
		return fallback
	}
	return stringify(value, fallback)
}

// ExtractJoined renders a terminal list (or map, joined over its values in
// key order) as entries separated by ", ". An empty collection falls back.
func ExtractJoined(source any, path []any, fallback string) string {
	value, ok := Lookup(source, path)
	if !ok {
		return fallback
	}

	var entries []string
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if s := stringify(item, ""); s != "" {
				entries = append(entries, s)
			}
		}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s := stringify(v[k], ""); s != "" {
				entries = append(entries, s)
			}
		}
	default:
		return fallback
	}

	if len(entries) == 0 {
		return fallback
	}

	joined := ""
	for i, e := range entries {
		if i > 0 {
			joined += ", "
		}
		joined += e
	}
	return joined
}

// ExtractDecimal renders a terminal numeric value (JSON number or numeric
// string) rounded to the given number of decimal places.
func ExtractDecimal(source any, path []any, places int32, fallback string) string {
	value, ok := Lookup(source, path)
	if !ok {
		return fallback
	}

	var d decimal.Decimal
	switch v := value.(type) {
	case float64:
		d = decimal.NewFromFloat(v)
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return fallback
		}
		d = parsed
	default:
		return fallback
	}

	return d.StringFixed(places)
}

// ExtractYesNo renders a terminal boolean as "Yes." or "No.".
func ExtractYesNo(source any, path []any, fallback string) string {
	value, ok := Lookup(source, path)
	if !ok {
		return fallback
	}
	b, isBool := value.(bool)
	if !isBool {
		return fallback
	}
	if b {
		return "Yes."
	}
	return "No."
}

// ExtractMapValue renders one value of a terminal map, chosen by smallest
// key for determinism. Used for sources that key a single datum by a
// varying label, like a GINI index keyed by survey year.
func ExtractMapValue(source any, path []any, fallback string) string {
	value, ok := Lookup(source, path)
	if !ok {
		return fallback
	}
	m, isMap := value.(map[string]any)
	if !isMap || len(m) == 0 {
		return fallback
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return stringify(m[keys[0]], fallback)
}

// Lookup walks path through nested maps and slices and returns the raw
// terminal value. The boolean is false when any step is absent or
// wrong-shaped, or the terminal is null.
func Lookup(source any, path []any) (any, bool) {
	current := source
	for _, step := range path {
		switch s := step.(type) {
		case string:
			m, ok := current.(map[string]any)
			if !ok {
				return nil, false
			}
			next, ok := m[s]
			if !ok {
				return nil, false
			}
			current = next
		case int:
			list, ok := current.([]any)
			if !ok || s < 0 || s >= len(list) {
				return nil, false
			}
			current = list[s]
		default:
			return nil, false
		}
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

func stringify(value any, fallback string) string {
	switch v := value.(type) {
	case string:
		if v == "" {
			return fallback
		}
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		// maps and slices are not renderable as a single value
		return fallback
	}
}
