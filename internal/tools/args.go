package tools

import (
	"encoding/json"
	"fmt"
	"math"
)

// stringArg extracts a required string argument.
func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string", key)
	}
	return s, nil
}

// intArg extracts an optional integer argument. JSON decoding hands numbers
// over as float64 (or json.Number when configured), so all numeric shapes
// are accepted, but a fractional value is rejected rather than truncated.
// The second return reports whether the argument was present, so an
// explicit zero stays distinguishable from an absent one.
func intArg(args map[string]any, key string) (int, bool, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return n, true, nil
	case int64:
		return int(n), true, nil
	case float64:
		if n != math.Trunc(n) {
			return 0, false, fmt.Errorf("argument %q must be an integer", key)
		}
		return int(n), true, nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false, fmt.Errorf("argument %q must be an integer", key)
		}
		return int(i), true, nil
	default:
		return 0, false, fmt.Errorf("argument %q must be an integer", key)
	}
}
