// ABOUTME: Type-aware parsing and equality for loosely-typed config values
// ABOUTME: The transport may deliver numbers and booleans as strings

package settings

import (
	"fmt"

	"github.com/spf13/cast"
)

// Value type tags carried on every config item.
const (
	TypeNumber  = "number"
	TypeString  = "string"
	TypeBoolean = "boolean"
)

// parseValue coerces a raw edit according to the declared value type.
// Numbers: the empty string coerces to 0, anything else must parse
// numerically. Booleans: only true or the literal "true" yield true.
// Strings pass through unchanged.
func parseValue(valueType string, raw any) (any, error) {
	switch valueType {
	case TypeNumber:
		if s, ok := raw.(string); ok && s == "" {
			return float64(0), nil
		}
		n, err := cast.ToFloat64E(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid number %v: %w", raw, err)
		}
		return n, nil
	case TypeBoolean:
		return truthy(raw), nil
	case TypeString:
		return cast.ToString(raw), nil
	default:
		return nil, fmt.Errorf("unknown value type %q", valueType)
	}
}

// Equal compares two raw values under type-aware equality: booleans by
// normalized truthiness, numbers by numeric value regardless of string or
// number representation, strings by exact value. Raw deep equality is
// deliberately never used here.
func Equal(valueType string, a, b any) bool {
	switch valueType {
	case TypeNumber:
		return toNumber(a) == toNumber(b)
	case TypeBoolean:
		return truthy(a) == truthy(b)
	default:
		return cast.ToString(a) == cast.ToString(b)
	}
}

// truthy normalizes a loosely-typed boolean: only the boolean true and the
// literal string "true" count as true.
func truthy(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return cast.ToString(v) == "true"
}

// toNumber normalizes a loosely-typed number; unparseable values and the
// empty string both normalize to 0.
func toNumber(v any) float64 {
	if s, ok := v.(string); ok && s == "" {
		return 0
	}
	return cast.ToFloat64(v)
}
