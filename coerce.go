package recordmap

import (
	"fmt"
	"time"

	"golang.org/x/exp/constraints"
)

// dateLayout is the locale-invariant storage format for date values.
const dateLayout = "2006-01-02"

// sentinelDate replaces a default/uninitialized date on write-back so the
// storage column stays non-null.
const sentinelDate = "1900-01-01"

func inRange[T constraints.Signed](min, value, max T) bool {
	return min <= value && value <= max
}

// intValue reports v as int64 when it holds any integer kind.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	default:
		return 0, false
	}
}

// floatValue reports v as float64 when it holds any numeric kind.
func floatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	default:
		i, ok := intValue(v)
		return float64(i), ok
	}
}

// parseDate applies locale-invariant date parsing. Unparsable strings
// coerce to nil, never to an error.
func parseDate(s string) any {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return nil
}

// typeLabel names a value's dynamic type for coercion error messages.
func typeLabel(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// toInstanceValue converts a stored row value into the attribute type
// declared for the field. Applied whenever a value crosses the
// Row -> Record boundary.
func toInstanceValue(f DescriptorField, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	switch f.Type {
	case TypeString:
		switch s := v.(type) {
		case string:
			return s, nil
		case []byte:
			return string(s), nil
		}

	case TypeInt64:
		if i, ok := intValue(v); ok {
			return i, nil
		}

	case TypeInt32:
		if i, ok := intValue(v); ok {
			if !inRange(int64(-1<<31), i, int64(1<<31-1)) {
				return nil, errCoercion(f.Name, typeLabel(v), f.Type.String())
			}
			return int32(i), nil
		}

	case TypeFloat64:
		if fl, ok := floatValue(v); ok {
			return fl, nil
		}

	case TypeBool:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case TypeDateTime:
		switch d := v.(type) {
		case time.Time:
			return d, nil
		case string:
			return parseDate(d), nil
		}

	case TypeDateTimeOffset:
		switch d := v.(type) {
		case time.Time:
			// native date value wrapped with a zero offset
			return d.In(time.FixedZone("", 0)), nil
		case string:
			parsed := parseDate(d)
			if t, ok := parsed.(time.Time); ok {
				return t.In(time.FixedZone("", 0)), nil
			}
			return nil, nil
		}
	}

	return nil, errCoercion(f.Name, typeLabel(v), f.Type.String())
}

// toRowValue converts a record attribute into its stored representation.
// Date fields are stored as text: a default/uninitialized date becomes the
// sentinel date rather than null.
func toRowValue(f DescriptorField, v any) (any, error) {
	switch f.Type {
	case TypeDateTime, TypeDateTimeOffset:
		if v == nil {
			return sentinelDate, nil
		}
		switch d := v.(type) {
		case time.Time:
			if d.IsZero() {
				return sentinelDate, nil
			}
			return d.Format(dateLayout), nil
		case string:
			if d == "" {
				return sentinelDate, nil
			}
			return d, nil
		}
		return nil, errCoercion(f.Name, typeLabel(v), f.Type.String())
	default:
		if v == nil {
			return nil, nil
		}
		return toInstanceValue(f, v)
	}
}
