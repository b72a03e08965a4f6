package safe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Float coerces a loosely-typed value into a finite float64.
// It accepts the shapes catalog sources actually emit: JSON numbers
// (float64 or json.Number), Go integers, and numeric strings.
// The boolean is false for nil, non-numeric, NaN, and infinite values.
func Float(value any) (float64, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case float64:
		return v, isFinite(v)
	case float32:
		return float64(v), isFinite(float64(v))
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}

		return parsed, isFinite(parsed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}

		return parsed, isFinite(parsed)
	default:
		return 0, false
	}
}

// ID coerces a record identifier into its canonical string form. Numeric
// identifiers lose any redundant fraction ("7.0" becomes "7"); string
// identifiers are trimmed. The boolean is false when no usable identifier is
// present.
func ID(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		trimmed := strings.TrimSpace(v)

		return trimmed, trimmed != ""
	case json.Number:
		return v.String(), v.String() != ""
	case float64:
		if !isFinite(v) {
			return "", false
		}

		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}

		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	default:
		return fmt.Sprintf("%v", v), true
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
