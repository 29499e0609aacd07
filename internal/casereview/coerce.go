package casereview

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Form input arrives as untyped, possibly-missing key/value pairs. These
// helpers are total: whatever the value is, they return something usable and
// never fail, so building a record cannot be derailed by malformed input.

// CoerceInt returns the base-10 integer form of v, or def when v is absent,
// empty, or not parseable.
func CoerceInt(v any, def int) int {
	switch x := v.(type) {
	case nil:
		return def
	case int:
		return x
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float32:
		return int(x)
	case float64:
		// JSON numbers decode as float64.
		return int(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return int(i)
		}
		if f, err := x.Float64(); err == nil {
			return int(f)
		}
		return def
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return def
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

// CoerceText returns the trimmed string form of v, or def when v is absent.
func CoerceText(v any, def string) string {
	switch x := v.(type) {
	case nil:
		return def
	case string:
		return strings.TrimSpace(x)
	case json.Number:
		return x.String()
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", x))
	}
}
