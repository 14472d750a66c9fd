package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// TimestampLayout is how date/time column values are rendered.
const TimestampLayout = "2006-01-02 15:04:05"

// ToInt converts various types to int using explicit type switching.
// Unparseable values yield 0; use ParseInt to tell them apart.
func ToInt(val any) int {
	i, _ := ParseInt(val)
	return i
}

// ParseInt converts integers, whole floats, json.Number, strings and byte slices
// to int. The boolean is false when val holds no integral value.
func ParseInt(val any) (int, bool) {
	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case int16:
		return int(v), true
	case int8:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case uint16:
		return int(v), true
	case uint8:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case float32:
		return ParseInt(float64(v))
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i), true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return ParseInt(f)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		return i, err == nil
	case []byte:
		return ParseInt(string(v))
	default:
		return 0, false
	}
}

// ToString converts various types to string.
// Byte slices are taken as text, times use TimestampLayout and floats use the
// shortest representation that round-trips.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(TimestampLayout)
	case *time.Time:
		if v == nil {
			return ""
		}
		return v.Format(TimestampLayout)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
