package fund

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// String coerces a decoded JSON value to a trimmed string.
// nil becomes "", numbers use their shortest decimal form, arrays are comma-joined.
func String(v any) string {
	return strings.TrimSpace(stringify(v))
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatNumber(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = stringify(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return ""
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21:
		return strconv.FormatFloat(f, 'g', -1, 64)
	default:
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
}

// Tags parses a tag list from either a JSON array or a comma-delimited string.
// Entries are trimmed and empty entries dropped; any other shape yields an empty list.
func Tags(v any) []string {
	out := []string{}
	switch x := v.(type) {
	case []string:
		for _, s := range x {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, e := range x {
			if s := String(e); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(x, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Number coerces a decoded JSON value to a float64.
// nil is 0, booleans are 0 or 1, strings follow ParseNumber.
// Unconvertible values yield NaN; callers decide whether that is fatal.
func Number(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return ParseNumber(x)
	case []any:
		switch len(x) {
		case 0:
			return 0
		case 1:
			return Number(stringify(x[0]))
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// FiniteOr returns v when it is finite, otherwise def.
func FiniteOr(v, def float64) float64 {
	if IsFinite(v) {
		return v
	}
	return def
}

var decimalRe = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ParseNumber parses a numeric string the way form inputs are read:
// surrounding whitespace is ignored, "" is 0, Infinity and 0x/0o/0b literals
// are accepted, and anything else that is not a decimal literal is NaN.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}

	if !decimalRe.MatchString(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// ErrRange still carries ±Inf or 0.
		if errors.Is(err, strconv.ErrRange) {
			return f
		}
		return math.NaN()
	}
	return f
}
