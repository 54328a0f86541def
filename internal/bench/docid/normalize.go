// Package docid canonicalizes document identifiers returned by different
// backends so that they can be compared with ground truth.
//
// Backends disagree on identifier shape: full bucket URIs, bare file names in
// any casing, integer chunk keys, UUIDs. Every function in this package is
// total: whatever the input, a string comes out and nothing panics.
package docid

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Normalize converts a raw identifier into its comparable form.
//
// The value is coerced to a string, lower-cased, stripped of URI query and
// fragment, reduced to its last path component, and stripped of trailing
// file extensions and surrounding whitespace. Normalize is idempotent.
func Normalize(raw any) string {
	s := strings.ToLower(coerce(raw))

	if strings.Contains(s, "://") {
		if i := strings.IndexAny(s, "?#"); i >= 0 {
			s = s[:i]
		}
	}

	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}

	for {
		s = strings.TrimSpace(s)
		stem, ok := stripExtension(s)
		if !ok {
			break
		}
		s = stem
	}

	return s
}

// stripExtension removes one trailing ".ext" where ext is made of ASCII word
// characters and the stem before the dot is not empty.
func stripExtension(s string) (string, bool) {
	dot := strings.LastIndexByte(s, '.')
	if dot <= 0 || dot == len(s)-1 {
		return s, false
	}
	for i := dot + 1; i < len(s); i++ {
		if !isWordByte(s[i]) {
			return s, false
		}
	}
	return s[:dot], true
}

func isWordByte(b byte) bool {
	return b == '_' ||
		('0' <= b && b <= '9') ||
		('a' <= b && b <= 'z') ||
		('A' <= b && b <= 'Z')
}

// coerce renders any identifier shape as a string. A panicking String method
// yields the empty string, which never matches anything.
func coerce(raw any) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()

	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return formatFloat(float64(v), 32)
	case float64:
		// JSON decoding turns integer keys into float64; 42.0 must read "42".
		return formatFloat(v, 64)
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return formatFloat(f, 64)
		}
		return v.String()
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// formatFloat writes the shortest decimal form. The decimal point of a
// fractional value becomes '_' so the extension rule cannot cut 3.5 down to 3.
func formatFloat(f float64, bits int) string {
	return strings.Replace(strconv.FormatFloat(f, 'f', -1, bits), ".", "_", 1)
}
