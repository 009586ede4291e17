// ABOUTME: Best-effort scanner for top-level fields of a JSON object
// ABOUTME: Salvages method/id/params from partial reads without a full parse

package rawjson

import "strings"

// Fields walks the top level of a JSON object and returns a map from key to
// value text. String values are unescaped; object and array values are
// returned as their raw depth-matched substrings; numbers, booleans, and
// null are returned as trimmed substrings.
//
// The scanner is deliberately lenient: malformed trailing content stops the
// walk and whatever keys were read so far are returned. It never fails.
// Unicode escapes are not decoded and escape handling is limited to a single
// backslash-escaped character.
func Fields(s string) map[string]string {
	fields := make(map[string]string)

	i := skipSpace(s, 0)
	if i >= len(s) || s[i] != '{' {
		return fields
	}
	i++

	for i < len(s) {
		i = skipSpace(s, i)
		if i >= len(s) {
			return fields
		}
		if s[i] == '}' {
			return fields
		}
		if s[i] == ',' {
			i++
			continue
		}
		if s[i] != '"' {
			// Lost sync with the object structure; give up with what we have.
			return fields
		}

		key, next, ok := readString(s, i)
		if !ok {
			return fields
		}
		i = skipSpace(s, next)
		if i >= len(s) || s[i] != ':' {
			return fields
		}
		i = skipSpace(s, i+1)
		if i >= len(s) {
			return fields
		}

		var value string
		switch s[i] {
		case '"':
			value, next, ok = readString(s, i)
			if !ok {
				return fields
			}
		case '{', '[':
			value, next, ok = readBalanced(s, i)
			if !ok {
				return fields
			}
		default:
			value, next = readScalar(s, i)
		}

		fields[key] = value
		i = next
	}

	return fields
}

// Extract returns the raw value substring for a single top-level key,
// preserving nested structure byte for byte. It is used for the params
// field, which is always an object. Returns "{}" when the key is absent or
// the value is malformed.
func Extract(msg, key string) string {
	needle := `"` + key + `"`
	at := strings.Index(msg, needle)
	if at < 0 {
		return "{}"
	}

	i := at + len(needle)
	i = skipSpace(msg, i)
	if i >= len(msg) || msg[i] != ':' {
		return "{}"
	}
	i = skipSpace(msg, i+1)
	if i >= len(msg) {
		return "{}"
	}

	switch msg[i] {
	case '{', '[':
		raw, _, ok := readBalanced(msg, i)
		if !ok {
			return "{}"
		}
		return raw
	case '"':
		end, ok := stringEnd(msg, i)
		if !ok {
			return "{}"
		}
		return msg[i:end]
	default:
		raw, _ := readScalar(msg, i)
		if raw == "" {
			return "{}"
		}
		return raw
	}
}

func skipSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

// readString reads a quoted string starting at s[i] == '"' and returns its
// unescaped content and the index just past the closing quote.
func readString(s string, i int) (string, int, bool) {
	end, ok := stringEnd(s, i)
	if !ok {
		return "", i, false
	}

	body := s[i+1 : end-1]
	if !strings.ContainsRune(body, '\\') {
		return body, end, true
	}

	var b strings.Builder
	for j := 0; j < len(body); j++ {
		if body[j] == '\\' && j+1 < len(body) {
			j++
		}
		b.WriteByte(body[j])
	}
	return b.String(), end, true
}

// stringEnd returns the index just past the closing quote of the string
// starting at s[i] == '"'.
func stringEnd(s string, i int) (int, bool) {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case '"':
			return j + 1, true
		}
	}
	return 0, false
}

// readBalanced reads a brace/bracket-depth-matched substring starting at
// s[i] == '{' or '['. Quoted strings inside the value are skipped so that
// braces in string content do not affect depth.
func readBalanced(s string, i int) (string, int, bool) {
	depth := 0
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[i : j+1], j + 1, true
			}
		case '"':
			end, ok := stringEnd(s, j)
			if !ok {
				return "", i, false
			}
			j = end - 1
		}
	}
	return "", i, false
}

// readScalar reads a number, boolean, or null up to the next top-level
// comma or closing brace.
func readScalar(s string, i int) (string, int) {
	j := i
	for j < len(s) && s[j] != ',' && s[j] != '}' && s[j] != ']' {
		j++
	}
	return strings.TrimSpace(s[i:j]), j
}
