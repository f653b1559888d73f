package generation

import (
	"encoding/json"
	"strings"
)

// ExtractJSONArray returns the first balanced JSON array embedded in text that
// is valid JSON. Model replies often wrap the payload in prose or markdown
// fences; everything outside the brackets is ignored.
func ExtractJSONArray(text string) (json.RawMessage, bool) {
	return extractBalanced(text, '[', ']')
}

// ExtractJSONObject returns the first balanced JSON object embedded in text
// that is valid JSON.
func ExtractJSONObject(text string) (json.RawMessage, bool) {
	return extractBalanced(text, '{', '}')
}

func extractBalanced(text string, open, closing byte) (json.RawMessage, bool) {
	for start := strings.IndexByte(text, open); start >= 0; {
		if end := matchBracket(text, start, open, closing); end > 0 {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), true
			}
		}

		next := strings.IndexByte(text[start+1:], open)
		if next < 0 {
			break
		}
		start += next + 1
	}
	return nil, false
}

// matchBracket returns the index of the bracket closing the one at start, or
// -1. Brackets inside JSON string literals are skipped.
func matchBracket(text string, start int, open, closing byte) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
