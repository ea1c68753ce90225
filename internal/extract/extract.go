// Package extract locates and parses a single JSON value embedded in
// arbitrary model output. Generative models wrap their answers in prose,
// markdown fences, or stray brackets; this package digs the structured value
// out without ever failing past its boundary.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"
)

// flatObjectPattern grabs one non-nested {...} span. Last-resort only: on
// nested structures it matches an inner object and can return the wrong
// value, so it runs strictly after the bracket scan has failed.
var flatObjectPattern = regexp.MustCompile(`(?s)\{[^{}]*\}`)

// FirstValue scans text for the first embedded JSON object or array and
// parses it. The second return is false when no parsable value exists.
// It never panics and never returns an error: absence is the only failure.
func FirstValue(text string) (json.RawMessage, bool) {
	candidate, ok := firstSpan(text)
	if !ok {
		return nil, false
	}
	if !json.Valid([]byte(candidate)) {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// Object is FirstValue narrowed to JSON objects, decoded into a map.
// Arrays and scalars report absence.
func Object(text string) (map[string]any, bool) {
	raw, ok := FirstValue(text)
	if !ok {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// Into extracts the first embedded JSON value and unmarshals it into dst.
// Returns false on absence or when the value does not fit dst.
func Into(text string, dst any) bool {
	raw, ok := FirstValue(text)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}

// firstSpan returns the candidate JSON substring. It tries an object start
// first, then an array start, walking the text with a bracket stack: push on
// an opener, pop on the matching closer, abort the scan on a mismatched or
// unexpected closer. When the stack empties, the span from the opener
// through that closer is the candidate. If both scans come up empty, a flat
// single-level {...} match is the fallback.
func firstSpan(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for _, open := range []byte{'{', '['} {
		start := strings.IndexByte(text, open)
		if start == -1 {
			continue
		}

		if span, ok := scanBalanced(text, start); ok {
			return span, true
		}
	}

	if m := flatObjectPattern.FindString(text); m != "" {
		return m, true
	}

	return "", false
}

// scanBalanced walks text from start (an opener position) and returns the
// shortest balanced span. A closer that does not match the innermost opener,
// or arrives with an empty stack, aborts the scan.
func scanBalanced(text string, start int) (string, bool) {
	var stack []byte
	for i := start; i < len(text); i++ {
		switch ch := text[i]; ch {
		case '{', '[':
			stack = append(stack, ch)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if (open == '{' && ch != '}') || (open == '[' && ch != ']') {
				return "", false
			}
			if len(stack) == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
