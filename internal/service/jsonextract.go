package service

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoJSONObject is returned when a model response holds no balanced JSON object.
var ErrNoJSONObject = errors.New("service: no JSON object in model output")

var fencedBlock = regexp.MustCompile("(?s)```(?:json|JSON)?[ \t]*\r?\n?(.*?)```")

type scanState int

const (
	scanning scanState = iota
	inString
	escaped
)

// ExtractJSONObject returns the first balanced JSON object in text. The body of a
// fenced code block wins over anything outside it.
func ExtractJSONObject(text string) (string, error) {
	if m := fencedBlock.FindStringSubmatch(text); m != nil {
		if obj, ok := scanObject(m[1]); ok {
			return obj, nil
		}
	}
	if obj, ok := scanObject(text); ok {
		return obj, nil
	}
	return "", ErrNoJSONObject
}

// scanObject finds the first '{' and walks forward tracking brace depth. Braces
// inside string literals do not count.
func scanObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	state := scanning
	for i := start; i < len(text); i++ {
		ch := text[i]
		switch state {
		case escaped:
			state = inString
		case inString:
			switch ch {
			case '\\':
				state = escaped
			case '"':
				state = scanning
			}
		case scanning:
			switch ch {
			case '"':
				state = inString
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		}
	}
	return "", false
}
