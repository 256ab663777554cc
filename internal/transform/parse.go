package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnparseable is returned when a response holds no decodable JSON object.
var ErrUnparseable = errors.New("response contains no JSON object")

// objectPattern is greedy: first '{' through last '}'.
var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// decodeObject recovers a JSON object from generated text. The whole
// trimmed text is tried first, then the outermost brace span.
func decodeObject[T any](text string) (T, error) {
	var zero T
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return zero, fmt.Errorf("%w: empty response", ErrUnparseable)
	}

	if strings.HasPrefix(trimmed, "{") {
		var v T
		if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
			return v, nil
		}
	} else if json.Valid([]byte(trimmed)) {
		// Valid JSON of the wrong shape (null, array, string) is not dug into.
		return zero, fmt.Errorf("%w: response is JSON but not an object", ErrUnparseable)
	}

	match := objectPattern.FindString(trimmed)
	if match == "" {
		return zero, ErrUnparseable
	}
	var v T
	if err := json.Unmarshal([]byte(match), &v); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return v, nil
}
