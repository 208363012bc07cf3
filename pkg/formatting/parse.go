package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed is returned when content is not valid JSON and no
// parseable JSON code fence could be recovered from it.
var ErrParseFailed = errors.New("failed to parse response")

var fencedJSON = regexp.MustCompile(`(?s)` + "```" + `(?:json)?\s*\n?(.*?)\n?` + "```")

// Parse unmarshals content into T. Models often wrap their JSON output
// in a markdown code fence, so when a direct unmarshal fails the fence
// body is extracted and tried once more before giving up.
func Parse[T any](content string) (T, error) {
	var result T

	content = strings.TrimSpace(content)
	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	if matches := fencedJSON.FindStringSubmatch(content); len(matches) >= 2 {
		body := strings.TrimSpace(matches[1])
		if err := json.Unmarshal([]byte(body), &result); err == nil {
			return result, nil
		}
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}
