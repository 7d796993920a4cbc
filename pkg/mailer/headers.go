package mailer

import (
	"fmt"
	"regexp"
	"strings"
)

// headerLine matches "Name: value". The name is any run of printable
// characters other than the colon.
var headerLine = regexp.MustCompile(`^([\x21-\x39\x3b-\x7e]+): (.*)$`)

// HeaderParseError reports the line that could not be parsed.
type HeaderParseError struct {
	Line   string
	LineNo int
}

func (e *HeaderParseError) Error() string {
	return fmt.Sprintf("%s: line %d: %q", ErrHeaderParse, e.LineNo, e.Line)
}

// Is makes errors.Is(err, ErrHeaderParse) match.
func (e *HeaderParseError) Is(target error) bool {
	return target == ErrHeaderParse
}

// ParseHeaders parses a block of "Name: value" lines.
// Lines starting with a space or tab continue the previous header and are
// appended to its value as is. Blank lines are skipped.
func ParseHeaders(blob string) (map[string]string, error) {
	headers := make(map[string]string)
	lines := strings.Split(strings.ReplaceAll(blob, "\r\n", "\n"), "\n")

	var last string
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if last == "" {
				return nil, &HeaderParseError{Line: line, LineNo: i + 1}
			}
			headers[last] += line
			continue
		}

		match := headerLine.FindStringSubmatch(line)
		if match == nil {
			return nil, &HeaderParseError{Line: line, LineNo: i + 1}
		}
		last = match[1]
		headers[last] = match[2]
	}

	return headers, nil
}
