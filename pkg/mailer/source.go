package mailer

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// frontmatterDelimiter opens and closes the YAML block at the top of a template.
var frontmatterDelimiter = []byte("---")

// Source is a template file split into frontmatter metadata and template text.
type Source struct {
	Metadata map[string]any
	Body     string
}

// ParseSource splits template file content into frontmatter metadata and body.
// Content without a leading "---" line has no metadata.
func ParseSource(content []byte) (*Source, error) {
	if !bytes.HasPrefix(content, frontmatterDelimiter) {
		return &Source{
			Metadata: make(map[string]any),
			Body:     string(content),
		}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(content, frontmatterDelimiter), "\n\r")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	end := bytes.Index(rest, frontmatterDelimiter)
	if end == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	meta := rest[:end]
	body := rest[end+len(frontmatterDelimiter):]
	// One line break after the closing delimiter belongs to it.
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}

	metadata := make(map[string]any)
	if len(bytes.TrimSpace(meta)) > 0 {
		if err := yaml.Unmarshal(meta, &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Source{
		Metadata: metadata,
		Body:     string(body),
	}, nil
}

// lookup finds a metadata key case-insensitively,
// so both "subject" and "Subject" work.
func (s *Source) lookup(key string) (any, bool) {
	if v, ok := s.Metadata[key]; ok {
		return v, true
	}
	for k, v := range s.Metadata {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// String returns a string metadata value.
func (s *Source) String(key string) (string, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return "", nil
	}
	str, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidFrontmatter, key, v)
	}
	return str, nil
}

// Headers returns the extra_headers metadata as a header block.
// Both a literal block and a YAML mapping are accepted.
func (s *Source) Headers(key string) (string, error) {
	v, ok := s.lookup(key)
	if !ok || v == nil {
		return "", nil
	}

	switch val := v.(type) {
	case string:
		return val, nil
	case map[string]any:
		names := make([]string, 0, len(val))
		for name := range val {
			names = append(names, name)
		}
		sort.Strings(names)

		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "%s: %v\n", name, val[name])
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("%w: %s must be a string or a mapping, got %T", ErrInvalidFrontmatter, key, v)
	}
}
