package section

import (
	"fmt"
	"strings"
	"sync"
)

// Format configures how markers are written into templates.
// Embed it in your app config for env parsing with caarlos0/env.
type Format struct {
	// Tag produces the literal marker text from {bound} and {block}.
	Tag string `env:"MAIL_TEMPLATED_TAG_FORMAT" envDefault:"###{bound}_{block}###" json:"tag"`
	// TagVar produces the context variable name from {BOUND} and {BLOCK}.
	TagVar string `env:"MAIL_TEMPLATED_TAG_VAR_FORMAT" envDefault:"TAG_{BOUND}_{BLOCK}" json:"tag_var"`
}

// DefaultFormat is the format used until SetDefault is called.
var DefaultFormat = Format{
	Tag:    "###{bound}_{block}###",
	TagVar: "TAG_{BOUND}_{BLOCK}",
}

// token renders the literal marker text.
func (f Format) token(bound Bound, name Name) string {
	return strings.NewReplacer(
		"{bound}", string(bound),
		"{block}", string(name),
	).Replace(f.Tag)
}

// variable renders the context variable name.
func (f Format) variable(bound Bound, name Name) string {
	return strings.NewReplacer(
		"{BOUND}", strings.ToUpper(string(bound)),
		"{BLOCK}", strings.ToUpper(string(name)),
	).Replace(f.TagVar)
}

// Validate checks that every section and bound gets its own token
// and its own variable name.
func (f Format) Validate() error {
	if f.Tag == "" || f.TagVar == "" {
		return fmt.Errorf("%w: tag and tag variable formats are required", ErrInvalidFormat)
	}

	tokens := make(map[string]struct{}, len(All)*2)
	vars := make(map[string]struct{}, len(All)*2)
	for _, name := range All {
		for _, bound := range []Bound{Start, End} {
			tok := f.token(bound, name)
			if _, dup := tokens[tok]; dup {
				return fmt.Errorf("%w: tag %q is not unique, use {bound} and {block}", ErrInvalidFormat, f.Tag)
			}
			tokens[tok] = struct{}{}

			v := f.variable(bound, name)
			if _, dup := vars[v]; dup {
				return fmt.Errorf("%w: tag variable %q is not unique, use {BOUND} and {BLOCK}", ErrInvalidFormat, f.TagVar)
			}
			vars[v] = struct{}{}
		}
	}
	return nil
}

var (
	defaultMu     sync.RWMutex
	defaultFormat = DefaultFormat
)

// Default returns the process-wide format.
func Default() Format {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultFormat
}

// SetDefault replaces the process-wide format.
// Messages that were already configured with an explicit format keep it.
func SetDefault(f Format) error {
	if err := f.Validate(); err != nil {
		return err
	}
	defaultMu.Lock()
	defaultFormat = f
	defaultMu.Unlock()
	return nil
}
