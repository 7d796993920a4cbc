package section

import "errors"

var (
	// ErrInvalidFormat indicates a Format that does not yield unique markers.
	ErrInvalidFormat = errors.New("section: invalid marker format")

	// ErrUnknownSection indicates a section name outside of All.
	ErrUnknownSection = errors.New("section: unknown section")
)
