package section

import "strings"

// Name identifies one logical part of an email message.
type Name string

// Recognized sections.
const (
	Subject      Name = "subject"
	Body         Name = "body"
	HTML         Name = "html"
	From         Name = "from_email"
	ExtraHeaders Name = "extra_headers"
)

// All lists every recognized section in extraction order.
var All = []Name{Subject, Body, HTML, From, ExtraHeaders}

// Valid reports whether n is one of the recognized sections.
func (n Name) Valid() bool {
	switch n {
	case Subject, Body, HTML, From, ExtraHeaders:
		return true
	}
	return false
}

func (n Name) String() string {
	return string(n)
}

// Bound is the side of a section a marker delimits.
type Bound string

const (
	Start Bound = "start"
	End   Bound = "end"
)

// Marker holds the literal tokens and the context variable names
// for one section.
type Marker struct {
	Start    string // literal start token
	End      string // literal end token
	StartVar string // context variable holding Start
	EndVar   string // context variable holding End
}

// Extract returns the text between the first occurrence of m.Start and the
// first occurrence of m.End, trimmed of leading and trailing CR/LF.
// The second result is false when either marker is missing.
//
// Marker order is not validated: when End occurs before Start the result
// is empty.
func Extract(content string, m Marker) (string, bool) {
	start := strings.Index(content, m.Start)
	end := strings.Index(content, m.End)
	if start == -1 || end == -1 {
		return "", false
	}
	from := start + len(m.Start)
	if end < from {
		return "", true
	}
	return strings.Trim(content[from:end], "\r\n"), true
}
