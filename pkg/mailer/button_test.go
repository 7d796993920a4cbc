package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
)

func convertButton(t *testing.T, class, style, src string) string {
	t.Helper()

	md := goldmark.New(goldmark.WithExtensions(NewButtonExtension(class, style)))

	var buf bytes.Buffer
	require.NoError(t, md.Convert([]byte(src), &buf))
	return buf.String()
}

func TestButtonExtension_RendersButton(t *testing.T) {
	t.Parallel()

	out := convertButton(t, "btn", "", `[!button|Confirm](https://example.com/confirm)`)
	require.Contains(t, out, `<a href="https://example.com/confirm" class="btn">Confirm</a>`)
}

func TestButtonExtension_InlineStyle(t *testing.T) {
	t.Parallel()

	out := convertButton(t, "", "background:#000;color:#fff", `[!button|Go](https://example.com)`)
	require.Contains(t, out, `<a href="https://example.com" style="background:#000;color:#fff">Go</a>`)
	require.NotContains(t, out, "class=")
}

func TestButtonExtension_EscapesHTML(t *testing.T) {
	t.Parallel()

	out := convertButton(t, "btn", "", `[!button|<script>x</script>](https://example.com/?a=1&b=2)`)
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;script&gt;")
	require.Contains(t, out, `href="https://example.com/?a=1&amp;b=2"`)
}

func TestButtonExtension_InsideDocument(t *testing.T) {
	t.Parallel()

	out := convertButton(t, "btn", "", `# Your order shipped

Track it here:

[!button|Track order](https://example.com/track) and [a link](https://example.com/help).`)

	require.Contains(t, out, "<h1>Your order shipped</h1>")
	require.Contains(t, out, `<a href="https://example.com/track" class="btn">Track order</a>`)
	require.Contains(t, out, `<a href="https://example.com/help">a link</a>`)
}

func TestButtonExtension_IgnoresIncompleteSyntax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"no url", `[!button|Label]`},
		{"unclosed url", `[!button|Label](https://example.com`},
		{"space before url", `[!button|Label] (https://example.com)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := convertButton(t, "btn", "", tt.src)
			require.NotContains(t, out, `class="btn"`)
		})
	}
}

func TestButtonNode(t *testing.T) {
	t.Parallel()

	node := &ButtonNode{URL: []byte("https://example.com"), Label: []byte("Open")}
	require.Equal(t, KindButton, node.Kind())
	require.NotPanics(t, func() {
		node.Dump([]byte("source"), 0)
	})
	require.Equal(t, []byte{'['}, (&buttonParser{}).Trigger())
}
