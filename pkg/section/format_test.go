package section

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Not parallel: mutates the process-wide default.
func TestSetDefault(t *testing.T) {
	original := Default()
	t.Cleanup(func() { require.NoError(t, SetDefault(original)) })

	custom := Format{Tag: "<!--{bound}_{block}-->", TagVar: "{BOUND}_{BLOCK}_PART"}
	require.NoError(t, SetDefault(custom))
	require.Equal(t, custom, Default())

	err := SetDefault(Format{Tag: "static", TagVar: "STATIC"})
	require.ErrorIs(t, err, ErrInvalidFormat)
	require.Equal(t, custom, Default(), "invalid format must not replace the default")
}

func TestFormat_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultFormat.Validate())
	require.Equal(t, "###start_html###", DefaultFormat.token(Start, HTML))
	require.Equal(t, "TAG_END_FROM_EMAIL", DefaultFormat.variable(End, From))
}
