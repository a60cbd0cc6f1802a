package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestRender_Notty(t *testing.T) {
	r, err := New("notty", 40)
	require.NoError(t, err)
	require.Equal(t, 40, r.Width())

	out, err := r.Render("## Rules\n\n- at least **6** characters\n")
	require.NoError(t, err)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "Rules")
	require.Contains(t, plain, "characters")
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New("no-such-style", 40)
	require.Error(t, err)
}
