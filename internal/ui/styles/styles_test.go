package styles

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func TestPresets_DefineEveryToken(t *testing.T) {
	for name, preset := range Presets {
		for _, token := range AllTokens {
			v, ok := preset.Colors[token]
			require.True(t, ok, "preset %s missing %s", name, token)
			require.Regexp(t, hexColor, v, "preset %s token %s", name, token)
		}
	}
}

func TestApplyPreset(t *testing.T) {
	t.Cleanup(func() { _ = ApplyPreset("default") })

	require.NoError(t, ApplyPreset("dracula"))
	require.Equal(t, DraculaPreset.Colors[TokenTitle], string(TitleColor))

	require.NoError(t, ApplyPreset(""))
	require.Equal(t, DefaultPreset.Colors[TokenTitle], string(TitleColor))

	require.ErrorContains(t, ApplyPreset("solarized"), "unknown theme preset")
}

func TestPresetNames_Sorted(t *testing.T) {
	require.Equal(t, []string{"default", "dracula", "high-contrast"}, PresetNames())
}
