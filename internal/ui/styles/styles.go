package styles

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Colors in effect. ApplyTheme replaces them.
var (
	TextPrimaryColor     lipgloss.Color
	TextMutedColor       lipgloss.Color
	TextPlaceholderColor lipgloss.Color
	BorderDefaultColor   lipgloss.Color
	BorderFocusColor     lipgloss.Color
	ButtonTextColor      lipgloss.Color
	ButtonBgColor        lipgloss.Color
	ButtonFocusBgColor   lipgloss.Color
	ButtonDisabledColor  lipgloss.Color
	LabelColor           lipgloss.Color
	LabelFocusColor      lipgloss.Color
	TitleColor           lipgloss.Color

	ToastBorderSuccessColor lipgloss.Color
	ToastBorderErrorColor   lipgloss.Color
	ToastBorderInfoColor    lipgloss.Color
)

// Derived styles.
var (
	TitleStyle       lipgloss.Style
	LabelStyle       lipgloss.Style
	LabelFocusStyle  lipgloss.Style
	MutedStyle       lipgloss.Style
	PanelStyle       lipgloss.Style
	InputStyle       lipgloss.Style
	InputFocusStyle  lipgloss.Style
	ButtonStyle      lipgloss.Style
	ButtonFocusStyle lipgloss.Style
	ButtonBusyStyle  lipgloss.Style
)

func init() {
	_ = ApplyPreset("default")
}

// PresetNames returns the built-in preset names, sorted.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

// ApplyPreset switches every color and style to the named preset. An empty
// name selects the default.
func ApplyPreset(name string) error {
	if name == "" {
		name = "default"
	}
	preset, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown theme preset: %s", name)
	}

	c := func(t ColorToken) lipgloss.Color { return lipgloss.Color(preset.Colors[t]) }
	TextPrimaryColor = c(TokenTextPrimary)
	TextMutedColor = c(TokenTextMuted)
	TextPlaceholderColor = c(TokenTextPlaceholder)
	BorderDefaultColor = c(TokenBorderDefault)
	BorderFocusColor = c(TokenBorderFocus)
	ButtonTextColor = c(TokenButtonText)
	ButtonBgColor = c(TokenButtonPrimaryBg)
	ButtonFocusBgColor = c(TokenButtonPrimaryFocusBg)
	ButtonDisabledColor = c(TokenButtonDisabledBg)
	LabelColor = c(TokenFormLabel)
	LabelFocusColor = c(TokenFormLabelFocus)
	TitleColor = c(TokenTitle)
	ToastBorderSuccessColor = c(TokenToastSuccess)
	ToastBorderErrorColor = c(TokenToastError)
	ToastBorderInfoColor = c(TokenToastInfo)

	rebuild()
	return nil
}

func rebuild() {
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(TitleColor)
	LabelStyle = lipgloss.NewStyle().Foreground(LabelColor)
	LabelFocusStyle = lipgloss.NewStyle().Bold(true).Foreground(LabelFocusColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderDefaultColor).
		Padding(1, 3)
	InputStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderDefaultColor).
		Padding(0, 1)
	InputFocusStyle = InputStyle.BorderForeground(BorderFocusColor)

	button := lipgloss.NewStyle().Foreground(ButtonTextColor).Padding(0, 2)
	ButtonStyle = button.Background(ButtonBgColor)
	ButtonFocusStyle = button.Background(ButtonFocusBgColor).Bold(true)
	ButtonBusyStyle = button.Background(ButtonDisabledColor)
}
