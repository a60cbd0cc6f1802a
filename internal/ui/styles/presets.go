package styles

// Preset is a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets holds the built-in themes by name.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"dracula":       DraculaPreset,
	"high-contrast": HighContrastPreset,
}

var DefaultPreset = Preset{
	Name:        "default",
	Description: "QKart storefront colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary:          "#CCCCCC",
		TokenTextMuted:            "#696969",
		TokenTextPlaceholder:      "#777777",
		TokenBorderDefault:        "#696969",
		TokenBorderFocus:          "#00A278",
		TokenButtonText:           "#FFFFFF",
		TokenButtonPrimaryBg:      "#00795C",
		TokenButtonPrimaryFocusBg: "#00A278",
		TokenButtonDisabledBg:     "#444444",
		TokenFormLabel:            "#999999",
		TokenFormLabelFocus:       "#FFFFFF",
		TokenTitle:                "#00A278",
		TokenToastSuccess:         "#73F59F",
		TokenToastError:           "#FF8787",
		TokenToastInfo:            "#54A0FF",
	},
}

var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vivid accents",
	Colors: map[ColorToken]string{
		TokenTextPrimary:          "#F8F8F2",
		TokenTextMuted:            "#6272A4",
		TokenTextPlaceholder:      "#6272A4",
		TokenBorderDefault:        "#44475A",
		TokenBorderFocus:          "#BD93F9",
		TokenButtonText:           "#282A36",
		TokenButtonPrimaryBg:      "#BD93F9",
		TokenButtonPrimaryFocusBg: "#FF79C6",
		TokenButtonDisabledBg:     "#44475A",
		TokenFormLabel:            "#6272A4",
		TokenFormLabelFocus:       "#F8F8F2",
		TokenTitle:                "#FF79C6",
		TokenToastSuccess:         "#50FA7B",
		TokenToastError:           "#FF5555",
		TokenToastInfo:            "#8BE9FD",
	},
}

var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:          "#FFFFFF",
		TokenTextMuted:            "#C0C0C0",
		TokenTextPlaceholder:      "#C0C0C0",
		TokenBorderDefault:        "#FFFFFF",
		TokenBorderFocus:          "#FFFF00",
		TokenButtonText:           "#000000",
		TokenButtonPrimaryBg:      "#FFFFFF",
		TokenButtonPrimaryFocusBg: "#FFFF00",
		TokenButtonDisabledBg:     "#808080",
		TokenFormLabel:            "#FFFFFF",
		TokenFormLabelFocus:       "#FFFF00",
		TokenTitle:                "#FFFF00",
		TokenToastSuccess:         "#00FF00",
		TokenToastError:           "#FF0000",
		TokenToastInfo:            "#00FFFF",
	},
}
