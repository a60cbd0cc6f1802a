// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken names a themeable color.
type ColorToken string

const (
	TokenTextPrimary     ColorToken = "text.primary"
	TokenTextMuted       ColorToken = "text.muted"
	TokenTextPlaceholder ColorToken = "text.placeholder"

	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	TokenButtonText           ColorToken = "button.text"
	TokenButtonPrimaryBg      ColorToken = "button.primary.bg"
	TokenButtonPrimaryFocusBg ColorToken = "button.primary.focus"
	TokenButtonDisabledBg     ColorToken = "button.disabled.bg"

	TokenFormLabel      ColorToken = "form.label"
	TokenFormLabelFocus ColorToken = "form.label.focus"

	TokenTitle ColorToken = "title"

	TokenToastSuccess ColorToken = "toast.success"
	TokenToastError   ColorToken = "toast.error"
	TokenToastInfo    ColorToken = "toast.info"
)

// AllTokens lists every token a preset must define.
var AllTokens = []ColorToken{
	TokenTextPrimary, TokenTextMuted, TokenTextPlaceholder,
	TokenBorderDefault, TokenBorderFocus,
	TokenButtonText, TokenButtonPrimaryBg, TokenButtonPrimaryFocusBg, TokenButtonDisabledBg,
	TokenFormLabel, TokenFormLabelFocus,
	TokenTitle,
	TokenToastSuccess, TokenToastError, TokenToastInfo,
}
