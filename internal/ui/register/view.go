package register

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"qkart/internal/keys"
	"qkart/internal/log"
	"qkart/internal/registration"
	"qkart/internal/ui/markdown"
	"qkart/internal/ui/styles"
)

var labels = [...]string{"Username", "Password", "Confirm Password"}

// Rules is the markdown shown in the rules panel.
var Rules = fmt.Sprintf(`## Account rules

- **Username** is required and must be %[1]d to %[2]d characters.
- **Password** is required and must be %[1]d to %[2]d characters.
- **Confirm Password** must match the password exactly.
`, registration.MinLength, registration.MaxLength)

func renderRules(r *markdown.Renderer) string {
	if r == nil {
		return Rules
	}
	out, err := r.Render(Rules)
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering rules panel", err)
		return Rules
	}
	return strings.TrimRight(out, "\n")
}

// View renders the screen.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Register"))
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("Create an account to start shopping"))
	b.WriteString("\n\n")

	for i := range m.inputs {
		label := styles.LabelStyle
		box := styles.InputStyle
		if m.focus == i {
			label = styles.LabelFocusStyle
			box = styles.InputFocusStyle
		}
		b.WriteString(label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(zone.Mark(zoneInputs[i], box.Render(m.inputs[i].View())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.button())
	b.WriteString("\n\n")
	b.WriteString(styles.MutedStyle.Render("Already have an account? "))
	b.WriteString(zone.Mark(zoneLogin, styles.LabelFocusStyle.Underline(true).Render("Login here")))

	if m.showRules {
		b.WriteString("\n\n")
		b.WriteString(m.rules)
	}

	panel := styles.PanelStyle.Render(b.String())
	if !m.showFooter {
		return m.center(panel)
	}
	return m.center(lipgloss.JoinVertical(lipgloss.Center, panel, m.help.View(keys.Register)))
}

func (m Model) button() string {
	if m.machine.Busy() {
		return styles.ButtonBusyStyle.Render(m.spinner.View() + " Registering")
	}
	style := styles.ButtonStyle
	if m.focus == focusButton {
		style = styles.ButtonFocusStyle
	}
	return zone.Mark(zoneButton, style.Render("REGISTER NOW"))
}

func (m Model) center(s string) string {
	if m.width == 0 || m.height == 0 {
		return s
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, s)
}
