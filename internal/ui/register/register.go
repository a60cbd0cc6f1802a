// Package register is the account registration screen. It owns a
// registration.Machine, mirrors the text inputs into it and turns the
// machine's effects into commands: toasts, the network call and lifecycle
// events for the rest of the app.
package register

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"qkart/internal/keys"
	"qkart/internal/log"
	"qkart/internal/navigation"
	"qkart/internal/pubsub"
	"qkart/internal/registration"
	"qkart/internal/ui/markdown"
	"qkart/internal/ui/toaster"
)

// Zone ids for mouse hit testing.
const (
	zoneButton = "register-submit"
	zoneLogin  = "register-login"
)

var zoneInputs = [...]string{"register-username", "register-password", "register-confirm"}

// focusButton is the focus index of the Register button, after the inputs.
const focusButton = 3

// fields maps input index to form field.
var fields = [...]registration.Field{
	registration.FieldUsername,
	registration.FieldPassword,
	registration.FieldConfirmPassword,
}

// ResultMsg carries the outcome of one dispatched attempt back to the screen.
type ResultMsg struct {
	Attempt string
	Outcome registration.Outcome
}

// Config wires the screen's collaborators.
type Config struct {
	// Orchestrator performs the network call. Required.
	Orchestrator *registration.Orchestrator
	// Events receives submitted, succeeded and failed events. Optional.
	Events pubsub.Publisher[registration.Effect]
	// Markdown renders the rules panel. Optional; raw text is shown without it.
	Markdown *markdown.Renderer
	// ShowHelp shows the key help footer.
	ShowHelp bool
	// IDs overrides attempt id generation. Optional.
	IDs registration.IDSource
}

// Model is the registration screen.
type Model struct {
	ctx     context.Context
	orch    *registration.Orchestrator
	events  pubsub.Publisher[registration.Effect]
	machine registration.Machine

	inputs  [3]textinput.Model
	focus   int
	spinner spinner.Model
	help    help.Model

	showFooter bool
	showRules  bool
	rules      string

	width  int
	height int
	closed bool
}

// New creates the screen with focus on the username input. ctx bounds every
// request the screen dispatches.
func New(ctx context.Context, cfg Config) Model {
	machine := registration.New()
	if cfg.IDs != nil {
		machine = machine.WithIDSource(cfg.IDs)
	}

	m := Model{
		ctx:        ctx,
		orch:       cfg.Orchestrator,
		events:     cfg.Events,
		machine:    machine,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:       help.New(),
		showFooter: cfg.ShowHelp,
		rules:      renderRules(cfg.Markdown),
	}

	m.inputs[0] = newInput("Enter Username", false)
	m.inputs[1] = newInput("Enter a password with minimum 6 characters", true)
	m.inputs[2] = newInput("Re-enter your password to confirm", true)
	m.inputs[0].Focus()
	return m
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Machine exposes the underlying state machine.
func (m Model) Machine() registration.Machine {
	return m.machine
}

// Focused returns the focus index: 0-2 for the inputs, 3 for the button.
func (m Model) Focused() int {
	return m.focus
}

// Closed reports whether the screen has been torn down.
func (m Model) Closed() bool {
	return m.closed
}

// Close tears the screen down. Results arriving afterwards are dropped.
func (m Model) Close() Model {
	m.closed = true
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.help.Width = width
	return m
}

// Update handles messages for the screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.closed {
		if res, ok := msg.(ResultMsg); ok {
			log.Debug(log.CatUI, "Dropping result for closed screen", "attempt", res.Attempt)
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		if !m.machine.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ResultMsg:
		var eff registration.Effect
		m.machine, eff = m.machine.Resolve(msg.Attempt, msg.Outcome)
		return m.apply(eff)
	}

	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Register.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Register.Help):
		m.showRules = !m.showRules
		m.help.ShowAll = m.showRules
		return m, nil

	case key.Matches(msg, keys.Register.Login):
		return m, navigation.Navigate(navigation.RouteLogin)

	case key.Matches(msg, keys.Register.Next):
		return m.setFocus((m.focus + 1) % (focusButton + 1))

	case key.Matches(msg, keys.Register.Prev):
		return m.setFocus((m.focus + focusButton) % (focusButton + 1))

	case key.Matches(msg, keys.Register.Submit):
		// Enter walks down the form; it submits from the last input or the button.
		if msg.Type == tea.KeyEnter && m.focus < len(m.inputs)-1 {
			return m.setFocus(m.focus + 1)
		}
		return m.submit()
	}

	return m.forward(msg)
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if z := zone.Get(zoneButton); z != nil && z.InBounds(msg) {
		m, _ = m.setFocus(focusButton)
		return m.submit()
	}
	if z := zone.Get(zoneLogin); z != nil && z.InBounds(msg) {
		return m, navigation.Navigate(navigation.RouteLogin)
	}
	for i, id := range zoneInputs {
		if z := zone.Get(id); z != nil && z.InBounds(msg) {
			return m.setFocus(i)
		}
	}
	return m, nil
}

// forward passes msg to the focused input and mirrors any change into the
// machine.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	if m.focus >= len(m.inputs) {
		return m, nil
	}
	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		m.machine = m.machine.Edit(fields[m.focus], after)
	}
	return m, cmd
}

func (m Model) setFocus(i int) (Model, tea.Cmd) {
	if m.focus < len(m.inputs) {
		m.inputs[m.focus].Blur()
	}
	m.focus = i
	if i < len(m.inputs) {
		return m, m.inputs[i].Focus()
	}
	return m, nil
}

func (m Model) submit() (Model, tea.Cmd) {
	var eff registration.Effect
	m.machine, eff = m.machine.Submit()
	return m.apply(eff)
}

// apply carries out an effect from the machine.
func (m Model) apply(eff registration.Effect) (Model, tea.Cmd) {
	switch eff.Kind {
	case registration.EffectDispatch:
		m.publish(pubsub.SubmittedEvent, eff)
		return m, tea.Batch(m.spinner.Tick, m.dispatch(eff.Attempt, eff.Request))

	case registration.EffectNotify:
		var verr *registration.ValidationError
		if errors.As(eff.Err, &verr) {
			log.Debug(log.CatUI, "Validation failed", "field", verr.Field, "reason", verr.Reason)
		} else {
			m.publish(pubsub.FailedEvent, eff)
		}
		return m, notify(eff.Notice)

	case registration.EffectSucceeded:
		for i := range m.inputs {
			m.inputs[i].Reset()
		}
		m.publish(pubsub.SucceededEvent, eff)
		return m, notify(eff.Notice)

	default:
		if eff.Err != nil {
			log.Debug(log.CatUI, "Submit ignored", "reason", eff.Err, "state", m.machine.State)
		}
		return m, nil
	}
}

func (m Model) dispatch(attempt string, creds registration.Credentials) tea.Cmd {
	ctx, orch := m.ctx, m.orch
	return func() tea.Msg {
		return ResultMsg{Attempt: attempt, Outcome: orch.Submit(ctx, attempt, creds)}
	}
}

func (m Model) publish(t pubsub.EventType, eff registration.Effect) {
	if m.events != nil {
		m.events.Publish(t, eff)
	}
}

func notify(n registration.Notice) tea.Cmd {
	variant := toaster.VariantError
	if n.Level == registration.NoticeSuccess {
		variant = toaster.VariantSuccess
	}
	return func() tea.Msg {
		return toaster.ShowMsg{Text: n.Text, Variant: variant}
	}
}
