// Package app contains the root application model.
package app

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/mattn/go-runewidth"
	"go.opentelemetry.io/otel/trace"

	"qkart/internal/config"
	"qkart/internal/keys"
	"qkart/internal/log"
	"qkart/internal/navigation"
	"qkart/internal/pubsub"
	"qkart/internal/registration"
	"qkart/internal/ui/logoverlay"
	"qkart/internal/ui/markdown"
	"qkart/internal/ui/register"
	"qkart/internal/ui/styles"
	"qkart/internal/ui/toaster"
)

// maxEndpointWidth caps the endpoint line on the login screen.
const maxEndpointWidth = 48

// toggleLogs opens the log overlay in debug mode.
var toggleLogs = key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "logs"))

// EndpointChangedMsg reports that the auth service base URL was changed in
// the config file while the program runs.
type EndpointChangedMsg struct {
	Endpoint string
}

// Options are the collaborators the root model is built from.
type Options struct {
	Config    config.Config
	Registrar registration.Registrar
	// Tracer is optional; a no-op tracer is used without it.
	Tracer trace.Tracer
	// Markdown is optional; the rules panel falls back to raw text.
	Markdown *markdown.Renderer
	// Debug enables the log overlay (ctrl+x).
	Debug bool
	// IDs overrides attempt id generation. Optional.
	IDs registration.IDSource
}

// Model is the root application state.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	route       string
	register    register.Model
	registerCfg register.Config

	events    *pubsub.Broker[registration.Effect]
	navigator *navigation.Navigator

	toaster       toaster.Model
	toastDuration time.Duration

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *pubsub.ContinuousListener[string]

	endpoint string
	help     help.Model
	width    int
	height   int
}

// New builds the root model with the registration screen showing.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	events := pubsub.NewBroker[registration.Effect]()

	var orchOpts []registration.OrchestratorOption
	if opts.Tracer != nil {
		orchOpts = append(orchOpts, registration.WithTracer(opts.Tracer))
	}

	registerCfg := register.Config{
		Orchestrator: registration.NewOrchestrator(opts.Registrar, orchOpts...),
		Events:       events,
		Markdown:     opts.Markdown,
		ShowHelp:     opts.Config.UI.ShowHelp,
		IDs:          opts.IDs,
	}

	toastDuration := opts.Config.UI.ToastDuration
	if toastDuration <= 0 {
		toastDuration = config.Defaults().UI.ToastDuration
	}

	m := Model{
		ctx:           ctx,
		cancel:        cancel,
		route:         navigation.RouteRegister,
		register:      register.New(ctx, registerCfg),
		registerCfg:   registerCfg,
		events:        events,
		navigator:     navigation.New(ctx, events),
		toaster:       toaster.New(),
		toastDuration: toastDuration,
		debugMode:     opts.Debug,
		logOverlay:    logoverlay.New(),
		endpoint:      opts.Config.API.Endpoint,
		help:          help.New(),
	}
	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.register.Init(), m.navigator.Listen()}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Route returns the path currently shown.
func (m Model) Route() string {
	return m.route
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.register = m.register.SetSize(msg.Width, msg.Height)
		m.logOverlay = m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.debugMode && key.Matches(msg, toggleLogs) {
			m.logOverlay = m.logOverlay.Toggle()
			return m, nil
		}
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if m.route == navigation.RouteLogin {
			return m.handleLoginKey(msg)
		}

	case pubsub.Event[string]:
		m.logOverlay = m.logOverlay.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case pubsub.Event[registration.Effect]:
		return m, m.navigator.Handle(msg)

	case navigation.NavigateMsg:
		return m.navigate(msg.Path)

	case EndpointChangedMsg:
		if msg.Endpoint == "" || msg.Endpoint == m.endpoint {
			return m, nil
		}
		log.Info(log.CatHTTP, "Auth service changed", "from", m.endpoint, "to", msg.Endpoint)
		m.endpoint = msg.Endpoint
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Auth service is now "+truncateEndpoint(msg.Endpoint), toaster.VariantInfo, m.toastDuration)
		return m, cmd

	case toaster.ShowMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(msg.Text, msg.Variant, m.toastDuration)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Dismiss(msg.ID)
		return m, nil

	case register.ResultMsg:
		// Delivered even after the screen closed; a closed screen drops it.
		var cmd tea.Cmd
		m.register, cmd = m.register.Update(msg)
		return m, cmd
	}

	if m.route != navigation.RouteRegister {
		return m, nil
	}
	var cmd tea.Cmd
	m.register, cmd = m.register.Update(msg)
	return m, cmd
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Login.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Login.Register):
		return m, navigation.Navigate(navigation.RouteRegister)
	}
	return m, nil
}

func (m Model) navigate(path string) (tea.Model, tea.Cmd) {
	if path == m.route {
		return m, nil
	}
	switch path {
	case navigation.RouteLogin:
		log.Info(log.CatNav, "Showing login", "from", m.route)
		m.register = m.register.Close()
		m.route = path
		return m, nil

	case navigation.RouteRegister:
		log.Info(log.CatNav, "Showing register", "from", m.route)
		m.register = register.New(m.ctx, m.registerCfg).SetSize(m.width, m.height)
		m.route = path
		return m, m.register.Init()
	}

	log.Warn(log.CatNav, "Route not available in this client", "path", path)
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show(path+" is not available here", toaster.VariantInfo, m.toastDuration)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	if m.route == navigation.RouteLogin {
		view = m.loginView()
	} else {
		view = m.register.View()
	}

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return zone.Scan(view)
}

func (m Model) loginView() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Login"))
	b.WriteString("\n\n")
	b.WriteString("Your account is ready. Sign in to continue shopping.")
	b.WriteString("\n")
	if m.endpoint != "" {
		b.WriteString(styles.MutedStyle.Render("Auth service: " + truncateEndpoint(m.endpoint)))
		b.WriteString("\n")
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.PanelStyle.Render(b.String()),
		m.help.View(keys.Login),
	)
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func truncateEndpoint(endpoint string) string {
	return runewidth.Truncate(endpoint, maxEndpointWidth, "…")
}

// Close releases the subscriptions held by the model.
func (m *Model) Close() error {
	m.cancel()
	m.events.Close()
	return nil
}
