// Package navigation turns registration lifecycle events into screen changes.
// It is the only place that knows about routes; the registration core just
// reports a target.
package navigation

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"qkart/internal/log"
	"qkart/internal/pubsub"
	"qkart/internal/registration"
)

// Storefront routes.
const (
	RouteHome     = "/"
	RouteProducts = "/products"
	RouteCheckout = "/checkout"
	RouteThanks   = "/thanks"
	RouteRegister = "/register"
	RouteLogin    = "/login"
)

// Routes lists every known route.
var Routes = []string{RouteHome, RouteProducts, RouteCheckout, RouteThanks, RouteRegister, RouteLogin}

// Known reports whether path is a storefront route.
func Known(path string) bool {
	for _, r := range Routes {
		if r == path {
			return true
		}
	}
	return false
}

// NavigateMsg asks the app to show Path.
type NavigateMsg struct {
	Path string
}

// Navigator follows registration events and emits one NavigateMsg per
// successful attempt.
type Navigator struct {
	listener *pubsub.ContinuousListener[registration.Effect]

	mu   sync.Mutex
	done map[string]bool
}

// New subscribes to events for the lifetime of ctx.
func New(ctx context.Context, events pubsub.Subscriber[registration.Effect]) *Navigator {
	return &Navigator{
		listener: pubsub.NewContinuousListener(ctx, events),
		done:     make(map[string]bool),
	}
}

// Listen waits for the next event.
func (n *Navigator) Listen() tea.Cmd {
	return n.listener.Listen()
}

// Handle reacts to one event and returns the command to run, always
// including Listen so the subscription keeps flowing.
func (n *Navigator) Handle(ev pubsub.Event[registration.Effect]) tea.Cmd {
	listen := n.Listen()
	path, ok := n.Decide(ev)
	if !ok {
		return listen
	}
	return tea.Batch(listen, Navigate(path))
}

// Decide returns the route ev leads to. Only the first succeeded event of
// an attempt navigates.
func (n *Navigator) Decide(ev pubsub.Event[registration.Effect]) (string, bool) {
	if ev.Type != pubsub.SucceededEvent || ev.Payload.Target == "" {
		return "", false
	}
	target := ev.Payload.Target
	if !Known(target) {
		log.Warn(log.CatNav, "Ignoring unknown navigation target", "target", target)
		return "", false
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.done[ev.Payload.Attempt] {
		return "", false
	}
	n.done[ev.Payload.Attempt] = true

	log.Info(log.CatNav, "Navigating", "target", target, "attempt", ev.Payload.Attempt)
	return target, true
}

// Navigate returns a command producing NavigateMsg{Path: path}.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}
