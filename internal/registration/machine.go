package registration

import (
	"errors"

	"github.com/google/uuid"
)

// LoginPath is where a successful registration hands the user off to.
const LoginPath = "/login"

// ErrSubmissionInFlight is returned by Submit while a request is outstanding.
var ErrSubmissionInFlight = errors.New("registration: submission already in flight")

// ErrAlreadyRegistered is returned by Submit after the attempt has succeeded.
var ErrAlreadyRegistered = errors.New("registration: already registered")

// State is the machine's position in the registration cycle.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSucceeded
	// StateFailed is transient: Resolve passes through it straight back to Idle.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// EffectKind tells the owner of a Machine what to do after a transition.
type EffectKind int

const (
	// EffectNone: nothing to do.
	EffectNone EffectKind = iota
	// EffectNotify: show Effect.Notice; no request is made.
	EffectNotify
	// EffectDispatch: send Effect.Request, tagged with Effect.Attempt.
	EffectDispatch
	// EffectSucceeded: show Effect.Notice, then navigate to Effect.Target.
	EffectSucceeded
)

func (k EffectKind) String() string {
	switch k {
	case EffectNotify:
		return "notify"
	case EffectDispatch:
		return "dispatch"
	case EffectSucceeded:
		return "succeeded"
	default:
		return "none"
	}
}

// Effect is the side effect requested by a transition.
type Effect struct {
	Kind    EffectKind
	Notice  Notice
	Attempt string
	Request Credentials
	Target  string
	Err     error // why a trigger was refused or failed
}

// Machine is the registration state machine. The zero value is an idle,
// empty form.
type Machine struct {
	Form  Form
	State State

	// Attempt identifies the request in flight; empty unless Submitting.
	Attempt string

	ids IDSource
}

// IDSource mints attempt ids.
type IDSource interface {
	NewID() string
}

// New returns an idle machine with an empty form.
func New() Machine {
	return Machine{}
}

// WithIDSource returns m minting attempt ids from ids instead of random UUIDs.
func (m Machine) WithIDSource(ids IDSource) Machine {
	m.ids = ids
	return m
}

// Edit applies a field-change event. Edits after success are ignored.
func (m Machine) Edit(field Field, value string) Machine {
	if m.State == StateSucceeded {
		return m
	}
	m.Form = m.Form.With(field, value)
	return m
}

// Submit handles the submit trigger.
//
// From Idle, a form that fails Validate stays Idle and yields EffectNotify
// with the validation reason; Loading is not touched. A valid form moves to
// Submitting with Loading set and yields EffectDispatch.
//
// A trigger while Submitting or after success is refused with EffectNone and
// Err set; the in-flight attempt is unaffected.
func (m Machine) Submit() (Machine, Effect) {
	switch m.State {
	case StateSubmitting:
		return m, Effect{Kind: EffectNone, Attempt: m.Attempt, Err: ErrSubmissionInFlight}
	case StateSucceeded:
		return m, Effect{Kind: EffectNone, Err: ErrAlreadyRegistered}
	}

	m.State = StateIdle
	if err := Validate(m.Form); err != nil {
		return m, Effect{
			Kind:   EffectNotify,
			Notice: Notice{Level: NoticeError, Text: err.Error()},
			Err:    err,
		}
	}

	m.State = StateSubmitting
	m.Form.Loading = true
	m.Attempt = m.mintID()
	return m, Effect{Kind: EffectDispatch, Attempt: m.Attempt, Request: m.Form.Credentials()}
}

// Resolve settles the attempt identified by attempt with outcome.
//
// An outcome for any other attempt, or arriving when nothing is in flight,
// is stale and leaves m untouched with EffectNone. Otherwise Loading is
// cleared on every path. Success clears the inputs, sets NavigationTarget
// and yields EffectSucceeded. Any failure keeps the inputs, returns the
// machine to Idle and yields EffectNotify with exactly one message.
func (m Machine) Resolve(attempt string, outcome Outcome) (Machine, Effect) {
	if m.State != StateSubmitting || attempt == "" || attempt != m.Attempt {
		return m, Effect{Kind: EffectNone, Attempt: attempt}
	}

	m.Form.Loading = false
	m.Attempt = ""

	verdict := outcome.Verdict()
	if verdict.OK {
		m.State = StateSucceeded
		m.Form = m.Form.cleared()
		if m.Form.NavigationTarget == "" {
			m.Form.NavigationTarget = LoginPath
		}
		return m, Effect{
			Kind:    EffectSucceeded,
			Attempt: attempt,
			Notice:  Notice{Level: NoticeSuccess, Text: SuccessMessage},
			Target:  m.Form.NavigationTarget,
		}
	}

	// Failed is transient: the user may edit and resubmit straight away.
	m.State = StateIdle
	notice := verdict.Notice
	if notice.Text == "" {
		notice.Text = GenericError
	}
	return m, Effect{Kind: EffectNotify, Attempt: attempt, Notice: notice, Err: outcome.Err}
}

// Busy reports whether a request is outstanding.
func (m Machine) Busy() bool {
	return m.State == StateSubmitting
}

func (m Machine) mintID() string {
	if m.ids != nil {
		return m.ids.NewID()
	}
	return uuid.NewString()
}
