// Package registration is the account-registration state machine: local
// credential validation, classification of the auth service's answer, and
// the Idle -> Submitting -> Succeeded/Failed transitions between them.
//
// Everything here is a value type. Operations return a new Form or Machine
// together with an Effect describing what the caller must do next (show a
// notice, dispatch a request, hand off to navigation); nothing in this
// package performs UI work or routing itself.
package registration

// Field identifies one of the user-editable inputs.
type Field int

const (
	FieldUsername Field = iota
	FieldPassword
	FieldConfirmPassword
)

func (f Field) String() string {
	switch f {
	case FieldUsername:
		return "username"
	case FieldPassword:
		return "password"
	case FieldConfirmPassword:
		return "confirmPassword"
	default:
		return "unknown"
	}
}

// Form is the state of one in-progress registration attempt.
type Form struct {
	Username        string
	Password        string
	ConfirmPassword string

	// Loading is true exactly while a request is outstanding.
	Loading bool

	// NavigationTarget is set once, after a confirmed registration.
	NavigationTarget string
}

// WithUsername returns a copy of f with the username replaced. No trimming.
func (f Form) WithUsername(v string) Form {
	f.Username = v
	return f
}

// WithPassword returns a copy of f with the password replaced.
func (f Form) WithPassword(v string) Form {
	f.Password = v
	return f
}

// WithConfirmPassword returns a copy of f with the confirmation replaced.
func (f Form) WithConfirmPassword(v string) Form {
	f.ConfirmPassword = v
	return f
}

// With sets the given field.
func (f Form) With(field Field, v string) Form {
	switch field {
	case FieldUsername:
		return f.WithUsername(v)
	case FieldPassword:
		return f.WithPassword(v)
	case FieldConfirmPassword:
		return f.WithConfirmPassword(v)
	}
	return f
}

// Value reads the given field.
func (f Form) Value(field Field) string {
	switch field {
	case FieldUsername:
		return f.Username
	case FieldPassword:
		return f.Password
	case FieldConfirmPassword:
		return f.ConfirmPassword
	}
	return ""
}

// Credentials is what goes over the wire. The confirmation never leaves the form.
func (f Form) Credentials() Credentials {
	return Credentials{Username: f.Username, Password: f.Password}
}

// cleared empties the three inputs and keeps everything else.
func (f Form) cleared() Form {
	f.Username = ""
	f.Password = ""
	f.ConfirmPassword = ""
	return f
}

// Credentials are the fields sent to the auth service.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
