package registration

import (
	"unicode/utf16"
)

// Length bounds shared by username and password, inclusive.
const (
	MinLength = 6
	MaxLength = 32
)

// Reasons surfaced by Validate, verbatim.
const (
	ReasonUsernameRequired = "Username is a required field"
	ReasonUsernameLength   = "Username should be 6 to 32 characters in length"
	ReasonPasswordRequired = "Password is a required field"
	ReasonPasswordLength   = "Password should be 6 to 32 characters in length"
	ReasonPasswordMismatch = "Password and ConfirmPassword do not match"
)

// ValidationError is a user-correctable problem found before any request is made.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks f in a fixed order and reports only the first failure:
// username present, username length, password present, password length,
// confirmation matches. It returns nil when f may be submitted.
func Validate(f Form) error {
	switch n := Length(f.Username); {
	case n == 0:
		return &ValidationError{Field: FieldUsername, Reason: ReasonUsernameRequired}
	case n < MinLength || n > MaxLength:
		return &ValidationError{Field: FieldUsername, Reason: ReasonUsernameLength}
	}

	switch n := Length(f.Password); {
	case n == 0:
		return &ValidationError{Field: FieldPassword, Reason: ReasonPasswordRequired}
	case n < MinLength || n > MaxLength:
		return &ValidationError{Field: FieldPassword, Reason: ReasonPasswordLength}
	}

	if f.Password != f.ConfirmPassword {
		return &ValidationError{Field: FieldConfirmPassword, Reason: ReasonPasswordMismatch}
	}
	return nil
}

// Length counts UTF-16 code units, the unit the storefront and its auth
// service measure in. "é" written as e + combining accent counts two, and an
// emoji outside the BMP counts two.
func Length(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
