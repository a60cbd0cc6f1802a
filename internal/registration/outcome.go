package registration

import "fmt"

// Notices shown for the non-validation paths.
const (
	SuccessMessage = "Registered successfully"
	GenericError   = "Something went wrong. Check that the backend is running, reachable and returns valid JSON."
)

// OutcomeKind discriminates the result of one registration request.
type OutcomeKind int

const (
	// OutcomeTransportError: the exchange itself failed (connection, timeout, malformed body).
	OutcomeTransportError OutcomeKind = iota
	// OutcomeApplicationError: the service answered success=false with a message.
	OutcomeApplicationError
	// OutcomeSuccess: the service answered success=true.
	OutcomeSuccess
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeApplicationError:
		return "application_error"
	default:
		return "transport_error"
	}
}

// Outcome is the tagged result of a registration request. The zero value is
// a transport error with no cause, so a forgotten assignment never reads as success.
type Outcome struct {
	Kind    OutcomeKind
	Message string // server message, only for OutcomeApplicationError
	Err     error  // cause, only for OutcomeTransportError
}

// Succeeded builds a success outcome.
func Succeeded() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

// Rejected builds an application error carrying the server's message.
func Rejected(message string) Outcome {
	return Outcome{Kind: OutcomeApplicationError, Message: message}
}

// Failed builds a transport error.
func Failed(err error) Outcome {
	return Outcome{Kind: OutcomeTransportError, Err: err}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeSuccess:
		return "success"
	case OutcomeApplicationError:
		return fmt.Sprintf("application error: %s", o.Message)
	default:
		if o.Err != nil {
			return fmt.Sprintf("transport error: %v", o.Err)
		}
		return "transport error"
	}
}

// Response is the auth service's JSON body. Success is a pointer so a
// missing field can be told apart from false.
type Response struct {
	Success *bool  `json:"success"`
	Message string `json:"message,omitempty"`
}

// NoticeLevel selects how a notice is presented.
type NoticeLevel int

const (
	NoticeError NoticeLevel = iota
	NoticeSuccess
)

// Notice is one transient message for the user.
type Notice struct {
	Level NoticeLevel
	Text  string
}

// Verdict is the result of Classify.
type Verdict struct {
	OK     bool
	Notice Notice // empty when OK
}

// Classify decides whether an already-received answer means success.
// When errored is true resp is not looked at: the verdict is a failure with
// the generic message. Otherwise only resp.Success == true counts as success
// and any other answer surfaces resp.Message unchanged.
func Classify(errored bool, resp *Response) Verdict {
	if errored || resp == nil {
		return Verdict{Notice: Notice{Level: NoticeError, Text: GenericError}}
	}
	if resp.Success != nil && *resp.Success {
		return Verdict{OK: true}
	}
	return Verdict{Notice: Notice{Level: NoticeError, Text: resp.Message}}
}

// Verdict maps an Outcome through the same rules as Classify.
func (o Outcome) Verdict() Verdict {
	switch o.Kind {
	case OutcomeSuccess:
		ok := true
		return Classify(false, &Response{Success: &ok})
	case OutcomeApplicationError:
		ok := false
		return Classify(false, &Response{Success: &ok, Message: o.Message})
	default:
		return Classify(true, nil)
	}
}
