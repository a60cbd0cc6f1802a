package registration

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		errored bool
		resp    *Response
		want    Verdict
	}{
		{
			name:    "errored ignores response",
			errored: true,
			resp:    &Response{Success: boolPtr(true)},
			want:    Verdict{Notice: Notice{Level: NoticeError, Text: GenericError}},
		},
		{
			name:    "errored with nil response",
			errored: true,
			want:    Verdict{Notice: Notice{Level: NoticeError, Text: GenericError}},
		},
		{
			name: "success",
			resp: &Response{Success: boolPtr(true)},
			want: Verdict{OK: true},
		},
		{
			name: "application error surfaces message verbatim",
			resp: &Response{Success: boolPtr(false), Message: "X"},
			want: Verdict{Notice: Notice{Level: NoticeError, Text: "X"}},
		},
		{
			name: "missing success field is not success",
			resp: &Response{Message: "Username is already taken"},
			want: Verdict{Notice: Notice{Level: NoticeError, Text: "Username is already taken"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.errored, tt.resp))
		})
	}
}

func TestOutcome_Verdict(t *testing.T) {
	require.True(t, Succeeded().Verdict().OK)
	require.Equal(t, "Username is already taken", Rejected("Username is already taken").Verdict().Notice.Text)
	require.Equal(t, GenericError, Failed(errors.New("dial tcp: refused")).Verdict().Notice.Text)
}

func TestOutcome_ZeroValueIsNotSuccess(t *testing.T) {
	var o Outcome

	require.False(t, o.OK())
	require.Equal(t, OutcomeTransportError, o.Kind)
	require.Equal(t, "transport error", o.String())
}

func TestOutcome_String(t *testing.T) {
	require.Equal(t, "success", Succeeded().String())
	require.Equal(t, "application error: taken", Rejected("taken").String())
	require.Equal(t, "transport error: boom", Failed(errors.New("boom")).String())
}
