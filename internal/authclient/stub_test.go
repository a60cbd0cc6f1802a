package authclient

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"qkart/internal/authstub"
	"qkart/internal/registration"
)

// TestRegister_AgainstStub drives the client against the stub service to
// keep both sides of the wire contract in step.
func TestRegister_AgainstStub(t *testing.T) {
	stub, err := authstub.New(authstub.Config{})
	require.NoError(t, err)
	defer stub.Close()
	srv := httptest.NewServer(stub.Handler())
	defer srv.Close()

	c := New(srv.URL + authstub.BasePath)

	first := c.Register(context.Background(), registration.Credentials{Username: "validuser", Password: "secret1"})
	require.Equal(t, registration.OutcomeSuccess, first.Kind)

	second := c.Register(context.Background(), registration.Credentials{Username: "validuser", Password: "secret1"})
	require.Equal(t, registration.OutcomeApplicationError, second.Kind)
	require.Equal(t, authstub.MsgUsernameTaken, second.Message)
}
