package authclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"qkart/internal/registration"
)

var creds = registration.Credentials{Username: "validuser", Password: "secret1"}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRegister_Classification(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		want      registration.Outcome
		malformed bool
	}{
		{
			name:   "success",
			status: http.StatusCreated,
			body:   `{"success": true}`,
			want:   registration.Succeeded(),
		},
		{
			name:   "application error",
			status: http.StatusBadRequest,
			body:   `{"success": false, "message": "Username is already taken"}`,
			want:   registration.Rejected("Username is already taken"),
		},
		{
			name:   "status code is not consulted",
			status: http.StatusInternalServerError,
			body:   `{"success": true}`,
			want:   registration.Succeeded(),
		},
		{
			name:   "success false on 200",
			status: http.StatusOK,
			body:   `{"success": false, "message": "Password too weak"}`,
			want:   registration.Rejected("Password too weak"),
		},
		{
			name:      "html error page",
			status:    http.StatusBadGateway,
			body:      `<html>Bad Gateway</html>`,
			want:      registration.Outcome{Kind: registration.OutcomeTransportError},
			malformed: true,
		},
		{
			name:      "missing success",
			status:    http.StatusOK,
			body:      `{"message": "hello"}`,
			want:      registration.Outcome{Kind: registration.OutcomeTransportError},
			malformed: true,
		},
		{
			name:      "success is not a bool",
			status:    http.StatusOK,
			body:      `{"success": "true"}`,
			want:      registration.Outcome{Kind: registration.OutcomeTransportError},
			malformed: true,
		},
		{
			name:      "empty body",
			status:    http.StatusNoContent,
			body:      ``,
			want:      registration.Outcome{Kind: registration.OutcomeTransportError},
			malformed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.status, tt.body)

			got := New(srv.URL).Register(context.Background(), creds)

			if diff := cmp.Diff(tt.want, got, cmpopts.IgnoreFields(registration.Outcome{}, "Err")); diff != "" {
				t.Errorf("Register() mismatch (-want +got):\n%s", diff)
			}
			if tt.malformed {
				require.ErrorIs(t, got.Err, ErrMalformedResponse)
			}
		})
	}
}

func TestRegister_RequestShape(t *testing.T) {
	var (
		gotMethod, gotPath, gotType string
		gotBody                     map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = io.WriteString(w, `{"success": true}`)
	}))
	defer srv.Close()

	out := New(srv.URL+"/api/v1/").Register(context.Background(), creds)

	require.True(t, out.OK())
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/api/v1/auth/register", gotPath, "trailing slash on base is normalized")
	require.Equal(t, "application/json", gotType)
	require.Equal(t, map[string]any{"username": "validuser", "password": "secret1"}, gotBody,
		"only username and password are sent")
}

func TestRegister_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	out := New(url).Register(context.Background(), creds)

	require.Equal(t, registration.OutcomeTransportError, out.Kind)
	require.Error(t, out.Err)
	require.False(t, errors.Is(out.Err, ErrMalformedResponse))
}

func TestRegister_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	out := New(srv.URL, WithTimeout(50*time.Millisecond)).Register(context.Background(), creds)

	require.Equal(t, registration.OutcomeTransportError, out.Kind)
}

func TestWithHTTPClient(t *testing.T) {
	hc := &http.Client{Timeout: time.Second}
	c := New("http://example.com", WithHTTPClient(hc))

	require.Same(t, hc, c.httpClient)
	require.Equal(t, "http://example.com/auth/register", c.RegisterURL())
}

func TestSetEndpoint_RetargetsLaterRequests(t *testing.T) {
	first := serve(t, http.StatusOK, `{"success":false,"message":"first"}`)
	second := serve(t, http.StatusOK, `{"success":false,"message":"second"}`)

	c := New(first.URL)
	require.Equal(t, "first", c.Register(context.Background(), creds).Message)

	c.SetEndpoint(second.URL + "/")
	require.Equal(t, second.URL+RegisterPath, c.RegisterURL())
	require.Equal(t, "second", c.Register(context.Background(), creds).Message)
}
