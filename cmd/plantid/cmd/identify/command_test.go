package identify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/plantid/internal/cmd/application"
	"github.com/verdantlabs/plantid/pkg/client"
)

const roseResponse = `{
  "scientific_name": "Rosa indica",
  "description": "A rose.",
  "common_names": {"English": ["rose", "indian rose"], "Hindi": "गुलाब", "Tamil": "ரோஜா", "Kannada": "ರೋಜ"}
}`

type captured struct {
	image string
}

func newServer(t *testing.T, status int, body string, got *captured) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/identify", r.URL.Path)
		var req struct {
			Image string `json:"image"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if got != nil {
			got.image = req.Image
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newMock(srv *httptest.Server, format string) *application.Mock {
	return &application.Mock{
		ClientFunc:       func() *client.Client { return client.New(srv.URL) },
		OutputFormatFunc: func() string { return format },
	}
}

func writeImage(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rose.jpg")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func execute(t *testing.T, app application.Application, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewCommand(app)
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestIdentifyJSON(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, roseResponse, &got)

	stdout, stderr, err := execute(t, newMock(srv, "json"), "", writeImage(t, []byte("hello")))
	require.NoError(t, err)

	assert.Equal(t, "aGVsbG8=", got.image)
	assert.Contains(t, stderr, "Identifying...")
	assert.Contains(t, stdout, `"scientific_name": "Rosa indica"`)
	assert.Contains(t, stdout, `"Kannada": "ರೋಜ"`)
}

func TestIdentifyTable(t *testing.T) {
	srv := newServer(t, http.StatusOK, roseResponse, nil)

	stdout, _, err := execute(t, newMock(srv, "table"), "", writeImage(t, []byte("hello")))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Rose")
	assert.Contains(t, stdout, "Rosa indica")
	assert.Contains(t, stdout, "indian rose")
	assert.Contains(t, stdout, "गुलाब")
}

func TestIdentifyYAML(t *testing.T) {
	srv := newServer(t, http.StatusOK, roseResponse, nil)

	stdout, _, err := execute(t, newMock(srv, "yaml"), "", writeImage(t, []byte("hello")))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "scientific_name: Rosa indica\n"), stdout)
	assert.Less(t, strings.Index(stdout, "English:"), strings.Index(stdout, "Hindi:"))
}

func TestIdentifyStdinDataURL(t *testing.T) {
	var got captured
	srv := newServer(t, http.StatusOK, roseResponse, &got)

	_, _, err := execute(t, newMock(srv, "json"), "data:image/jpeg;base64,aGVsbG8=", "-")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", got.image)
}

func TestIdentifyServerError(t *testing.T) {
	srv := newServer(t, http.StatusNotFound, `{"error":"No plant identified"}`, nil)

	stdout, _, err := execute(t, newMock(srv, "json"), "", writeImage(t, []byte("hello")))
	require.Error(t, err)

	assert.Equal(t, "Error: No plant identified\n", stdout)
	assert.Contains(t, err.Error(), "rose.jpg")
}

func TestIdentifyNoFile(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	t.Cleanup(srv.Close)

	_, _, err := execute(t, newMock(srv, "json"), "")
	require.ErrorIs(t, err, client.ErrNoFile)
	assert.False(t, called)
}

func TestIdentifyInvalidFormat(t *testing.T) {
	srv := newServer(t, http.StatusOK, roseResponse, nil)

	_, _, err := execute(t, newMock(srv, "xml"), "", writeImage(t, []byte("hello")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestIdentifyServerFlag(t *testing.T) {
	srv := newServer(t, http.StatusOK, roseResponse, nil)
	mock := &application.Mock{
		ClientFunc:       func() *client.Client { return client.New("http://127.0.0.1:1") },
		OutputFormatFunc: func() string { return "json" },
	}

	stdout, _, err := execute(t, mock, "", writeImage(t, []byte("hello")), "--server", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rosa indica")
}
