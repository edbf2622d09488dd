// Package client submits images to a plantid server.
//
// Example usage:
//
//	image, err := client.CaptureImage("rose.jpg")
//	if err != nil {
//	    return err
//	}
//	result, err := client.New("http://localhost:5000").Submit(ctx, image)
package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/verdantlabs/plantid/internal/transport"
	"github.com/verdantlabs/plantid/pkg/constants"
	"github.com/verdantlabs/plantid/pkg/errors"
	"github.com/verdantlabs/plantid/pkg/plants"
)

// ServiceName identifies the plantid server in errors.
const ServiceName = "plantid"

// ErrNoFile is returned by CaptureImage when no file was given.
var ErrNoFile = errors.New("no image file selected")

// CaptureImage reads an image file and base64-encodes it. A file already
// holding base64 text, or a data URL ("data:image/jpeg;base64,..."), is used
// as-is without the prefix. "-" reads from standard input.
func CaptureImage(path string) (plants.ImagePayload, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", ErrNoFile
	}

	if path == "-" {
		return CaptureReader(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	return CaptureReader(f)
}

// maxPayloadBytes is the largest encoded image that still fits the server's
// body limit once wrapped in {"image":"..."}.
const maxPayloadBytes = constants.MaxRequestBodyBytes - len(`{"image":""}`)

// CaptureReader is CaptureImage for an open reader. The size limit applies to
// the encoded payload, not the raw bytes.
func CaptureReader(r io.Reader) (plants.ImagePayload, error) {
	data, err := io.ReadAll(io.LimitReader(r, constants.MaxRequestBodyBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoFile
	}

	trimmed := bytes.TrimSpace(data)
	switch {
	case bytes.HasPrefix(trimmed, []byte("data:")):
		return checkSize(plants.ImagePayload(plants.StripDataURL(string(trimmed))))
	case isBase64Text(trimmed):
		return checkSize(plants.ImagePayload(compact(trimmed)))
	}

	if n := base64.StdEncoding.EncodedLen(len(data)); n > maxPayloadBytes {
		return "", errors.NewValidationError("image", n, constants.ErrMsgTooLarge)
	}
	return plants.EncodeImage(data), nil
}

func checkSize(image plants.ImagePayload) (plants.ImagePayload, error) {
	if n := len(image.String()); n > maxPayloadBytes {
		return "", errors.NewValidationError("image", n, constants.ErrMsgTooLarge)
	}
	return image, nil
}

// isBase64Text reports whether data is standard base64, ignoring line breaks
// and other whitespace.
func isBase64Text(data []byte) bool {
	s := compact(data)
	if s == "" {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(s)
	return err == nil
}

func compact(data []byte) string {
	return strings.Join(strings.Fields(string(data)), "")
}

// Client talks to a plantid server.
type Client struct {
	transport *transport.Client
	baseURL   string
}

// New creates a client for the server at baseURL. An empty baseURL selects
// the local default.
func New(baseURL string, opts ...transport.Option) *Client {
	if baseURL == "" {
		baseURL = constants.DefaultServerURL
	}
	opts = append([]transport.Option{transport.WithTimeout(constants.ClientTimeout)}, opts...)
	return &Client{
		transport: transport.New(ServiceName, &transport.NoAuth{}, opts...),
		baseURL:   baseURL,
	}
}

// BaseURL returns the server address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit sends one identification request. A non-2xx reply becomes an
// *errors.APIError whose Message is the server's error text.
func (c *Client) Submit(ctx context.Context, image plants.ImagePayload) (*plants.Result, error) {
	body := struct {
		Image string `json:"image"`
	}{Image: image.String()}

	resp, err := c.transport.PostJSON(ctx, transport.JoinURL(c.baseURL, "identify"), body)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapAPI(ServiceName, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errors.NewAPIError(ServiceName, resp.StatusCode, errorMessage(resp.StatusCode, data))
		apiErr.Endpoint = resp.Request.URL.String()
		return nil, apiErr
	}

	var result plants.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.WrapParse("json", ServiceName+" response", err)
	}
	return &result, nil
}

// errorMessage extracts {"error": "..."} or falls back to the status text.
func errorMessage(status int, body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	return http.StatusText(status)
}

// Message returns the text to show a user for err: the server's error
// message when there is one, otherwise the error itself.
func Message(err error) string {
	var apiErr *errors.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
		return apiErr.Message
	}
	return err.Error()
}
