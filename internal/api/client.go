package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fleetctl/pkg/logging"
)

const (
	apiBasePath = "/api"
	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Client talks to the fleet API server over HTTP/JSON.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout bounds every request, so a hung server cannot stall a poll
// cycle forever. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for the server at serverURL
// (e.g. "http://fleet.lan:5000"). The /api base path is appended.
func NewClient(serverURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(serverURL, "/") + apiBasePath,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ FleetAPI = (*Client)(nil)

// ListHosts returns the full fleet snapshot.
func (c *Client) ListHosts(ctx context.Context) ([]Host, error) {
	var hosts []Host
	if err := c.do(ctx, http.MethodGet, "/computers", nil, &hosts); err != nil {
		return nil, err
	}
	if hosts == nil {
		hosts = []Host{}
	}
	return hosts, nil
}

func (c *Client) AddHost(ctx context.Context, req AddHostRequest) (*Host, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}
	var host Host
	if err := c.do(ctx, http.MethodPost, "/computers", req, &host); err != nil {
		return nil, err
	}
	return &host, nil
}

func (c *Client) DeleteHost(ctx context.Context, hostID string) error {
	if err := requireID("host", hostID); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, hostPath(hostID), nil, nil)
}

func (c *Client) AddApp(ctx context.Context, hostID string, req AddAppRequest) (*Application, error) {
	if err := requireID("host", hostID); err != nil {
		return nil, err
	}
	if err := Validate(req); err != nil {
		return nil, err
	}
	var app Application
	if err := c.do(ctx, http.MethodPost, hostPath(hostID)+"/apps", req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

func (c *Client) DeleteApp(ctx context.Context, hostID, appID string) error {
	if err := requireID("host", hostID); err != nil {
		return err
	}
	if err := requireID("application", appID); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, appPath(hostID, appID), nil, nil)
}

func (c *Client) AppAction(ctx context.Context, hostID, appID string, action AppActionType) (*Ack, error) {
	if err := requireID("host", hostID); err != nil {
		return nil, err
	}
	if err := requireID("application", appID); err != nil {
		return nil, err
	}
	body := appActionRequest{Action: action}
	if err := Validate(body); err != nil {
		return nil, err
	}
	return c.doAck(ctx, appPath(hostID, appID)+"/action", body)
}

func (c *Client) HostAction(ctx context.Context, hostID string, action HostActionType) (*Ack, error) {
	if err := requireID("host", hostID); err != nil {
		return nil, err
	}
	body := hostActionRequest{Action: action}
	if err := Validate(body); err != nil {
		return nil, err
	}
	return c.doAck(ctx, hostPath(hostID)+"/action", body)
}

func hostPath(hostID string) string {
	return "/computers/" + url.PathEscape(hostID)
}

func appPath(hostID, appID string) string {
	return hostPath(hostID) + "/apps/" + url.PathEscape(appID)
}

// doAck posts an action. The acknowledgement body is optional, so an
// undecodable one is ignored rather than failing a command the server accepted.
func (c *Client) doAck(ctx context.Context, path string, body interface{}) (*Ack, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodPost, path, body, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var ack Ack
	if err := json.Unmarshal(raw, &ack); err != nil || ack.Message == "" {
		return nil, nil
	}
	logging.Debug("API", "POST %s acknowledged: %s", path, ack.Message)
	return &ack, nil
}

// do performs one request/response exchange. out may be nil when no payload
// is expected.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	op := method + " " + path

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &RemoteError{Kind: ErrorKindInvalidRequest, Op: op, Message: fmt.Sprintf("encoding request: %v", err), Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RemoteError{Kind: ErrorKindInvalidRequest, Op: op, Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Kind: ErrorKindTransport, Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := errorFromResponse(op, resp)
		logging.Debug("API", "%s failed with status %d (%s): %s", op, resp.StatusCode, remoteErr.Kind, remoteErr.Message)
		return remoteErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if raw, ok := out.(*json.RawMessage); ok {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return &RemoteError{Kind: ErrorKindTransport, Op: op, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
		}
		*raw = data
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RemoteError{
			Kind:       ErrorKindUnknownServer,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("decoding response: %v", err),
			Err:        err,
		}
	}
	return nil
}

// errorFromResponse extracts the server's {"message"} from a failed response,
// falling back to the transport's status text.
func errorFromResponse(op string, resp *http.Response) *RemoteError {
	data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var eb errorBody
	if readErr == nil && json.Unmarshal(data, &eb) == nil && strings.TrimSpace(eb.Message) != "" {
		return &RemoteError{
			Kind:       ErrorKindProtocol,
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    eb.Message,
		}
	}

	return &RemoteError{
		Kind:       ErrorKindUnknownServer,
		Op:         op,
		StatusCode: resp.StatusCode,
		Message:    statusText(resp),
		Err:        readErr,
	}
}

// statusText prefers the reason phrase the server actually sent.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = unknownAPIError
	}
	return text
}

// IsRemoteError reports whether err is (or wraps) a *RemoteError.
func IsRemoteError(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr)
}
