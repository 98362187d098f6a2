package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordedRequest captures what the fake fleet server received.
type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*Client, *[]recordedRequest) {
	t.Helper()
	var reqs []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.EscapedPath()}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			require.NoError(t, json.Unmarshal(data, &rec.Body))
		}
		reqs = append(reqs, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", WithTimeout(2*time.Second)), &reqs
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestListHosts_DecodesSnapshot(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{
				"id": "h1", "name": "Lab PC", "ipAddress": "10.0.0.5", "isOnline": true,
				"stats": map[string]interface{}{"cpuUsage": 12.5, "memUsage": 40.1, "totalProcesses": 213},
				"apps": []map[string]interface{}{
					{"id": "a1", "name": "nginx", "path": "/usr/sbin/nginx", "processName": "nginx", "isRunning": true, "cpuUsage": 1.5, "memUsage": 0.3},
				},
			},
		})
	})

	hosts, err := client.ListHosts(context.Background())
	require.NoError(t, err)
	require.Len(t, hosts, 1)
	assert.Equal(t, "Lab PC", hosts[0].Name)
	assert.Equal(t, 213, hosts[0].Stats.TotalProcesses)
	app, ok := hosts[0].FindApp("a1")
	require.True(t, ok)
	assert.True(t, app.IsRunning)

	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodGet, (*reqs)[0].Method)
	assert.Equal(t, "/api/computers", (*reqs)[0].Path)
}

func TestListHosts_NullBodyYieldsEmptySnapshot(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, nil)
	})

	hosts, err := client.ListHosts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, hosts)
	assert.Empty(t, hosts)
}

func TestAddHost_SendsTypedBody(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": "new", "name": "Lab PC", "ipAddress": "10.0.0.5"})
	})

	host, err := client.AddHost(context.Background(), AddHostRequest{Name: "Lab PC", IPAddress: "10.0.0.5"})
	require.NoError(t, err)
	assert.Equal(t, "new", host.ID)

	require.Len(t, *reqs, 1)
	assert.Equal(t, http.MethodPost, (*reqs)[0].Method)
	assert.Equal(t, map[string]interface{}{"name": "Lab PC", "ipAddress": "10.0.0.5"}, (*reqs)[0].Body)
}

func TestAddHost_InvalidInputNeverSent(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("server must not be called")
	})

	_, err := client.AddHost(context.Background(), AddHostRequest{Name: "", IPAddress: "not an address!"})
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrorKindInvalidRequest, remoteErr.Kind)
	assert.Contains(t, remoteErr.Message, "name is required")
	assert.Contains(t, remoteErr.Message, "ipAddress must be an IP address or hostname")
	assert.Empty(t, *reqs)
}

func TestAddApp_OmitsEmptyArgs(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]interface{}{"id": "a9", "name": "redis"})
	})

	app, err := client.AddApp(context.Background(), "h1", AddAppRequest{Name: "redis", Path: "/usr/bin/redis-server", ProcessName: "redis-server"})
	require.NoError(t, err)
	assert.Equal(t, "a9", app.ID)

	rec := (*reqs)[0]
	assert.Equal(t, "/api/computers/h1/apps", rec.Path)
	assert.NotContains(t, rec.Body, "args")
}

func TestDelete_NoContent(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteHost(context.Background(), "h1"))
	require.NoError(t, client.DeleteApp(context.Background(), "h1", "a/1"))

	require.Len(t, *reqs, 2)
	assert.Equal(t, http.MethodDelete, (*reqs)[0].Method)
	assert.Equal(t, "/api/computers/h1", (*reqs)[0].Path)
	assert.Equal(t, "/api/computers/h1/apps/a%2F1", (*reqs)[1].Path)
}

func TestActions_BodyAndAck(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/computers/h1/action" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"message": "Command 'start' for app 'nginx' queued."})
	})

	ack, err := client.AppAction(context.Background(), "h1", "a1", AppActionStart)
	require.NoError(t, err)
	require.NotNil(t, ack)
	assert.Equal(t, "Command 'start' for app 'nginx' queued.", ack.Message)

	ack, err = client.HostAction(context.Background(), "h1", HostActionRestart)
	require.NoError(t, err)
	assert.Nil(t, ack)

	assert.Equal(t, map[string]interface{}{"action": "start"}, (*reqs)[0].Body)
	assert.Equal(t, "/api/computers/h1/apps/a1/action", (*reqs)[0].Path)
	assert.Equal(t, map[string]interface{}{"action": "restart"}, (*reqs)[1].Body)
}

func TestActions_RejectUnknownAction(t *testing.T) {
	client, reqs := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.HostAction(context.Background(), "h1", HostActionType("hibernate"))
	assert.ErrorContains(t, err, "action must be one of: shutdown restart")

	_, err = client.AppAction(context.Background(), "", "a1", AppActionStop)
	assert.ErrorContains(t, err, "host id is required")
	assert.Empty(t, *reqs)
}

func TestErrorExtraction(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantKind    ErrorKind
		wantMessage string
	}{
		{
			name:        "decodable server message",
			status:      http.StatusBadGateway,
			contentType: "application/json",
			body:        `{"message":"agent unreachable"}`,
			wantKind:    ErrorKindProtocol,
			wantMessage: "agent unreachable",
		},
		{
			name:        "html body falls back to status text",
			status:      http.StatusInternalServerError,
			contentType: "text/html",
			body:        "<h1>oops</h1>",
			wantKind:    ErrorKindUnknownServer,
			wantMessage: "Internal Server Error",
		},
		{
			name:        "json without message falls back to status text",
			status:      http.StatusNotFound,
			contentType: "application/json",
			body:        `{"error":"nope"}`,
			wantKind:    ErrorKindUnknownServer,
			wantMessage: "Not Found",
		},
		{
			name:        "empty body",
			status:      http.StatusServiceUnavailable,
			wantKind:    ErrorKindUnknownServer,
			wantMessage: "Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			})

			err := client.DeleteHost(context.Background(), "h1")
			var remoteErr *RemoteError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, tt.wantKind, remoteErr.Kind)
			assert.Equal(t, tt.wantMessage, err.Error())
			assert.Equal(t, tt.status, remoteErr.StatusCode)
			assert.Equal(t, "DELETE /computers/h1", remoteErr.Op)
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url)
	_, err := client.ListHosts(context.Background())

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrorKindTransport, remoteErr.Kind)
	assert.NotEmpty(t, remoteErr.Message)
	assert.True(t, IsRemoteError(err))
}

func TestTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := client.ListHosts(context.Background())

	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrorKindTransport, remoteErr.Kind)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestUndecodableSuccessPayload(t *testing.T) {
	client, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "not json")
	})

	_, err := client.ListHosts(context.Background())
	var remoteErr *RemoteError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, ErrorKindUnknownServer, remoteErr.Kind)
	assert.Contains(t, remoteErr.Message, "decoding response")
}
