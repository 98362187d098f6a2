package tools

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetctl/internal/api/apitest"
	"fleetctl/internal/dashboard"
)

func TestServer_InProcessRoundTrip(t *testing.T) {
	fake := apitest.NewFakeFleet(apitest.OnlineHost("h1", "Office PC"))
	s := NewServer(dashboard.New(fake, dashboard.Options{}), "test")

	c, err := client.NewInProcessClient(s)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Start(ctx))

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{Name: "fleetctl-test", Version: "1.0.0"}
	info, err := c.Initialize(ctx, initReq)
	require.NoError(t, err)
	assert.Equal(t, ServerName, info.ServerInfo.Name)

	listed, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	assert.Len(t, listed.Tools, 8)

	callReq := mcp.CallToolRequest{}
	callReq.Params.Name = "add_host"
	callReq.Params.Arguments = map[string]interface{}{"name": "Lab PC", "ip_address": "10.0.0.20"}
	result, err := c.CallTool(ctx, callReq)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Len(t, fake.Hosts, 2)
}

func TestLogWriter(t *testing.T) {
	n, err := logWriter{}.Write([]byte("read error\n"))
	assert.NoError(t, err)
	assert.Equal(t, len("read error\n"), n)
}
