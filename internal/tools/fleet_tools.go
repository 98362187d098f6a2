package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"fleetctl/internal/api"
	"fleetctl/internal/dashboard"
	"fleetctl/pkg/logging"
)

// Engine is the part of the dashboard engine the tools drive.
type Engine interface {
	Refresh(ctx context.Context) error
	View() dashboard.View
	Dispatch(ctx context.Context, cmd dashboard.Command) error
	RequestConfirmation(title, description string, cmd dashboard.Command)
	ConfirmPending(ctx context.Context) error
}

var _ Engine = (*dashboard.Engine)(nil)

// FleetTools provides MCP tools backed by a dashboard engine.
type FleetTools struct {
	engine Engine

	// confirmMu keeps a request and its confirm paired; the engine holds
	// a single pending confirmation.
	confirmMu sync.Mutex
}

// NewFleetTools creates the fleet tools around engine.
func NewFleetTools(engine Engine) *FleetTools {
	return &FleetTools{engine: engine}
}

// GetTools returns all tool definitions.
func (ft *FleetTools) GetTools() []mcp.Tool {
	hostID := mcp.WithString("host_id",
		mcp.Required(),
		mcp.Description("Computer id as returned by list_hosts"),
	)
	appID := mcp.WithString("app_id",
		mcp.Required(),
		mcp.Description("Application id as returned by get_host"),
	)
	confirm := mcp.WithBoolean("confirm",
		mcp.Description("Set to true to carry out the action; without it only the confirmation prompt is returned"),
	)

	return []mcp.Tool{
		mcp.NewTool("list_hosts",
			mcp.WithDescription("List all computers with their online state, stats and applications"),
		),
		mcp.NewTool("get_host",
			mcp.WithDescription("Get one computer with its stats and applications"),
			hostID,
		),
		mcp.NewTool("add_host",
			mcp.WithDescription("Register a new computer. The agent must run on it before it shows as online"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Display name, e.g. Lab PC"),
			),
			mcp.WithString("ip_address",
				mcp.Required(),
				mcp.Description("IP address or hostname of the computer"),
			),
		),
		mcp.NewTool("delete_host",
			mcp.WithDescription("Remove a computer from the fleet"),
			hostID,
			confirm,
		),
		mcp.NewTool("host_action",
			mcp.WithDescription("Shut down or restart a computer"),
			hostID,
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("Power action"),
				mcp.Enum(string(api.HostActionShutdown), string(api.HostActionRestart)),
			),
			confirm,
		),
		mcp.NewTool("add_app",
			mcp.WithDescription("Add a managed application to an online computer"),
			hostID,
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Display name"),
			),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Executable path on the computer"),
			),
			mcp.WithString("process_name",
				mcp.Required(),
				mcp.Description("Process name used to detect whether the application runs"),
			),
			mcp.WithString("args",
				mcp.Description("Optional command line arguments"),
			),
		),
		mcp.NewTool("delete_app",
			mcp.WithDescription("Remove a managed application from a computer"),
			hostID,
			appID,
		),
		mcp.NewTool("app_action",
			mcp.WithDescription("Start or stop a managed application"),
			hostID,
			appID,
			mcp.WithString("action",
				mcp.Required(),
				mcp.Description("Application action"),
				mcp.Enum(string(api.AppActionStart), string(api.AppActionStop)),
			),
		),
	}
}

// HandleListHosts refreshes the fleet and returns it as JSON.
func (ft *FleetTools) HandleListHosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := ft.engine.Refresh(ctx); err != nil {
		return mcp.NewToolResultError(dashboard.ConnectionBanner(err)), nil
	}
	return jsonResult(ft.engine.View().Hosts)
}

// HandleGetHost returns a single host as JSON.
func (ft *FleetTools) HandleGetHost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	host, errResult := ft.lookupHost(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(host)
}

// HandleAddHost registers a new host.
func (ft *FleetTools) HandleAddHost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name is required"), nil
	}
	ip, err := req.RequireString("ip_address")
	if err != nil {
		return mcp.NewToolResultError("ip_address is required"), nil
	}

	addReq := api.AddHostRequest{Name: name, IPAddress: ip}
	if err := api.Validate(addReq); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return ft.dispatch(ctx, dashboard.AddHost(addReq))
}

// HandleDeleteHost removes a host once confirmed.
func (ft *FleetTools) HandleDeleteHost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	host, errResult := ft.lookupHost(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	title, desc := dashboard.DeleteHostPrompt(host)
	return ft.confirmed(ctx, req, title, desc, dashboard.DeleteHost(host))
}

// HandleHostAction shuts down or restarts a host once confirmed.
func (ft *FleetTools) HandleHostAction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actionStr, err := req.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError("action is required"), nil
	}
	action, err := api.ParseHostAction(actionStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be shutdown or restart", actionStr)), nil
	}

	host, errResult := ft.lookupHost(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	if !host.IsOnline {
		return mcp.NewToolResultError(fmt.Sprintf("%s is offline.", host.Name)), nil
	}
	title, desc := dashboard.HostActionPrompt(host, action)
	return ft.confirmed(ctx, req, title, desc, dashboard.HostAction(host.ID, action))
}

// HandleAddApp adds an application to a host.
func (ft *FleetTools) HandleAddApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	host, errResult := ft.lookupHost(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	addReq := api.AddAppRequest{
		Name:        req.GetString("name", ""),
		Path:        req.GetString("path", ""),
		ProcessName: req.GetString("process_name", ""),
		Args:        req.GetString("args", ""),
	}
	if err := api.Validate(addReq); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return ft.dispatch(ctx, dashboard.AddApp(host.ID, addReq))
}

// HandleDeleteApp removes an application. It is not gated.
func (ft *FleetTools) HandleDeleteApp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	host, app, errResult := ft.lookupApp(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return ft.dispatch(ctx, dashboard.DeleteApp(host.ID, app))
}

// HandleAppAction starts or stops an application.
func (ft *FleetTools) HandleAppAction(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	actionStr, err := req.RequireString("action")
	if err != nil {
		return mcp.NewToolResultError("action is required"), nil
	}
	action, err := api.ParseAppAction(actionStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid action %q: must be start or stop", actionStr)), nil
	}

	host, app, errResult := ft.lookupApp(ctx, req)
	if errResult != nil {
		return errResult, nil
	}
	return ft.dispatch(ctx, dashboard.AppAction(host.ID, app, action))
}

func (ft *FleetTools) lookupHost(ctx context.Context, req mcp.CallToolRequest) (api.Host, *mcp.CallToolResult) {
	hostID, err := req.RequireString("host_id")
	if err != nil {
		return api.Host{}, mcp.NewToolResultError("host_id is required")
	}
	if err := ft.engine.Refresh(ctx); err != nil {
		return api.Host{}, mcp.NewToolResultError(dashboard.ConnectionBanner(err))
	}
	for _, h := range ft.engine.View().Hosts {
		if h.ID == hostID {
			return h, nil
		}
	}
	return api.Host{}, mcp.NewToolResultError(fmt.Sprintf("computer %q not found", hostID))
}

func (ft *FleetTools) lookupApp(ctx context.Context, req mcp.CallToolRequest) (api.Host, api.Application, *mcp.CallToolResult) {
	appID, err := req.RequireString("app_id")
	if err != nil {
		return api.Host{}, api.Application{}, mcp.NewToolResultError("app_id is required")
	}
	host, errResult := ft.lookupHost(ctx, req)
	if errResult != nil {
		return api.Host{}, api.Application{}, errResult
	}
	app, ok := host.FindApp(appID)
	if !ok {
		return host, api.Application{}, mcp.NewToolResultError(fmt.Sprintf("application %q not found on %s", appID, host.Name))
	}
	return host, app, nil
}

// confirmed parks cmd behind the confirmation gate and runs it only when
// the caller passed confirm=true.
func (ft *FleetTools) confirmed(ctx context.Context, req mcp.CallToolRequest, title, desc string, cmd dashboard.Command) (*mcp.CallToolResult, error) {
	if !req.GetBool("confirm", false) {
		return mcp.NewToolResultText(fmt.Sprintf("%s\n%s\nCall again with confirm=true to proceed.", title, desc)), nil
	}
	ft.confirmMu.Lock()
	defer ft.confirmMu.Unlock()

	ft.engine.RequestConfirmation(title, desc, cmd)
	if err := ft.engine.ConfirmPending(ctx); err != nil {
		return failure(err), nil
	}
	return mcp.NewToolResultText(cmd.SuccessMessage), nil
}

func (ft *FleetTools) dispatch(ctx context.Context, cmd dashboard.Command) (*mcp.CallToolResult, error) {
	if err := ft.engine.Dispatch(ctx, cmd); err != nil {
		return failure(err), nil
	}
	return mcp.NewToolResultText(cmd.SuccessMessage), nil
}

func failure(err error) *mcp.CallToolResult {
	if errors.Is(err, dashboard.ErrHostOffline) {
		return mcp.NewToolResultError(err.Error())
	}
	return mcp.NewToolResultError("Action failed: " + err.Error())
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logging.Error("Tools", err, "Failed to encode result")
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
