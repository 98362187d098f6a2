package dashboard

import (
	"context"
	"fmt"

	"fleetctl/internal/api"
)

// Command describes one mutating remote operation and how to report it.
type Command struct {
	// Name identifies the command in logs, e.g. "add-host".
	Name string
	// SuccessMessage is shown as a success notification when Run succeeds.
	SuccessMessage string
	// RequiresOnlineHost, when set, names a host that must be online in the
	// current snapshot. Against an offline host the command is refused
	// locally with a warning and never sent.
	RequiresOnlineHost string
	// Run performs the remote call.
	Run func(ctx context.Context, client api.FleetAPI) error
}

// AddHost registers a new host.
func AddHost(req api.AddHostRequest) Command {
	return Command{
		Name:           "add-host",
		SuccessMessage: fmt.Sprintf("Computer %q added. Run the agent on it to bring it online.", req.Name),
		Run: func(ctx context.Context, client api.FleetAPI) error {
			_, err := client.AddHost(ctx, req)
			return err
		},
	}
}

// DeleteHost removes a host from the fleet.
func DeleteHost(host api.Host) Command {
	return Command{
		Name:           "delete-host",
		SuccessMessage: fmt.Sprintf("Computer %q deleted.", host.Name),
		Run: func(ctx context.Context, client api.FleetAPI) error {
			return client.DeleteHost(ctx, host.ID)
		},
	}
}

// AddApp registers a managed application on a host.
func AddApp(hostID string, req api.AddAppRequest) Command {
	return Command{
		Name:               "add-app",
		SuccessMessage:     fmt.Sprintf("Application %q added.", req.Name),
		RequiresOnlineHost: hostID,
		Run: func(ctx context.Context, client api.FleetAPI) error {
			_, err := client.AddApp(ctx, hostID, req)
			return err
		},
	}
}

// DeleteApp removes a managed application from a host.
func DeleteApp(hostID string, app api.Application) Command {
	return Command{
		Name:               "delete-app",
		SuccessMessage:     fmt.Sprintf("Application %q deleted.", app.Name),
		RequiresOnlineHost: hostID,
		Run: func(ctx context.Context, client api.FleetAPI) error {
			return client.DeleteApp(ctx, hostID, app.ID)
		},
	}
}

// AppAction starts or stops an application.
func AppAction(hostID string, app api.Application, action api.AppActionType) Command {
	return Command{
		Name:               "app-" + string(action),
		SuccessMessage:     fmt.Sprintf("Command to %s %q sent.", action, app.Name),
		RequiresOnlineHost: hostID,
		Run: func(ctx context.Context, client api.FleetAPI) error {
			_, err := client.AppAction(ctx, hostID, app.ID, action)
			return err
		},
	}
}

// HostAction shuts down or restarts a host.
func HostAction(hostID string, action api.HostActionType) Command {
	return Command{
		Name:               "host-" + string(action),
		SuccessMessage:     fmt.Sprintf("System %s command sent.", action),
		RequiresOnlineHost: hostID,
		Run: func(ctx context.Context, client api.FleetAPI) error {
			_, err := client.HostAction(ctx, hostID, action)
			return err
		},
	}
}
