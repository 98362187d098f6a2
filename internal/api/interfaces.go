package api

import "context"

// FleetAPI is the contract between the dashboard engine and the fleet server.
// All errors returned by implementations are *RemoteError.
type FleetAPI interface {
	// ListHosts returns the full fleet snapshot.
	ListHosts(ctx context.Context) ([]Host, error)

	AddHost(ctx context.Context, req AddHostRequest) (*Host, error)
	DeleteHost(ctx context.Context, hostID string) error

	AddApp(ctx context.Context, hostID string, req AddAppRequest) (*Application, error)
	DeleteApp(ctx context.Context, hostID, appID string) error

	// AppAction starts or stops an application.
	AppAction(ctx context.Context, hostID, appID string, action AppActionType) (*Ack, error)

	// HostAction shuts down or restarts a host.
	HostAction(ctx context.Context, hostID string, action HostActionType) (*Ack, error)
}
