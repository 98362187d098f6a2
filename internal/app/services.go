package app

import (
	"fleetctl/internal/api"
	"fleetctl/internal/config"
	"fleetctl/internal/dashboard"
)

// Services holds the fleet API client and the engine built on it.
type Services struct {
	Client *api.Client
	Engine *dashboard.Engine
}

// InitializeServices creates the API client and the dashboard engine from
// the merged configuration. The engine is not started.
func InitializeServices(fc config.FleetctlConfig) *Services {
	client := api.NewClient(fc.Server.URL, api.WithTimeout(fc.Server.RequestTimeout))
	engine := dashboard.New(client, dashboard.Options{
		PollInterval:    fc.Dashboard.PollInterval,
		NotificationTTL: fc.Dashboard.NotificationDuration,
	})
	return &Services{Client: client, Engine: engine}
}
