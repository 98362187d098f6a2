package api

// SystemStats is the host-level resource usage reported by the agent.
// Values are only meaningful while the host is online.
type SystemStats struct {
	CPUUsage       float64 `json:"cpuUsage"`
	MemUsage       float64 `json:"memUsage"`
	TotalProcesses int     `json:"totalProcesses"`
}

// Application is a managed executable on a host.
type Application struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	ProcessName string  `json:"processName"`
	Args        string  `json:"args,omitempty"`
	IsRunning   bool    `json:"isRunning"`
	CPUUsage    float64 `json:"cpuUsage"`
	MemUsage    float64 `json:"memUsage"`
}

// Host is a remote machine managed by the dashboard ("computer" on the wire).
type Host struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	IPAddress string        `json:"ipAddress"`
	IsOnline  bool          `json:"isOnline"`
	Stats     SystemStats   `json:"stats"`
	Apps      []Application `json:"apps"`
}

// FindApp returns the application with the given id, if present.
func (h Host) FindApp(appID string) (Application, bool) {
	for _, app := range h.Apps {
		if app.ID == appID {
			return app, true
		}
	}
	return Application{}, false
}

// AddHostRequest registers a new host with the fleet server.
type AddHostRequest struct {
	Name      string `json:"name" validate:"required"`
	IPAddress string `json:"ipAddress" validate:"required,ip|hostname_rfc1123"`
}

// AddAppRequest registers a new managed application on a host.
type AddAppRequest struct {
	Name        string `json:"name" validate:"required"`
	Path        string `json:"path" validate:"required"`
	ProcessName string `json:"processName" validate:"required"`
	Args        string `json:"args,omitempty"`
}

// AppActionType is the run-state change requested for an application.
type AppActionType string

const (
	AppActionStart AppActionType = "start"
	AppActionStop  AppActionType = "stop"
)

// HostActionType is the power-state change requested for a host.
type HostActionType string

const (
	HostActionShutdown HostActionType = "shutdown"
	HostActionRestart  HostActionType = "restart"
)

type appActionRequest struct {
	Action AppActionType `json:"action" validate:"oneof=start stop"`
}

type hostActionRequest struct {
	Action HostActionType `json:"action" validate:"oneof=shutdown restart"`
}

// Ack is the optional acknowledgement returned by action endpoints, e.g.
// "Command 'start' for app 'nginx' queued.". It is nil on 204 responses.
type Ack struct {
	Message string `json:"message"`
}

// errorBody is the server's error convention.
type errorBody struct {
	Message string `json:"message"`
}
