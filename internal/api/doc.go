// Package api is the remote protocol client for the fleet API server.
//
// Every domain action the dashboard can take maps to exactly one method on
// FleetAPI. Inputs are typed request structs, validated before anything is
// sent. Every failure, whatever its origin, is returned as a *RemoteError so
// callers can render one consistent message:
//
//   - transport failures (connection refused, timeouts) keep the network error text
//   - non-2xx responses with a JSON {"message": ...} body use that message
//   - non-2xx responses without one fall back to the HTTP status text
//
// A 204 No Content response completes successfully with no payload.
//
// Example Usage:
//
//	client := api.NewClient("http://fleet.lan:5000", api.WithTimeout(10*time.Second))
//	hosts, err := client.ListHosts(ctx)
//	if err != nil {
//	    var remoteErr *api.RemoteError
//	    if errors.As(err, &remoteErr) {
//	        log.Printf("list failed (%s): %s", remoteErr.Kind, remoteErr.Message)
//	    }
//	}
package api
