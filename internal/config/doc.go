// Package config provides configuration management for fleetctl.
//
// Configuration is loaded and merged in the following order, later sources
// overriding earlier ones:
//
//  1. Default configuration (embedded in binary)
//  2. User configuration (~/.config/fleetctl/config.yaml)
//  3. Project configuration (./.fleetctl/config.yaml)
//  4. Environment variables (FLEETCTL_*), optionally seeded from ./.env
//
// Command-line flags are applied on top by the cmd package.
//
// # Configuration Structure
//
//	server:
//	  url: "http://fleet.lan:5000"
//	  requestTimeout: 10s
//	dashboard:
//	  pollInterval: 5s
//	  notificationDuration: 5s
//	  theme: auto        # auto, dark or light
//	logging:
//	  level: info
//	  file: ~/.cache/fleetctl/fleetctl.log
package config
