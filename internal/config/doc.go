// Package config provides configuration management for deployctl.
//
// Configuration is loaded from multiple sources and merged in a fixed order,
// with later sources overriding earlier ones.
//
// # Configuration Layers
//
//  1. Default Configuration (compiled in, see GetDefaultConfig)
//
//  2. User Configuration (~/.config/deployctl/config.yaml)
//
//  3. Project Configuration (./.deployctl/config.yaml)
//
//  4. Environment variables, after loading a ./.env file if present:
//     DEPLOYCTL_API_URL, DEPLOYCTL_API_TIMEOUT, DEPLOYCTL_POLL_INTERVAL,
//     DEPLOYCTL_PROGRESS_MODE
//
// Command-line flags are applied by the cmd package on top of the result.
//
// # Configuration Structure
//
//	api:
//	  baseURL: "http://proxmox-deployer.lan:5000"
//	  timeout: 15s
//	refresh:
//	  pollInterval: 10s
//	progress:
//	  mode: simulated   # or "status" to follow the real deployment status
//	  stepInterval: 2s
//	  closeDelay: 2s
//	ui:
//	  notificationTimeout: 3s
//	  tabSwitchDelay: 2s
//	  restartRefreshDelay: 2s
//	limits:
//	  maxCPU: 8
//	  maxMemoryMB: 16384
//	  maxDiskGB: 500
//	mockAPI:
//	  host: 127.0.0.1
//	  port: 5000
//	  provisionDelay: 4s
//
// Durations use Go duration syntax ("500ms", "10s", "1m").
package config
