// Package mcptools exposes the deployment backend to AI assistants as MCP tools.
//
// Every tool is a thin wrapper over api.DeploymentAPI. Results are indented JSON,
// and backend errors are returned as tool errors carrying the backend's message.
// Deleting requires an explicit confirm=true argument, the same rule the
// dashboard enforces with its confirmation dialog.
package mcptools
