// Package deploy holds the deployment domain shared by the dashboard, the CLI,
// the MCP tools and the mock backend: wire types, French status labels,
// per-status actions, the framework catalog and creation-request validation.
package deploy
