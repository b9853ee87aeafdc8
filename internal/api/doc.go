// Package api is the client side of the deployment backend's REST contract.
//
// The TUI, the one-shot CLI commands and the MCP tools all talk to the backend
// through the DeploymentAPI interface, so each of them can be tested against a
// fake or against the mock backend served from httptest.
//
// Errors come in two kinds:
//
//  1. *APIError - the backend answered with a non-2xx status. Message carries the
//     {error} text of the body and is shown to the user verbatim.
//
//  2. *TransportError - the request never got an answer, or the answer could not
//     be decoded. These are logged and rendered as a generic placeholder.
//
// GET /api/resources is special: a body carrying "error" is returned as data in
// ResourceSnapshot.Error, whatever the HTTP status.
package api
