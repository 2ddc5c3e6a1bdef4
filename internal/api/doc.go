// Package api is the typed client for the RFRP controller's REST API.
//
// # Overview
//
// Every controller endpoint wraps its response in a uniform envelope:
//
//	{"success": bool, "data": ..., "message": string}
//
// Client decodes the envelope internally and exposes exactly one calling
// convention: each method returns the unwrapped payload and an error. A
// success:false envelope or non-2xx status becomes an *APIError carrying
// the server's message.
//
// # Authentication
//
// If a TokenSource is configured, its token is attached to every request as
// an Authorization bearer header. 401 responses are classified as hard
// (session invalid: auth-route path, or message mentioning "token",
// "unauthorized", or "not authenticated") or soft (permission problem).
// Hard failures invoke the registered AuthFailureHandler; soft failures
// are logged and returned without side effects. This is the only component
// allowed to tear down a session as a side effect of a network call.
//
// # Resource groups
//
//   - auth.go: login, register, registration status, current user
//   - users.go: user CRUD, node binding, signed traffic quota deltas
//   - nodes.go: node CRUD (the /clients endpoints)
//   - proxies.go: proxy CRUD and per-node listing
//   - traffic.go: traffic overviews and dashboard aggregates
//   - system.go: system configs, batch updates, restart
//
// There are no retries and no request cancellation beyond the caller's
// context; resilience, if wanted, is a wrapping policy.
package api
