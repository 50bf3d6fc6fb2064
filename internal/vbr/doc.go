// Package vbr provides read-only access to the Veeam Backup & Replication REST API
// and exposes it as MCP tools.
//
// Every operation builds a fresh authenticated session (password-grant token,
// non-fatal on failure) and probes an ordered list of candidate API endpoints
// until one answers, tolerating API layout differences across VBR deployments.
//
// # Key Components
//
//   - Config: connection settings from flags, environment or a YAML file
//   - Session: per-invocation HTTP transport with API-version and bearer headers
//   - Client: the three query operations (repositories, repository by ID, jobs)
//   - MCPServer: exposes the operations as MCP tools over stdio or streamable-http
//   - REPL: interactive front end over the same operations
//   - Logger: formatted logging with per-run log files and HTTP tracing
package vbr
