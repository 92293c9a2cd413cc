// Package driving defines the driving ports: interfaces the core exposes
// to inbound adapters (CLI, TUI, MCP).
package driving
