// Package driven defines the driven ports: interfaces the core consumes,
// implemented by outbound adapters (content stores, history storage,
// navigation).
package driven
