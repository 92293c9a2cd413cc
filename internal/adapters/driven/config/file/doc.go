// Package file persists cherche configuration as a TOML file under the
// config directory (~/.cherche by default). Values are addressed with
// dot-notation keys and written back as nested TOML tables.
package file
