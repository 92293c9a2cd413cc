// Package domain contains the core types for site search: the static
// catalog entries, remote blog documents, the unified result projection,
// and the bounded recent-query log. The domain layer has no dependencies
// on adapters or external services.
package domain
