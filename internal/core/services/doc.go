// Package services implements the core search logic: the weighted fuzzy
// index over the static catalog and the aggregator that merges it with
// the asynchronous remote content search.
package services
