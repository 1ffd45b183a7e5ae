// Package history reads persisted run records and pools their counts.
package history
