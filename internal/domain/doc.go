// Package domain defines core data models and interfaces shared across mcpi.
// It contains plain types (points, statistics, snapshots, run records),
// contracts (interfaces) and the error kinds only.
package domain
