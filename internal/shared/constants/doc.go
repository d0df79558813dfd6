// Package constants centralizes configuration defaults shared across the CLI.
//
// Endpoint defaults, request budgets, and the scoring thresholds live here so
// cmd/, internal/breach and internal/strength agree on the same numbers
// without importing each other.
package constants
