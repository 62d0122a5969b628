// Package component defines the lifecycle contract shared by the gateway's
// long-running pieces and a registry that starts them in order and stops
// them in reverse.
package component
