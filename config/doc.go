// Package config loads and validates the gateway's configuration from
// YAML files, .env files, and environment variables, in that order of
// precedence (environment wins).
package config
