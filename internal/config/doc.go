// Package config loads and validates the optional TOML configuration file.
//
// Flags always win over file values; the file carries machine-level
// settings (tool paths, cache location, logging) that rarely change
// between runs.
package config
