// Package config loads pipeline settings from a YAML file, ZEEMAN_*
// environment variables and command-line flags, validates them and converts
// them to a halpha.Config.
package config
