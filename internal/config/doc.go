// Package config loads formwork.json, the configuration file read by
// the formwork CLI.
package config
