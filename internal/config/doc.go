// Package config provides the configuration of a11yscan: replay limits,
// report selection, and per-source settings read from an optional YAML file.
package config
