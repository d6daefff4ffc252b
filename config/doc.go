// Package config loads htmllog command configuration from an optional YAML
// file and HTMLLOG_* environment variables. It covers the report identity
// (title, description, logs directory), diagnostic logging and the address
// used by the serve command.
package config
