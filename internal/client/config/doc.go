// Package config loads runtime configuration for the Model Society CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   API base URL
//	-t int      request timeout (seconds)
//	-r int      max retries for idempotent requests
//	-d string   data directory
//	-l string   log level
//	-m string   metrics listen address
//
// # JSON schema
//
// Durations are timex.Duration values, either strings like "3s" or integer
// nanoseconds. Keys left out keep their previous value:
//
//	{
//	  "base_url": "https://api.example",
//	  "request_timeout": "10s",
//	  "max_retries": 2,
//	  "retry_backoff": "200ms",
//	  "data_dir": "~/.msclient",
//	  "db_file": "session.db",
//	  "store_name": "session",
//	  "log_level": "info",
//	  "metrics_addr": "127.0.0.1:9100"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
