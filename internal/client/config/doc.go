// Package config loads runtime configuration for the TruthLens CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-m bool     use the local mock backend instead of HTTP
//	-d bool     development mode
//	-t int      request timeout (seconds)
//	-s string   path to the session store database file
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.truthlens.example",
//	  "mock": false,
//	  "request_timeout": "15s",
//	  "store_path": "truthlens.db"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
