// Package config loads runtime configuration for the ProjectHub CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Supported flags
//
//	-a string   address:port of the server gRPC endpoint
//	-t int      per-request timeout (seconds)
//
// JSON uses timex.Duration, so the timeout may be "10s" or nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s"
//	}
package config
