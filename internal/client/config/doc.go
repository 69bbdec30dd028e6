// Package config loads runtime configuration for the Horios CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. HORIOS_SERVER_ADDR and HORIOS_REQUEST_TIMEOUT.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   address:port of the Horios gRPC endpoint
//	-t int      per-request timeout (seconds)
//
// # JSON schema
//
// Durations are strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s"
//	}
package config
