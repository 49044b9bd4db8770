// Package config loads runtime configuration for the notes CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     notes API base URL (default http://localhost:5000)
//	-l string     login callback listener address (default 127.0.0.1:3000)
//	-d string     SQLite file for the session token (default notes.db)
//	-t int        request timeout in seconds (default 10)
//	-v            debug logging
//	-ephemeral    keep the session token in memory only
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:5000",
//	  "callback_addr": "127.0.0.1:3000",
//	  "database_path": "notes.db",
//	  "request_timeout": "10s",
//	  "verbose": false
//	}
//
// Environment variables are not consulted.
package config
