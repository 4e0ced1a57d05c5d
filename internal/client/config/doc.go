// Package config loads runtime configuration for the authshell client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c / -config, or $AUTHSHELL_CONFIG.
//  3. AUTHSHELL_* environment variables (a .env file in the working
//     directory is loaded into the environment at startup).
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the authentication API
//	-t int      per-request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-d string   path of the local SQLite storage file
//	-l string   log level: debug, info, warn, error
//	-f string   log format: text or json
//	-u          unwrap the {user, token} envelope on login
//
// # JSON schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:8000",
//	  "request_timeout": "10s",
//	  "online_check_interval": "5s",
//	  "database_file": "authshell.db",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "unwrap_login_envelope": false
//	}
//
// Keys missing from the file keep their previous value.
//
// # Environment
//
//	AUTHSHELL_SERVER_BASE_URL, AUTHSHELL_REQUEST_TIMEOUT ("10s"),
//	AUTHSHELL_ONLINE_CHECK_INTERVAL ("5s"), AUTHSHELL_DATABASE_FILE,
//	AUTHSHELL_LOG_LEVEL, AUTHSHELL_LOG_FORMAT, AUTHSHELL_UNWRAP_LOGIN_ENVELOPE
//
// Unset variables keep the previous value.
package config
