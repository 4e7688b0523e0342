// Package config builds the client Config.
//
// Values are layered: LoadDefaults first, then the JSON file named by -c or
// -config, then command-line flags:
//
//	-a       document server address
//	-i       online check interval in seconds
//	-d       SQLite database path; a sibling .log file receives sync logs
//	-t       device access token (prompted for on a terminal when empty)
//	-async   push local writes in the background
//
// Durations in the JSON file go through timex.Duration ("3s" or nanoseconds):
//
//	{"server_endpoint_addr": "127.0.0.1:50051", "online_check_interval": "3s",
//	 "database_path": "ledgersync.db", "access_token": "", "async_push": true}
package config
