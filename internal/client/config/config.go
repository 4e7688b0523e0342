package config

import "time"

// Config holds runtime settings for the sync client.
//
// Fields:
//   - ServerEndpointAddr: host:port of the document server.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath: SQLite file backing the local store.
//   - AccessToken: device token sent with every remote call.
//   - AsyncPush: push local writes in the background instead of inline.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	DatabasePath        string
	AccessToken         string
	AsyncPush           bool
}

// DefaultOnlineCheckInterval is used when no positive interval is configured.
const DefaultOnlineCheckInterval = 3 * time.Second

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = DefaultOnlineCheckInterval
	c.DatabasePath = "ledgersync.db"
	c.AccessToken = ""
	c.AsyncPush = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
