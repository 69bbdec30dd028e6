package config

import "time"

// Config holds runtime settings for the Horios CLI. The session token is
// never part of it; it lives only in the running process.
type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
}

// LoadDefaults targets a local server with a 40s request timeout.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 40 * time.Second
}

// LoadConfig applies defaults, then the JSON file, the environment and
// finally flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
