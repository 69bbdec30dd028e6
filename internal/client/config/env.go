package config

import (
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "HORIOS_"

// parseEnv overlays HORIOS_SERVER_ADDR and HORIOS_REQUEST_TIMEOUT (a Go
// duration such as "15s"). Empty values are ignored; a malformed timeout
// panics like a bad flag.
func parseEnv(cfg *Config) {
	k := koanf.New(".")
	strip := func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}
	if err := k.Load(env.Provider(envPrefix, ".", strip), nil); err != nil {
		panic(err)
	}

	if v := k.String("server_addr"); v != "" {
		cfg.ServerEndpointAddr = v
	}
	if v := k.String("request_timeout"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}
