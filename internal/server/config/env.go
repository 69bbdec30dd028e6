package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Environment variable names, lower-cased by the env provider. The first
// six are the names the deployment has always used.
var envStrings = map[string]func(*Config) *string{
	"database_url":             func(c *Config) *string { return &c.DatabaseDSN },
	"jwt_secret":               func(c *Config) *string { return &c.SecretKey },
	"jwt_algorithm":            func(c *Config) *string { return &c.TokenAlgorithm },
	"mux_token_id":             func(c *Config) *string { return &c.MuxTokenID },
	"mux_token_secret":         func(c *Config) *string { return &c.MuxTokenSecret },
	"mux_base_url":             func(c *Config) *string { return &c.MuxBaseURL },
	"mux_stream_base_url":      func(c *Config) *string { return &c.MuxStreamBaseURL },
	"grpc_addr":                func(c *Config) *string { return &c.EndpointAddrGRPC },
	"ops_addr":                 func(c *Config) *string { return &c.OpsAddr },
	"s3_root_user":             func(c *Config) *string { return &c.S3RootUser },
	"s3_root_password":         func(c *Config) *string { return &c.S3RootPassword },
	"s3_bucket":                func(c *Config) *string { return &c.S3Bucket },
	"s3_region":                func(c *Config) *string { return &c.S3Region },
	"s3_base_endpoint":         func(c *Config) *string { return &c.S3BaseEndpoint },
	"bootstrap_admin_email":    func(c *Config) *string { return &c.BootstrapAdminEmail },
	"bootstrap_admin_password": func(c *Config) *string { return &c.BootstrapAdminPassword },
	"log_format":               func(c *Config) *string { return &c.LogFormat },
	"log_level":                func(c *Config) *string { return &c.LogLevel },
}

// parseEnv overlays values from the process environment. Empty variables
// count as unset. Integer variables that fail to parse panic, like a bad
// flag would.
func parseEnv(config *Config) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		panic(err)
	}

	for key, field := range envStrings {
		if v := k.String(key); v != "" {
			*field(config) = v
		}
	}

	if v, ok := envInt(k, "access_token_expire_minutes"); ok {
		config.AccessTokenValidityDuration = time.Duration(v) * time.Minute
	}
	if v, ok := envInt(k, "provider_timeout_seconds"); ok {
		config.ProviderTimeout = time.Duration(v) * time.Second
	}
	if v, ok := envInt(k, "bcrypt_cost"); ok {
		config.BcryptCost = v
	}
}

func envInt(k *koanf.Koanf, key string) (int, bool) {
	raw := k.String(key)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		panic(err)
	}
	return v, true
}
