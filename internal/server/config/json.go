package config

import (
	"os"

	"github.com/Santi-a-ux/Horios-OTT/internal/flagx"
	"github.com/Santi-a-ux/Horios-OTT/internal/timex"
	"github.com/goccy/go-json"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "360m" style strings or integer nanoseconds. Absent keys leave the
// current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	OpsAddr                     *string         `json:"ops_addr"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SecretKey                   *string         `json:"secret_key"`
	TokenAlgorithm              *string         `json:"token_algorithm"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	BcryptCost                  *int            `json:"bcrypt_cost"`
	MuxTokenID                  *string         `json:"mux_token_id"`
	MuxTokenSecret              *string         `json:"mux_token_secret"`
	MuxBaseURL                  *string         `json:"mux_base_url"`
	MuxStreamBaseURL            *string         `json:"mux_stream_base_url"`
	ProviderTimeout             *timex.Duration `json:"provider_timeout"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	BootstrapAdminEmail         *string         `json:"bootstrap_admin_email"`
	BootstrapAdminPassword      *string         `json:"bootstrap_admin_password"`
	LogFormat                   *string         `json:"log_format"`
	LogLevel                    *string         `json:"log_level"`
}

// parseJson overlays the file named by -c/-config, if any. An unreadable
// file or invalid JSON panics: the process cannot start with a config it
// was told to use but could not read.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.OpsAddr, c.OpsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.TokenAlgorithm, c.TokenAlgorithm)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	setString(&config.MuxTokenID, c.MuxTokenID)
	setString(&config.MuxTokenSecret, c.MuxTokenSecret)
	setString(&config.MuxBaseURL, c.MuxBaseURL)
	setString(&config.MuxStreamBaseURL, c.MuxStreamBaseURL)
	if c.ProviderTimeout != nil {
		config.ProviderTimeout = c.ProviderTimeout.Duration
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.BootstrapAdminEmail, c.BootstrapAdminEmail)
	setString(&config.BootstrapAdminPassword, c.BootstrapAdminPassword)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
