package config

import (
	"flag"
	"os"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/flagx"
)

var serverFlags = []string{
	"-a", "-m", "-d", "-s", "-alg", "-t", "-bcrypt-cost",
	"-mux-id", "-mux-secret", "-mux-url", "-stream-url", "-provider-timeout",
	"-u", "-p", "-b", "-g", "-e",
	"-admin-email", "-admin-password", "-log-format", "-log-level",
}

// parseFlags populates Config from command-line flags.
//
// Supported flags:
//
//	-a string                gRPC bind address (e.g., ":50051")
//	-m string                ops HTTP bind address for /health and /metrics
//	-d string                PostgreSQL DSN, or memory://
//	-s string                token signing secret
//	-alg string              signing algorithm (HS256, HS384, HS512)
//	-t int                   access token validity, minutes
//	-bcrypt-cost int         bcrypt work factor
//	-mux-id, -mux-secret     Mux API credentials
//	-mux-url, -stream-url    Mux API and stream base URLs
//	-provider-timeout int    provider call timeout, seconds
//	-u, -p, -b, -g, -e       S3 user, password, bucket, region, endpoint
//	-admin-email string      admin account ensured at start-up
//	-admin-password string   its password
//	-log-format, -log-level  logging output
//
// Duration flags are integers and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.OpsAddr, "m", config.OpsAddr, "address and port for health and metrics")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.TokenAlgorithm, "alg", config.TokenAlgorithm, "token signing algorithm")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")
	fs.IntVar(&config.BcryptCost, "bcrypt-cost", config.BcryptCost, "bcrypt cost")

	fs.StringVar(&config.MuxTokenID, "mux-id", config.MuxTokenID, "Mux token id")
	fs.StringVar(&config.MuxTokenSecret, "mux-secret", config.MuxTokenSecret, "Mux token secret")
	fs.StringVar(&config.MuxBaseURL, "mux-url", config.MuxBaseURL, "Mux API base URL")
	fs.StringVar(&config.MuxStreamBaseURL, "stream-url", config.MuxStreamBaseURL, "playback stream base URL")
	providerTimeout := fs.Int("provider-timeout", int(config.ProviderTimeout.Seconds()), "provider timeout (in seconds)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.BootstrapAdminEmail, "admin-email", config.BootstrapAdminEmail, "bootstrap admin email")
	fs.StringVar(&config.BootstrapAdminPassword, "admin-password", config.BootstrapAdminPassword, "bootstrap admin password")
	fs.StringVar(&config.LogFormat, "log-format", config.LogFormat, "log format: json or console")
	fs.StringVar(&config.LogLevel, "log-level", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.ProviderTimeout = time.Duration(*providerTimeout) * time.Second
}
