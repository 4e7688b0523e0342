package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/flagx"
)

// Flags lists every short flag the server understands. cmd/server uses it to
// find positional subcommands.
var Flags = []string{"-a", "-d", "-s", "-t", "-storage", "-u", "-p", "-b", "-g", "-e", "-redis", "-redis-channel", "-c", "-config"}

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string              gRPC bind address (e.g., ":50051")
//	-storage string        document backend: memory, postgres or s3
//	-d string              PostgreSQL DSN
//	-s string              JWT HMAC secret key
//	-t int                 device token validity, minutes
//	-u string              S3 root user
//	-p string              S3 root password
//	-b string              S3 bucket name
//	-g string              S3 region
//	-e string              S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-redis string          Redis address for cross-instance change fan-out
//	-redis-channel string  Redis Pub/Sub channel
//
// os.Args is filtered with flagx.FilterArgs first, so subcommands and the
// -c/-config flag do not reach the flag set.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-storage", "-u", "-p", "-b", "-g", "-e", "-redis", "-redis-channel"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.StorageBackend, "storage", config.StorageBackend, "document storage backend (memory|postgres|s3)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidityDuration := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token_validity_duration (in minutes)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "Redis address for change notifications")
	fs.StringVar(&config.RedisChannel, "redis-channel", config.RedisChannel, "Redis Pub/Sub channel")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidityDuration) * time.Minute
}
