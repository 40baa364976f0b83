package config

import (
	"flag"
	"strings"
	"time"

	"github.com/dmitrijs2005/projecthub/internal/flagx"
)

var serverFlags = []string{"-a", "-g", "-d", "-s", "-t", "-r", "-o", "-p", "-k", "-x"}

// parseFlags overlays Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-g string   gRPC bind address (e.g. ":50051")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-t int      token validity, minutes
//	-r string   revocation backend: postgres | memory
//	-o int      store timeout, milliseconds
//	-p string   revocation purge cron schedule
//	-k bool     Secure flag on the token cookie
//	-x string   comma separated CORS origins
//
// Unknown flags are filtered out first so the config file flag and flags of
// other components do not collide. Invalid values panic.
func parseFlags(config *Config, args []string) {
	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity duration (in minutes)")

	fs.StringVar(&config.RevocationBackend, "r", config.RevocationBackend, "revocation backend (postgres|memory)")

	storeTimeout := fs.Int("o", int(config.StoreTimeout.Milliseconds()), "store timeout (in milliseconds)")

	fs.StringVar(&config.RevocationPurgeSchedule, "p", config.RevocationPurgeSchedule, "revocation purge schedule (cron spec)")
	fs.BoolVar(&config.CookieSecure, "k", config.CookieSecure, "secure token cookie")

	origins := fs.String("x", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma separated")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
	config.StoreTimeout = time.Duration(*storeTimeout) * time.Millisecond
	config.AllowedOrigins = flagx.SplitList(*origins)
}
