package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/projecthub/internal/flagx"
	"github.com/dmitrijs2005/projecthub/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "24h" and integer nanoseconds are accepted.
// Absent fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SecretKey               *string         `json:"secret_key"`
	TokenValidityDuration   *timex.Duration `json:"token_validity_duration"`
	RevocationBackend       *string         `json:"revocation_backend"`
	StoreTimeout            *timex.Duration `json:"store_timeout"`
	RevocationPurgeSchedule *string         `json:"revocation_purge_schedule"`
	CookieSecure            *bool           `json:"cookie_secure"`
	AllowedOrigins          []string        `json:"allowed_origins"`
}

// parseJson loads the file named by -c/-config (if any) into config.
// An unreadable file or invalid JSON panics: the server must not start on a
// half-read configuration.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFile(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setIf(&config.RevocationBackend, c.RevocationBackend)
	setIf(&config.RevocationPurgeSchedule, c.RevocationPurgeSchedule)
	setIf(&config.CookieSecure, c.CookieSecure)

	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.StoreTimeout != nil {
		config.StoreTimeout = c.StoreTimeout.Duration
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
