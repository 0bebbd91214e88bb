package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays Config fields from environment variables. Unset variables
// leave the current value in place; unparsable numeric values panic so a
// misconfigured deployment fails fast instead of serving with defaults.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("HTTP_ADDR"); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("RPC_BIND_ENDPOINT"); ok {
		config.RPCBindEndpoint = v
	}
	if v, ok := os.LookupEnv("PROFILE_PEER_ENDPOINT"); ok {
		config.ProfilePeerEndpoint = v
	}
	if v, ok := os.LookupEnv("HASH_ALGO"); ok {
		config.HashAlgo = v
	}
	if v, ok := os.LookupEnv("HASH_ROUNDS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(err)
		}
		config.HashCost = n
	}
	if v, ok := os.LookupEnv("TOKEN_VALIDITY"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := os.LookupEnv("SIGNING_KEY_HEX"); ok {
		config.SigningKeyHex = v
	}
}
