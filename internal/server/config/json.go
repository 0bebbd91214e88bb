package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/twit2/t2-auth/internal/flagx"
	"github.com/twit2/t2-auth/internal/timex"
)

// JsonConfig is the intermediate DTO used only for reading JSON configuration
// files. Duration fields accept both "10m" strings and integer nanoseconds.
// After unmarshalling, non-zero fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	RPCBindEndpoint       string         `json:"rpc_bind_endpoint"`
	ProfilePeerEndpoint   string         `json:"profile_peer_endpoint"`
	HashAlgo              string         `json:"hash_algo"`
	HashCost              int            `json:"hash_cost"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	SigningKeyHex         string         `json:"signing_key_hex"`
	ProfileCallTimeout    timex.Duration `json:"profile_call_timeout"`
	UsernameMinLen        int            `json:"username_min_len"`
	UsernameMaxLen        int            `json:"username_max_len"`
	PasswordMinLen        int            `json:"password_min_len"`
	PasswordMaxLen        int            `json:"password_max_len"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. When no file is given the
// Config is left untouched; an unreadable or malformed file panics, as a
// half-applied configuration is worse than not starting.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.RPCBindEndpoint != "" {
		config.RPCBindEndpoint = c.RPCBindEndpoint
	}
	if c.ProfilePeerEndpoint != "" {
		config.ProfilePeerEndpoint = c.ProfilePeerEndpoint
	}
	if c.HashAlgo != "" {
		config.HashAlgo = c.HashAlgo
	}
	if c.HashCost != 0 {
		config.HashCost = c.HashCost
	}
	if c.TokenValidityDuration.Duration != 0 {
		config.TokenValidityDuration = time.Duration(c.TokenValidityDuration.Duration)
	}
	if c.SigningKeyHex != "" {
		config.SigningKeyHex = c.SigningKeyHex
	}
	if c.ProfileCallTimeout.Duration != 0 {
		config.ProfileCallTimeout = time.Duration(c.ProfileCallTimeout.Duration)
	}
	if c.UsernameMinLen != 0 {
		config.UsernameMinLen = c.UsernameMinLen
	}
	if c.UsernameMaxLen != 0 {
		config.UsernameMaxLen = c.UsernameMaxLen
	}
	if c.PasswordMinLen != 0 {
		config.PasswordMinLen = c.PasswordMinLen
	}
	if c.PasswordMaxLen != 0 {
		config.PasswordMaxLen = c.PasswordMaxLen
	}
}
