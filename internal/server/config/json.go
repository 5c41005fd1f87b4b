package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/credvault/internal/flagx"
	"github.com/dmitrijs2005/credvault/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations
// accept both "1m" style strings and integer nanoseconds. Omitted keys
// leave the current value untouched.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	EncryptedTokens             *bool          `json:"encrypted_tokens"`
	PasswordRounds              *int           `json:"password_rounds"`
	HashTimeout                 timex.Duration `json:"hash_timeout"`
	LogLevel                    string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c / -config.
// Without the flag nothing is loaded. An unreadable or invalid file panics,
// since the server cannot start with a half-applied configuration.
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

	if c.EndpointAddrGRPC != "" {
		config.EndpointAddrGRPC = c.EndpointAddrGRPC
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.EncryptedTokens != nil {
		config.EncryptedTokens = *c.EncryptedTokens
	}
	if c.PasswordRounds != nil {
		config.PasswordRounds = *c.PasswordRounds
	}
	if c.HashTimeout.Duration != 0 {
		config.HashTimeout = c.HashTimeout.Duration
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
