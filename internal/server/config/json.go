package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/aleksivanovs/studentcompanion/internal/flagx"
)

// JsonConfig is the intermediate DTO used only for reading JSON
// configuration files. Duration fields are integers (minutes or seconds as
// named); after unmarshalling the values are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                string `json:"endpoint_addr"`
	DatabaseDSN                 string `json:"database_dsn"`
	SecretKey                   string `json:"secret_key"`
	AccessTokenValidityMinutes  int    `json:"access_token_validity_minutes"`
	RefreshTokenValidityMinutes int    `json:"refresh_token_validity_minutes"`
	S3RootUser                  string `json:"s3_root_user"`
	S3RootPassword              string `json:"s3_root_password"`
	S3Bucket                    string `json:"s3_bucket"`
	S3Region                    string `json:"s3_region"`
	S3BaseEndpoint              string `json:"s3_base_endpoint"`
	QuoteAPIBaseURL             string `json:"quote_api_base_url"`
	QuoteAPITags                string `json:"quote_api_tags"`
	QuoteFetchTimeoutSeconds    int    `json:"quote_fetch_timeout_seconds"`
}

// parseJson loads configuration values from the JSON file selected by the
// -c or -config command-line flags, if any. Empty fields in the file leave
// the corresponding Config values untouched. If the file cannot be read or
// contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
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

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityMinutes) * time.Minute
	}
	if c.RefreshTokenValidityMinutes > 0 {
		config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityMinutes) * time.Minute
	}
	if c.S3RootUser != "" {
		config.S3RootUser = c.S3RootUser
	}
	if c.S3RootPassword != "" {
		config.S3RootPassword = c.S3RootPassword
	}
	if c.S3Bucket != "" {
		config.S3Bucket = c.S3Bucket
	}
	if c.S3Region != "" {
		config.S3Region = c.S3Region
	}
	if c.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.QuoteAPIBaseURL != "" {
		config.QuoteAPIBaseURL = c.QuoteAPIBaseURL
	}
	if c.QuoteAPITags != "" {
		config.QuoteAPITags = c.QuoteAPITags
	}
	if c.QuoteFetchTimeoutSeconds > 0 {
		config.QuoteFetchTimeout = time.Duration(c.QuoteFetchTimeoutSeconds) * time.Second
	}
}
