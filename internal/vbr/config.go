package vbr

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL is the VBR API base URL used when none is configured
	DefaultAPIURL = "https://10.1.1.1:9419"

	// DefaultAPIVersion is the x-api-version header value the VBR REST API requires
	DefaultAPIVersion = "1.2-rev0"

	// tokenPath is the relative path of the password-grant token endpoint
	tokenPath = "/api/oauth2/token"
)

// Environment variable names for the VBR connection settings.
const (
	envAPIURL   = "VBR_API_URL"
	envUsername = "VBR_USERNAME"
	envPassword = "VBR_PASSWORD"
)

// Config contains the connection settings for a VBR server
type Config struct {
	// APIURL is the base URL of the VBR REST API (default: https://10.1.1.1:9419)
	APIURL string `yaml:"api_url"`

	// Username is the VBR account used for the password-grant token request.
	// Leaving it (or Password) empty skips authentication entirely.
	Username string `yaml:"username"`

	// Password is the VBR account password
	Password string `yaml:"password"`

	// APIVersion is the x-api-version header value (default: 1.2-rev0)
	APIVersion string `yaml:"api_version"`
}

// LoadConfigFile parses a YAML config file into a Config
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// ApplyEnvironment overrides config fields from the VBR_* environment
// variables. A set environment variable wins over a config file value.
func (c *Config) ApplyEnvironment() {
	if v, ok := os.LookupEnv(envAPIURL); ok {
		c.APIURL = v
	}
	if v, ok := os.LookupEnv(envUsername); ok {
		c.Username = v
	}
	if v, ok := os.LookupEnv(envPassword); ok {
		c.Password = v
	}
}

// WithDefaults returns the config with unset fields replaced by defaults
func (c *Config) WithDefaults() *Config {
	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	return c
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("VBR API URL is required")
	}

	parsedURL, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid VBR API URL: %w", err)
	}

	if !parsedURL.IsAbs() {
		return fmt.Errorf("VBR API URL must be absolute: %s", c.APIURL)
	}

	if parsedURL.Scheme != "https" && parsedURL.Scheme != "http" {
		return fmt.Errorf("VBR API URL must use http or https scheme: %s", c.APIURL)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("VBR API URL missing host: %s", c.APIURL)
	}

	return nil
}

// tokenURL returns the absolute URL of the token endpoint
func (c *Config) tokenURL() string {
	return c.APIURL + tokenPath
}
