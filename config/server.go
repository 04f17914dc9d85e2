package config

import "fmt"

// ServerConfig defines settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address of the API server.
	Addr string `json:"addr"`
	// AllowedOrigins configures CORS for browser dashboards. An empty
	// list allows any origin.
	AllowedOrigins []string `json:"allowed_origins"`
	// ReleaseMode silences gin's debug output in production.
	ReleaseMode bool `json:"release_mode"`
	// MaxUploadBytes caps the size of an uploaded plan file.
	MaxUploadBytes int64 `json:"max_upload_bytes"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 10 << 20
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
