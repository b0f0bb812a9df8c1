package server

import (
	"errors"
	"net/http"
	"time"
)

// Config holds server settings.
type Config struct {
	// Address to listen on (e.g. ":8080").
	Address string

	// Title of the page served at GET /.
	Title string

	// ReadTimeout bounds the wait for the next client message. Zero
	// disables it.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// MaxMessageSize is the largest client message accepted.
	MaxMessageSize int64

	// ClientBuffer is the number of frames queued per client before it is
	// dropped as too slow.
	ClientBuffer int

	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the Origin header of upgrade requests. Nil
	// accepts same-origin requests only.
	CheckOrigin func(*http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		Title:           "vtree",
		ReadTimeout:     0,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxMessageSize:  64 * 1024,
		ClientBuffer:    64,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Address == "" {
		return errors.New("server: address is required")
	}
	if c.MaxMessageSize <= 0 {
		return errors.New("server: max message size must be positive")
	}
	if c.ClientBuffer <= 0 {
		return errors.New("server: client buffer must be positive")
	}
	return nil
}
