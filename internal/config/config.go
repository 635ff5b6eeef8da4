// Package config loads the acceptance gateway configuration from environment
// variables, applying defaults and validating everything on startup.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all gateway configuration.
type Config struct {
	Server  ServerConfig
	Decode  DecodeConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading a request (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing a response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout bounds graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// DecodeConfig holds upload decoding settings.
type DecodeConfig struct {
	// MaxFileSize is the largest accepted request body in bytes (default: 32MB)
	MaxFileSize int64 `env:"DECODE_MAX_FILE_SIZE" default:"33554432"`

	// MaxExpandedSize caps a compressed body after decompression (default: 128MB)
	MaxExpandedSize int64 `env:"DECODE_MAX_EXPANDED_SIZE" default:"134217728"`

	// MaxConcurrent is the number of decodes that may run at once (default: 8)
	MaxConcurrent int `env:"DECODE_MAX_CONCURRENT" default:"8"`

	// MaxWait is how long a request waits for a decode slot (default: 10s)
	MaxWait time.Duration `env:"DECODE_MAX_WAIT" default:"10s"`

	// Delimiter is the default text delimiter; `\t` and "tab" select tab (default: ,)
	Delimiter string `env:"DECODE_DELIMITER" default:","`

	// Columns is the default text column mode: two or four (default: two)
	Columns string `env:"DECODE_COLUMNS" default:"two"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
