package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Supported values for OTEL_EXPORTER_OTLP_PROTOCOL.
const (
	ProtocolHTTP = "http/protobuf"
	ProtocolGRPC = "grpc"
)

// Supported values for OTEL_TRACES_EXPORTER.
const (
	ExporterOTLP    = "otlp"
	ExporterConsole = "console"
	ExporterNone    = "none"
)

// Config holds the complete application configuration, loaded from
// environment variables with an optional .env file.
type Config struct {
	Host              string
	Port              int
	ServiceName       string
	ServiceVersion    string
	OTLPEndpoint      string
	OTLPProtocol      string
	TracesExporter    string
	AutoTraceEnabled  bool
	AutoTraceInterval time.Duration
	ShutdownTimeout   time.Duration
}

// New loads the configuration from the environment and validates it.
func New() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		Host:              getEnv("HOST", "0.0.0.0"),
		Port:              getEnvAsInt("PORT", 8000),
		ServiceName:       getEnv("SERVICE_NAME", "flask-app"),
		ServiceVersion:    getEnv("SERVICE_VERSION", "1.0.0"),
		OTLPEndpoint:      getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		OTLPProtocol:      getEnv("OTEL_EXPORTER_OTLP_PROTOCOL", ProtocolHTTP),
		TracesExporter:    getEnv("OTEL_TRACES_EXPORTER", ExporterOTLP),
		AutoTraceEnabled:  getEnvAsBool("AUTO_TRACE_ENABLED", true),
		AutoTraceInterval: time.Duration(getEnvAsInt("AUTO_TRACE_INTERVAL", 30)) * time.Second,
		ShutdownTimeout:   getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that every configuration field holds a usable value.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d is outside the valid range", c.Port)
	}
	if c.ServiceName == "" {
		return fmt.Errorf("service name is required")
	}
	if c.OTLPEndpoint == "" {
		return fmt.Errorf("OTLP endpoint is required")
	}
	if _, err := url.Parse(c.OTLPEndpoint); err != nil {
		return fmt.Errorf("OTLP endpoint is not a valid URL: %w", err)
	}
	switch c.OTLPProtocol {
	case ProtocolHTTP, ProtocolGRPC:
	default:
		return fmt.Errorf("unsupported OTLP protocol %q", c.OTLPProtocol)
	}
	switch c.TracesExporter {
	case ExporterOTLP, ExporterConsole, ExporterNone:
	default:
		return fmt.Errorf("unsupported traces exporter %q", c.TracesExporter)
	}
	if c.AutoTraceInterval <= 0 {
		return fmt.Errorf("auto trace interval must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

// Address returns the host:port pair the HTTP server listens on.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BaseURL returns the URL under which the service reaches its own endpoints.
func (c *Config) BaseURL() string {
	return fmt.Sprintf("http://localhost:%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
