package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config represents the persistent dify configuration stored as config.toml
// in the .dify/ directory. The TOML layout uses sections for logical grouping.
type Config struct {
	Version int          `toml:"version"`
	Server  ServerConfig `toml:"server"`
	HTTP    HTTPConfig   `toml:"http"`
	Stream  StreamConfig `toml:"stream"`
	Log     LogConfig    `toml:"log"`
	Tap     TapConfig    `toml:"tap"`
	Client  ClientConfig `toml:"client"`
}

// ServerConfig holds the platform endpoint and credentials.
// APIKey is the app key; DatasetAPIKey is the knowledge base key.
type ServerConfig struct {
	BaseURL       string `toml:"base_url,omitempty"`
	APIKey        string `toml:"api_key,omitempty"`
	DatasetAPIKey string `toml:"dataset_api_key,omitempty"`
}

// HTTPConfig holds outbound request settings.
type HTTPConfig struct {
	// Timeout is a Go duration string bounding a whole request, including
	// the time spent reading a streamed body.
	Timeout string `toml:"timeout,omitempty"`

	// RateLimit is the maximum number of requests per second. Zero disables
	// limiting.
	RateLimit float64 `toml:"rate_limit,omitempty"`
	RateBurst uint    `toml:"rate_burst,omitempty"`
}

// StreamConfig holds settings for streamed responses.
type StreamConfig struct {
	// SilentEOF ends a stream that closes without the done sentinel without
	// calling the completion hook.
	SilentEOF bool `toml:"silent_eof,omitempty"`

	// RawDump is a file path that receives every raw line of every stream.
	RawDump string `toml:"raw_dump,omitempty"`
}

// LogConfig holds CLI logging settings.
type LogConfig struct {
	Debug  bool   `toml:"debug,omitempty"`
	Format string `toml:"format,omitempty"`
	File   string `toml:"file,omitempty"`
}

// TapConfig holds settings for mirroring decoded stream events to Kafka.
type TapConfig struct {
	Enabled   bool     `toml:"enabled,omitempty"`
	Brokers   []string `toml:"brokers,omitempty"`
	Topic     string   `toml:"topic,omitempty"`
	Workers   uint     `toml:"workers,omitempty"`
	QueueSize uint     `toml:"queue_size,omitempty"`
}

// ClientConfig holds the identity the CLI presents to the platform.
type ClientConfig struct {
	// User is the end-user identifier sent with every request. When empty
	// the CLI generates one.
	User string `toml:"user,omitempty"`

	// App names the configured app for conversation tracking and tap records.
	App string `toml:"app,omitempty"`
}

// TimeoutDuration parses HTTP.Timeout. An empty value means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.HTTP.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid value for http.timeout: %w", err)
	}
	return d, nil
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

func boolKey(key string, field func(c *Config) *bool) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string { return strconv.FormatBool(*field(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			*field(c) = b
			return nil
		},
	}
}

func uintKey(key string, field func(c *Config) *uint) configKeyInfo {
	return configKeyInfo{
		get: func(c *Config) string {
			if *field(c) == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(*field(c)), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			*field(c) = uint(n)
			return nil
		},
	}
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"server.base_url": {
		get: func(c *Config) string { return c.Server.BaseURL },
		set: func(c *Config, v string) error { c.Server.BaseURL = strings.TrimRight(v, "/"); return nil },
	},
	"server.api_key": {
		get: func(c *Config) string { return c.Server.APIKey },
		set: func(c *Config, v string) error { c.Server.APIKey = v; return nil },
	},
	"server.dataset_api_key": {
		get: func(c *Config) string { return c.Server.DatasetAPIKey },
		set: func(c *Config, v string) error { c.Server.DatasetAPIKey = v; return nil },
	},
	"http.timeout": {
		get: func(c *Config) string { return c.HTTP.Timeout },
		set: func(c *Config, v string) error {
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid value for http.timeout: %w", err)
			}
			c.HTTP.Timeout = v
			return nil
		},
	},
	"http.rate_limit": {
		get: func(c *Config) string {
			if c.HTTP.RateLimit == 0 {
				return ""
			}
			return strconv.FormatFloat(c.HTTP.RateLimit, 'f', -1, 64)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("invalid value for http.rate_limit: %w", err)
			}
			if f < 0 {
				return fmt.Errorf("invalid value for http.rate_limit: %s is negative", v)
			}
			c.HTTP.RateLimit = f
			return nil
		},
	},
	"http.rate_burst":   uintKey("http.rate_burst", func(c *Config) *uint { return &c.HTTP.RateBurst }),
	"stream.silent_eof": boolKey("stream.silent_eof", func(c *Config) *bool { return &c.Stream.SilentEOF }),
	"stream.raw_dump": {
		get: func(c *Config) string { return c.Stream.RawDump },
		set: func(c *Config, v string) error { c.Stream.RawDump = v; return nil },
	},
	"log.debug": boolKey("log.debug", func(c *Config) *bool { return &c.Log.Debug }),
	"log.format": {
		get: func(c *Config) string { return c.Log.Format },
		set: func(c *Config, v string) error {
			switch v {
			case LogFormatPretty, LogFormatJSON, LogFormatText:
				c.Log.Format = v
				return nil
			default:
				return fmt.Errorf("invalid value for log.format: %q (available: %s, %s, %s)",
					v, LogFormatPretty, LogFormatJSON, LogFormatText)
			}
		},
	},
	"log.file": {
		get: func(c *Config) string { return c.Log.File },
		set: func(c *Config, v string) error { c.Log.File = v; return nil },
	},
	"tap.enabled": boolKey("tap.enabled", func(c *Config) *bool { return &c.Tap.Enabled }),
	"tap.brokers": {
		get: func(c *Config) string { return strings.Join(c.Tap.Brokers, ",") },
		set: func(c *Config, v string) error { c.Tap.Brokers = SplitList(v); return nil },
	},
	"tap.topic": {
		get: func(c *Config) string { return c.Tap.Topic },
		set: func(c *Config, v string) error { c.Tap.Topic = v; return nil },
	},
	"tap.workers":    uintKey("tap.workers", func(c *Config) *uint { return &c.Tap.Workers }),
	"tap.queue_size": uintKey("tap.queue_size", func(c *Config) *uint { return &c.Tap.QueueSize }),
	"client.user": {
		get: func(c *Config) string { return c.Client.User },
		set: func(c *Config, v string) error { c.Client.User = v; return nil },
	},
	"client.app": {
		get: func(c *Config) string { return c.Client.App },
		set: func(c *Config, v string) error { c.Client.App = v; return nil },
	},
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
