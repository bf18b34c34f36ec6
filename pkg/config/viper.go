package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/dify/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the DIFY_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (DIFY_SERVER_API_KEY, DIFY_SERVER_BASE_URL, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	setViperDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("DIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// FromViper builds a Config from the merged viper view so that flags and
// environment variables are reflected. Unset fields fall back to defaults.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Version: v.GetInt("version"),
		Server: ServerConfig{
			BaseURL:       strings.TrimRight(v.GetString("server.base_url"), "/"),
			APIKey:        v.GetString("server.api_key"),
			DatasetAPIKey: v.GetString("server.dataset_api_key"),
		},
		HTTP: HTTPConfig{
			Timeout:   v.GetString("http.timeout"),
			RateLimit: v.GetFloat64("http.rate_limit"),
			RateBurst: v.GetUint("http.rate_burst"),
		},
		Stream: StreamConfig{
			SilentEOF: v.GetBool("stream.silent_eof"),
			RawDump:   v.GetString("stream.raw_dump"),
		},
		Log: LogConfig{
			Debug:  v.GetBool("log.debug"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
		Tap: TapConfig{
			Enabled:   v.GetBool("tap.enabled"),
			Brokers:   brokers(v),
			Topic:     v.GetString("tap.topic"),
			Workers:   v.GetUint("tap.workers"),
			QueueSize: v.GetUint("tap.queue_size"),
		},
		Client: ClientConfig{
			User: v.GetString("client.user"),
			App:  v.GetString("client.app"),
		},
	}
	applyDefaults(cfg)
	return cfg
}

// brokers accepts either a TOML list or a comma separated env/flag value.
func brokers(v *viper.Viper) []string {
	var out []string
	for _, b := range v.GetStringSlice("tap.brokers") {
		out = append(out, SplitList(b)...)
	}
	return out
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Server
	v.SetDefault("server.base_url", d.Server.BaseURL)
	v.SetDefault("server.api_key", d.Server.APIKey)
	v.SetDefault("server.dataset_api_key", d.Server.DatasetAPIKey)

	// HTTP
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.rate_limit", d.HTTP.RateLimit)
	v.SetDefault("http.rate_burst", d.HTTP.RateBurst)

	// Stream
	v.SetDefault("stream.silent_eof", d.Stream.SilentEOF)
	v.SetDefault("stream.raw_dump", d.Stream.RawDump)

	// Log
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)

	// Tap
	v.SetDefault("tap.enabled", d.Tap.Enabled)
	v.SetDefault("tap.brokers", d.Tap.Brokers)
	v.SetDefault("tap.topic", d.Tap.Topic)
	v.SetDefault("tap.workers", d.Tap.Workers)
	v.SetDefault("tap.queue_size", d.Tap.QueueSize)

	// Client
	v.SetDefault("client.user", d.Client.User)
	v.SetDefault("client.app", d.Client.App)
}
