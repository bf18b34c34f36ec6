package config

const (
	defaultBaseURL = "https://api.dify.ai/v1"

	defaultTimeout   = "5m"
	defaultRateBurst = 1

	defaultLogFormat = LogFormatPretty

	defaultTapBroker    = "localhost:9092"
	defaultTapTopic     = "dify.stream.events"
	defaultTapWorkers   = 3
	defaultTapQueueSize = 256

	defaultApp = "default"
)

// Log formats accepted by log.format.
const (
	LogFormatPretty = "pretty"
	LogFormatJSON   = "json"
	LogFormatText   = "text"
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Server: ServerConfig{
			BaseURL: defaultBaseURL,
		},
		HTTP: HTTPConfig{
			Timeout:   defaultTimeout,
			RateBurst: defaultRateBurst,
		},
		Log: LogConfig{
			Format: defaultLogFormat,
		},
		Tap: TapConfig{
			Brokers:   []string{defaultTapBroker},
			Topic:     defaultTapTopic,
			Workers:   defaultTapWorkers,
			QueueSize: defaultTapQueueSize,
		},
		Client: ClientConfig{
			App: defaultApp,
		},
	}
}
