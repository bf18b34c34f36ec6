package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag is the single source of truth for a CLI flag.
// Commands reference flags by registry key rather than hard-coding names,
// shorthands, defaults, and descriptions inline. This prevents flag drift
// when the same logical flag appears on multiple commands (e.g., --silent-eof
// on "dify chat", "dify complete" and "dify workflow run").
type Flag struct {
	// Name is the long flag name (e.g. "base-url").
	Name string

	// Shorthand is the one-letter short flag (e.g. "k"). Empty for no shorthand.
	Shorthand string

	// ViperKey is the dotted config key this flag maps to (e.g. "server.base_url").
	ViperKey string

	// Description is the help text shown in --help output.
	Description string
}

// FlagSet is a mapping of flag names to Flag structs that hold their name,
// shorthand, viper key, etc.
type FlagSet map[string]Flag

// Flag registry keys.
// Use these constants when calling AddStringFlag, AddUintFlag, AddBoolFlag,
// and BindRegisteredFlags to avoid typos or drift from one command to another.
const (
	FlagBaseURL       = "base-url"
	FlagAPIKey        = "api-key"
	FlagDatasetAPIKey = "dataset-api-key"
	FlagTimeout       = "timeout"
	FlagSilentEOF     = "silent-eof"
	FlagRawDump       = "raw-dump"
	FlagDebug         = "debug"
	FlagLogFormat     = "log-format"
	FlagLogFile       = "log-file"
	FlagTap           = "tap"
	FlagTapTopic      = "tap-topic"
	FlagTapWorkers    = "tap-workers"
	FlagUser          = "user"
	FlagApp           = "app"
)

// Flags is the registry shared by every dify command.
var Flags = FlagSet{
	FlagBaseURL:       {Name: "base-url", ViperKey: "server.base_url", Description: "Dify API base URL"},
	FlagAPIKey:        {Name: "api-key", Shorthand: "k", ViperKey: "server.api_key", Description: "App API key"},
	FlagDatasetAPIKey: {Name: "dataset-api-key", ViperKey: "server.dataset_api_key", Description: "Knowledge base API key"},
	FlagTimeout:       {Name: "timeout", ViperKey: "http.timeout", Description: "Request timeout, including streamed bodies"},
	FlagSilentEOF:     {Name: "silent-eof", ViperKey: "stream.silent_eof", Description: "Do not treat end of stream without [DONE] as completion"},
	FlagRawDump:       {Name: "raw-dump", ViperKey: "stream.raw_dump", Description: "Append every raw stream line to this file"},
	FlagDebug:         {Name: "debug", Shorthand: "d", ViperKey: "log.debug", Description: "Enable debug logging"},
	FlagLogFormat:     {Name: "log-format", ViperKey: "log.format", Description: "Log format (pretty, json, text)"},
	FlagLogFile:       {Name: "log-file", ViperKey: "log.file", Description: "Also write JSON logs to this file"},
	FlagTap:           {Name: "tap", ViperKey: "tap.enabled", Description: "Mirror decoded stream events to Kafka"},
	FlagTapTopic:      {Name: "tap-topic", ViperKey: "tap.topic", Description: "Kafka topic for mirrored events"},
	FlagTapWorkers:    {Name: "tap-workers", ViperKey: "tap.workers", Description: "Number of tap publisher workers"},
	FlagUser:          {Name: "user", Shorthand: "u", ViperKey: "client.user", Description: "End-user identifier sent with requests"},
	FlagApp:           {Name: "app", ViperKey: "client.app", Description: "Name of the configured app, used to track conversations"},
}

// AddStringFlag registers a string flag on cmd from the given FlagSet.
// The flag's name, shorthand, default, and description all come from the
// FlagSet entry so they cannot drift across commands.
func AddStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	addStringFlag(cmd.Flags(), fs, key, target)
}

// AddPersistentStringFlag is AddStringFlag for flags inherited by subcommands.
func AddPersistentStringFlag(cmd *cobra.Command, fs FlagSet, key string, target *string) {
	addStringFlag(cmd.PersistentFlags(), fs, key, target)
}

func addStringFlag(flags *pflag.FlagSet, fs FlagSet, key string, target *string) {
	def, ok := fs[key]
	if !ok {
		return
	}

	flags.StringVarP(target, def.Name, def.Shorthand, defaultString(def.ViperKey), def.Description)
}

// AddUintFlag registers a uint flag on cmd from the given FlagSet.
func AddUintFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *uint) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	cmd.Flags().UintVarP(target, def.Name, def.Shorthand, defaultUint(def.ViperKey), def.Description)
}

// AddBoolFlag registers a bool flag on cmd from the given FlagSet.
func AddBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	addBoolFlag(cmd.Flags(), fs, registryKey, target)
}

// AddPersistentBoolFlag is AddBoolFlag for flags inherited by subcommands.
func AddPersistentBoolFlag(cmd *cobra.Command, fs FlagSet, registryKey string, target *bool) {
	addBoolFlag(cmd.PersistentFlags(), fs, registryKey, target)
}

func addBoolFlag(flags *pflag.FlagSet, fs FlagSet, registryKey string, target *bool) {
	def, ok := fs[registryKey]
	if !ok {
		return
	}

	flags.BoolVarP(target, def.Name, def.Shorthand, defaultBool(def.ViperKey), def.Description)
}

// BindRegisteredFlags binds already-registered flags to viper using definitions
// from the given FlagSet. Call this in PreRunE after InitViper to connect flags
// to the viper precedence chain (flag > env > config file > default).
// Inherited persistent flags are found once cobra has parsed the command line.
func BindRegisteredFlags(v *viper.Viper, cmd *cobra.Command, fs FlagSet, registryKeys []string) {
	for _, registryKey := range registryKeys {
		def, ok := fs[registryKey]
		if !ok {
			continue
		}

		f := cmd.Flags().Lookup(def.Name)
		if f == nil {
			f = cmd.InheritedFlags().Lookup(def.Name)
		}
		if f == nil {
			continue
		}

		_ = v.BindPFlag(def.ViperKey, f)
	}
}

func defaults() *viper.Viper {
	v := viper.New()
	setViperDefaults(v)
	return v
}

// defaultString returns the default string value for a viper key from NewDefaultConfig.
func defaultString(viperKey string) string {
	return defaults().GetString(viperKey)
}

// defaultUint returns the default uint value for a viper key from NewDefaultConfig.
func defaultUint(viperKey string) uint {
	return defaults().GetUint(viperKey)
}

// defaultBool returns the default bool value for a viper key from NewDefaultConfig.
func defaultBool(viperKey string) bool {
	return defaults().GetBool(viperKey)
}
