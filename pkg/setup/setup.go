// Package setup turns the merged configuration of a dify command into the
// logger, client and tap it runs with.
package setup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/config"
	"github.com/papercomputeco/dify/pkg/dotdir"
	"github.com/papercomputeco/dify/pkg/eventstream"
	"github.com/papercomputeco/dify/pkg/eventstream/kafka"
	"github.com/papercomputeco/dify/pkg/logger"
	"github.com/papercomputeco/dify/pkg/tap"
)

// CommonFlags are the registry keys every API command binds.
var CommonFlags = []string{
	config.FlagBaseURL,
	config.FlagAPIKey,
	config.FlagDatasetAPIKey,
	config.FlagTimeout,
	config.FlagDebug,
	config.FlagLogFormat,
	config.FlagLogFile,
	config.FlagUser,
	config.FlagApp,
}

// StreamFlags are the registry keys of commands that open event streams.
var StreamFlags = []string{
	config.FlagSilentEOF,
	config.FlagRawDump,
	config.FlagTap,
	config.FlagTapTopic,
	config.FlagTapWorkers,
}

// AddStreamFlags registers the StreamFlags on cmd. Their values are read
// back through Load.
func AddStreamFlags(cmd *cobra.Command) {
	var (
		silentEOF  bool
		tapEnabled bool
		rawDump    string
		tapTopic   string
		tapWorkers uint
	)
	config.AddBoolFlag(cmd, config.Flags, config.FlagSilentEOF, &silentEOF)
	config.AddStringFlag(cmd, config.Flags, config.FlagRawDump, &rawDump)
	config.AddBoolFlag(cmd, config.Flags, config.FlagTap, &tapEnabled)
	config.AddStringFlag(cmd, config.Flags, config.FlagTapTopic, &tapTopic)
	config.AddUintFlag(cmd, config.Flags, config.FlagTapWorkers, &tapWorkers)
}

// Runtime holds everything a command needs to talk to Dify. Close must be
// called when the command is done.
type Runtime struct {
	Config    *config.Config
	ConfigDir string
	Logger    *slog.Logger

	// NewPublisher builds the tap publisher. Tests replace it.
	NewPublisher func(cfg config.TapConfig) (eventstream.Publisher, error)

	httpClient *http.Client
	tap        *tap.Pool
	closers    []io.Closer
}

// Load merges flags, environment and config file for cmd, binding the given
// flag registry keys, and builds the logger. Diagnostics go to cmd's error
// writer.
func Load(cmd *cobra.Command, flagKeys ...string) (*Runtime, error) {
	configDir, _ := cmd.Flags().GetString("config-dir")

	v, err := config.InitViper(configDir)
	if err != nil {
		return nil, err
	}
	config.BindRegisteredFlags(v, cmd, config.Flags, flagKeys)

	cfg := config.FromViper(v)
	return New(cfg, configDir, cmd.ErrOrStderr())
}

// New builds a Runtime from an already merged Config.
func New(cfg *config.Config, configDir string, diag io.Writer) (*Runtime, error) {
	r := &Runtime{
		Config:       cfg,
		ConfigDir:    configDir,
		NewPublisher: newKafkaPublisher,
	}

	l, err := r.newLogger(diag)
	if err != nil {
		return nil, err
	}
	r.Logger = l

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		_ = r.Close()
		return nil, err
	}
	r.httpClient = &http.Client{Timeout: timeout}

	return r, nil
}

func (r *Runtime) newLogger(diag io.Writer) (*slog.Logger, error) {
	lc := r.Config.Log

	console := logger.New(
		logger.WithDebug(lc.Debug),
		logger.WithFormat(logger.Format(lc.Format)),
		logger.WithTimestamp(lc.Debug),
		logger.WithWriter(diag),
	)
	if lc.File == "" {
		return console, nil
	}

	f, err := openAppend(lc.File)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	r.closers = append(r.closers, f)

	file := logger.New(
		logger.WithDebug(lc.Debug),
		logger.WithFormat(logger.FormatJSON),
		logger.WithWriter(f),
	)
	return logger.Multi(console, file), nil
}

// clientOptions builds the options shared by app and knowledge base clients.
func (r *Runtime) clientOptions() []client.Option {
	return []client.Option{
		client.WithHTTPClient(r.httpClient),
		client.WithLogger(r.Logger),
		client.WithRateLimit(r.Config.HTTP.RateLimit, int(r.Config.HTTP.RateBurst)),
	}
}

// Client builds an app client. With the tap enabled the pool is started on
// first use and mirrors every streamed event.
func (r *Runtime) Client() (*client.Client, error) {
	opts := r.clientOptions()

	if r.Config.Stream.SilentEOF {
		opts = append(opts, client.WithSilentEOF())
	}

	if r.Config.Stream.RawDump != "" {
		f, err := openAppend(r.Config.Stream.RawDump)
		if err != nil {
			return nil, fmt.Errorf("opening raw dump file: %w", err)
		}
		r.closers = append(r.closers, f)
		opts = append(opts, client.WithRawDump(f))
	}

	if r.Config.Tap.Enabled {
		pool, err := r.startTap()
		if err != nil {
			return nil, err
		}
		opts = append(opts, client.WithObserver(pool.Observer))
	}

	return client.New(client.Config{
		BaseURL: r.Config.Server.BaseURL,
		APIKey:  r.Config.Server.APIKey,
	}, opts...)
}

// DatasetClient builds a knowledge base client.
func (r *Runtime) DatasetClient() (*client.DatasetClient, error) {
	return client.NewDatasetClient(client.Config{
		BaseURL: r.Config.Server.BaseURL,
		APIKey:  r.Config.Server.DatasetAPIKey,
	}, r.clientOptions()...)
}

func (r *Runtime) startTap() (*tap.Pool, error) {
	if r.tap != nil {
		return r.tap, nil
	}

	pub, err := r.NewPublisher(r.Config.Tap)
	if err != nil {
		return nil, fmt.Errorf("creating tap publisher: %w", err)
	}

	pool, err := tap.NewPool(&tap.Config{
		Publisher:  pub,
		App:        r.Config.Client.App,
		NumWorkers: r.Config.Tap.Workers,
		QueueSize:  r.Config.Tap.QueueSize,
		Logger:     r.Logger,
	})
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("creating tap pool: %w", err)
	}

	r.tap = pool
	return pool, nil
}

// User returns the configured end-user identifier, falling back to the one
// stored in the .dify directory.
func (r *Runtime) User() (string, error) {
	if r.Config.Client.User != "" {
		return r.Config.Client.User, nil
	}
	return dotdir.NewManager().UserID(r.ConfigDir)
}

// Close drains the tap and closes any files the runtime opened.
func (r *Runtime) Close() error {
	var errs []error
	if r.tap != nil {
		if err := r.tap.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing tap: %w", err))
		}
		r.tap = nil
	}
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

func newKafkaPublisher(cfg config.TapConfig) (eventstream.Publisher, error) {
	return kafka.NewPublisher(kafka.Config{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})
}

func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
