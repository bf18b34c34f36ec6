// Package initcmder provides the init command for initializing a local .dify
// directory in the current working directory.
package initcmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/config"
	"github.com/papercomputeco/dify/pkg/dotdir"
)

const (
	configFile = "config.toml"

	// maxRemoteConfig bounds the size of a fetched preset.
	maxRemoteConfig = 1 << 20
)

const initLongDesc string = `Initialize a new .dify/ directory in the current working directory.

Creates a local .dify/ directory that takes precedence over the default
~/.dify/ directory for configuration, the generated user id and
conversation state.

This is useful for keeping separate apps and keys per project.

A config.toml with default values is written unless one exists. With
--preset the config.toml is (re)written from a named preset or from a
TOML file fetched over HTTP(S).

Presets:
  cloud    The hosted platform at https://api.dify.ai/v1
  local    A self-hosted install at http://localhost/v1

Examples:
  dify init
  dify init --preset local
  dify init --preset https://example.com/team/dify.toml`

const initShortDesc string = "Initialize a local .dify/ directory"

type initCommander struct {
	preset string
}

func NewInitCmd() *cobra.Command {
	cmder := &initCommander{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&cmder.preset, "preset", "",
		fmt.Sprintf("Preset name (%s) or URL of a config.toml", strings.Join(config.ValidPresetNames(), ", ")))

	return cmd
}

func (c *initCommander) run(ctx context.Context, out io.Writer) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dotdir.DirName)

	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		fmt.Fprintf(out, "  %s Already initialized: %s\n", cliui.DimStyle.Render("●"), dir)
	case err == nil:
		return fmt.Errorf("%s exists and is not a directory", dir)
	default:
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating .dify directory: %w", err)
		}
		fmt.Fprintf(out, "  %s Initialized .dify directory: %s\n", cliui.SuccessMark, dir)
	}

	var cfg *config.Config
	switch {
	case c.preset != "":
		cfg, err = resolvePreset(ctx, c.preset)
		if err != nil {
			return err
		}
	case configExists(dir):
		return nil
	default:
		cfg = config.NewDefaultConfig()
	}

	cfger, err := config.NewConfiger(dir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfger.SaveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "  %s Wrote %s\n", cliui.SuccessMark, cliui.DimStyle.Render(cfger.GetTarget()))
	return nil
}

func configExists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, configFile))
	return err == nil
}

// resolvePreset returns the config for a preset name or URL.
func resolvePreset(ctx context.Context, preset string) (*config.Config, error) {
	if strings.HasPrefix(preset, "http://") || strings.HasPrefix(preset, "https://") {
		return fetchRemoteConfig(ctx, preset)
	}
	return config.PresetConfig(preset)
}

func fetchRemoteConfig(ctx context.Context, url string) (*config.Config, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching remote config: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteConfig+1))
	if err != nil {
		return nil, fmt.Errorf("fetching remote config: %w", err)
	}
	if len(data) > maxRemoteConfig {
		return nil, errors.New("fetching remote config: file too large")
	}

	return config.ParseConfigTOML(data)
}
