// Package configcmder provides the config command for managing persistent
// dify configuration stored in the .dify/ directory.
package configcmder

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/config"
	"github.com/papercomputeco/dify/pkg/utils"
)

const configLongDesc string = `Manage persistent dify configuration.

Configuration is stored as config.toml in the .dify/ directory and provides
default values for command flags. CLI flags and DIFY_* environment
variables always take precedence over config file values.

Keys use dotted notation matching the TOML section structure:
  server.base_url, server.api_key, server.dataset_api_key,
  http.timeout, http.rate_limit, http.rate_burst,
  stream.silent_eof, stream.raw_dump,
  log.debug, log.format, log.file,
  tap.enabled, tap.brokers, tap.topic, tap.workers, tap.queue_size,
  client.user, client.app

Use subcommands to get, set, or list configuration values:
  dify config set <key> <value>    Set a configuration value
  dify config get <key>            Get a configuration value
  dify config list                 List all configuration values

API keys are masked when shown; pass --show-secrets to print them.

Examples:
  dify config set server.api_key app-xxxxxxxx
  dify config set tap.brokers kafka-1:9092,kafka-2:9092
  dify config get server.base_url
  dify config list`

const configShortDesc string = "Manage persistent dify configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}

func validateKey(key string) error {
	if !config.IsValidConfigKey(key) {
		return fmt.Errorf("unknown config key: %q\n\nValid keys: %s",
			key, strings.Join(config.ValidConfigKeys(), ", "))
	}
	return nil
}

func completeKeys(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return config.ValidConfigKeys(), cobra.ShellCompDirectiveNoFileComp
	}
	return nil, cobra.ShellCompDirectiveNoFileComp
}

func printTarget(out io.Writer, cfger *config.Configer) {
	if target := cfger.GetTarget(); target != "" {
		fmt.Fprintf(out, "\n  %s %s\n\n",
			cliui.KeyStyle.Render("Config file:"),
			cliui.DimStyle.Render(target),
		)
		return
	}
	fmt.Fprintf(out, "\n  %s\n\n", cliui.DimStyle.Render("No config file found. Using defaults."))
}

// display returns value as shown to the user.
func display(key, value string, showSecrets bool) string {
	if config.IsSecretKey(key) && !showSecrets {
		return utils.MaskSecret(value)
	}
	return value
}
