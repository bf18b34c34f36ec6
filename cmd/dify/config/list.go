package configcmder

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/config"
)

const listLongDesc string = `List all configuration values.

Displays every configuration key grouped by section, with the value read
from config.toml in the .dify/ directory. API keys are masked unless
--show-secrets is given.

Examples:
  dify config list
  dify config list --show-secrets`

const listShortDesc string = "List all configuration values"

func newListCmd() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: listShortDesc,
		Long:  listLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configDir, _ := cmd.Flags().GetString("config-dir")
			return runList(cmd.OutOrStdout(), configDir, showSecrets)
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print API keys unmasked")

	return cmd
}

func runList(out io.Writer, configDir string, showSecrets bool) error {
	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	printTarget(out, cfger)

	keys := config.ValidConfigKeys()
	width := 0
	for _, k := range keys {
		width = max(width, len(k))
	}

	section := ""
	for _, key := range keys {
		value, err := cfger.GetConfigValue(key)
		if err != nil {
			return err
		}

		if head, _, _ := strings.Cut(key, "."); head != section {
			if section != "" {
				fmt.Fprintln(out)
			}
			section = head
			fmt.Fprintf(out, "  %s\n", cliui.HeaderStyle.Render("["+section+"]"))
		}

		shown := cliui.DimStyle.Render("<not set>")
		if value != "" {
			shown = strconv.Quote(display(key, value, showSecrets))
		}
		fmt.Fprintf(out, "  %-*s = %s\n", width, key, shown)
	}

	return nil
}
