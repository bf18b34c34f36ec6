package appcmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

const infoShortDesc string = "Show name, mode and site settings"

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: infoShortDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := setup.Load(cmd, setup.CommonFlags...)
			if err != nil {
				return err
			}
			defer rt.Close()

			dc, err := rt.Client()
			if err != nil {
				return err
			}

			info, err := dc.AppInfo(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\n  %s  %s\n", cliui.KeyStyle.Render("Name:       "), cliui.NameStyle.Render(info.Name))
			fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Mode:       "), cliui.ValueStyle.Render(info.Mode))
			if info.AuthorName != "" {
				fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Author:     "), cliui.ValueStyle.Render(info.AuthorName))
			}
			if len(info.Tags) > 0 {
				fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Tags:       "), cliui.ValueStyle.Render(strings.Join(info.Tags, ", ")))
			}
			if info.Description != "" {
				fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Description:"), info.Description)
			}

			// Site settings are only published for apps with a web app.
			site, err := dc.AppSite(cmd.Context())
			if err != nil {
				rt.Logger.Debug("no site settings", "error", err)
			} else if site.Title != "" {
				fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Site title: "), cliui.ValueStyle.Render(site.Title))
				if site.DefaultLanguage != "" {
					fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Language:   "), cliui.ValueStyle.Render(site.DefaultLanguage))
				}
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	return cmd
}
