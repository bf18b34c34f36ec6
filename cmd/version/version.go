// Package versioncmder
package versioncmder

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/utils"
)

type VersionCommander struct {
	short bool
}

func NewVersionCmd() *cobra.Command {
	cmder := &VersionCommander{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "displays version",
		Long:  "displays the version of this CLI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmder.run(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&cmder.short, "short", false, "Print only the version")

	return cmd
}

func (c *VersionCommander) run(out io.Writer) error {
	if c.short {
		fmt.Fprintln(out, utils.Version)
		return nil
	}

	fmt.Fprintf(out, "%s %s\n%s %s\n%s %s\n%s %s\n",
		cliui.KeyStyle.Render("Version: "), utils.Version,
		cliui.KeyStyle.Render("Sha:     "), utils.Sha,
		cliui.KeyStyle.Render("Built at:"), utils.Buildtime,
		cliui.KeyStyle.Render("Platform:"), runtime.GOOS+"/"+runtime.GOARCH+" "+runtime.Version(),
	)
	return nil
}
