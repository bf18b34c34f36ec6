package workflowcmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

const stopLongDesc string = `Stop a running workflow.

The task id is printed in the progress output of "dify workflow run" and
is only valid while the run is streaming.

Examples:
  dify workflow stop 9f2b4c1e-7a30-4e8f-b0a6-1d5e3c7a9b42`

const stopShortDesc string = "Stop a running workflow"

func newStopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop <task-id>",
		Short: stopShortDesc,
		Long:  stopLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup.Load(cmd, setup.CommonFlags...)
			if err != nil {
				return err
			}
			defer rt.Close()

			dc, err := rt.Client()
			if err != nil {
				return err
			}
			user, err := rt.User()
			if err != nil {
				return fmt.Errorf("resolving user: %w", err)
			}

			if _, err := dc.StopWorkflow(cmd.Context(), args[0], user); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Stopped task %s\n", cliui.SuccessMark, cliui.IDStyle.Render(args[0]))
			return nil
		},
	}

	return cmd
}
