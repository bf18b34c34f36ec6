// Package workflowcmder provides the workflow command for running and
// inspecting workflow apps.
package workflowcmder

import (
	"github.com/spf13/cobra"
)

const workflowLongDesc string = `Run and inspect workflow apps.

Use subcommands to run a workflow or look at past runs:
  dify workflow run                Run the workflow and stream its progress
  dify workflow stop <task-id>     Stop a running workflow
  dify workflow status <run-id>    Show the result of a run
  dify workflow logs               List recent runs

Examples:
  dify workflow run --input url=https://example.com
  dify workflow status 0d3c7a66-5e1b-4a93-a2d5-8d1c1f5b9e21
  dify workflow logs --status failed`

const workflowShortDesc string = "Run and inspect workflow apps"

func NewWorkflowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workflow",
		Short: workflowShortDesc,
		Long:  workflowLongDesc,
	}

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newStopCmd())
	cmd.AddCommand(newStatusCmd())
	cmd.AddCommand(newLogsCmd())

	return cmd
}
