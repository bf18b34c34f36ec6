package workflowcmder

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

type logsCommander struct {
	keyword string
	status  string
	page    int
	limit   int
}

const logsLongDesc string = `List recent workflow runs.

Examples:
  dify workflow logs
  dify workflow logs --status failed --limit 5`

const logsShortDesc string = "List recent workflow runs"

func newLogsCmd() *cobra.Command {
	cmder := &logsCommander{}

	cmd := &cobra.Command{
		Use:   "logs",
		Short: logsShortDesc,
		Long:  logsLongDesc,
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

			logs, err := dc.WorkflowLogs(cmd.Context(), client.WorkflowLogsParams{
				Keyword: cmder.keyword,
				Status:  cmder.status,
				Page:    cmder.page,
				Limit:   cmder.limit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(logs.Data) == 0 {
				fmt.Fprintf(out, "  %s No workflow runs found.\n", cliui.DimStyle.Render("●"))
				return nil
			}

			fmt.Fprintln(out)
			for _, entry := range logs.Data {
				run := entry.WorkflowRun
				fmt.Fprintf(out, "  %s %s %s %s\n",
					cliui.IDStyle.Render(run.ID),
					statusStyle(run.Status),
					cliui.DimStyle.Render(time.Unix(entry.CreatedAt, 0).Format(time.DateTime)),
					cliui.DimStyle.Render(fmt.Sprintf("(%d steps, %d tokens)", run.TotalSteps, run.TotalTokens)),
				)
			}
			if logs.HasMore {
				fmt.Fprintf(out, "\n  %s\n", cliui.DimStyle.Render(fmt.Sprintf("More runs available, use --page %d", logs.Page+1)))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&cmder.keyword, "keyword", "", "Only runs matching this keyword")
	cmd.Flags().StringVar(&cmder.status, "status", "", "Only runs with this status (succeeded, failed, stopped)")
	cmd.Flags().IntVar(&cmder.page, "page", 1, "Page number")
	cmd.Flags().IntVar(&cmder.limit, "limit", 20, "Runs per page")

	return cmd
}
