package workflowcmder

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

const statusLongDesc string = `Show the result of a workflow run.

Examples:
  dify workflow status 0d3c7a66-5e1b-4a93-a2d5-8d1c1f5b9e21`

const statusShortDesc string = "Show the result of a workflow run"

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <run-id>",
		Short: statusShortDesc,
		Long:  statusLongDesc,
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

			run, err := dc.WorkflowRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printStatus(cmd.OutOrStdout(), run)
			return nil
		},
	}

	return cmd
}

func printStatus(out io.Writer, run *client.WorkflowRunStatus) {
	fmt.Fprintf(out, "\n  %s  %s\n", cliui.KeyStyle.Render("Run:     "), cliui.IDStyle.Render(run.ID))
	fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Status:  "), statusStyle(run.Status))
	fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Steps:   "), cliui.ValueStyle.Render(strconv.Itoa(run.TotalSteps)))
	fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Tokens:  "), cliui.ValueStyle.Render(strconv.Itoa(run.TotalTokens)))
	fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Elapsed: "),
		cliui.ValueStyle.Render(cliui.FormatDuration(time.Duration(run.ElapsedTime*float64(time.Second)))))
	if run.Error != "" {
		fmt.Fprintf(out, "  %s  %s\n", cliui.KeyStyle.Render("Error:   "), run.Error)
	}
	if outputs := indentJSON(run.Outputs); outputs != "" {
		fmt.Fprintf(out, "\n  %s\n%s\n", cliui.KeyStyle.Render("Outputs:"), outputs)
	}
	fmt.Fprintln(out)
}

func statusStyle(status string) string {
	switch status {
	case "succeeded":
		return cliui.SuccessMark + " " + status
	case "failed", "stopped":
		return cliui.FailMark + " " + status
	default:
		return cliui.DimStyle.Render(status)
	}
}

// indentJSON pretty prints raw, which is either an object or a JSON string
// holding one.
func indentJSON(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(s)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "  ", "  "); err != nil {
		return "  " + string(raw)
	}
	return "  " + buf.String()
}
