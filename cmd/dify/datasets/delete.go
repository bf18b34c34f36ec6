package datasetscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/cliui"
)

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <dataset-id>",
		Short: "Delete a knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, dc, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := dc.DeleteDataset(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Deleted %s\n", cliui.SuccessMark, cliui.IDStyle.Render(args[0]))
			return nil
		},
	}

	return cmd
}
