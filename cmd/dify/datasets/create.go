package datasetscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
)

func newCreateCmd() *cobra.Command {
	req := client.CreateDatasetRequest{}

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an empty knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, dc, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			req.Name = args[0]
			ds, err := dc.CreateDataset(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "  %s Created %s %s\n",
				cliui.SuccessMark,
				cliui.NameStyle.Render(ds.Name),
				cliui.IDStyle.Render(ds.ID),
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Description, "description", "", "Knowledge base description")
	cmd.Flags().StringVar(&req.IndexingTechnique, "indexing", "", "Indexing technique (high_quality, economy)")
	cmd.Flags().StringVar(&req.Permission, "permission", "", "Who can use it (only_me, all_team_members, partial_members)")

	return cmd
}
