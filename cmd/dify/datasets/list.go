package datasetscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
)

func newListCmd() *cobra.Command {
	params := client.DatasetsParams{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List knowledge bases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, dc, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			list, err := dc.Datasets(cmd.Context(), params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list.Data) == 0 {
				fmt.Fprintf(out, "  %s No knowledge bases.\n", cliui.DimStyle.Render("●"))
				return nil
			}

			fmt.Fprintln(out)
			for _, ds := range list.Data {
				fmt.Fprintf(out, "  %s %s %s\n",
					cliui.IDStyle.Render(ds.ID),
					cliui.NameStyle.Render(ds.Name),
					cliui.DimStyle.Render(fmt.Sprintf("(%d documents, %d words)", ds.DocumentCount, ds.WordCount)),
				)
			}
			fmt.Fprintf(out, "\n  %s\n\n", cliui.DimStyle.Render(fmt.Sprintf("%d of %d", len(list.Data), list.Total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Keyword, "keyword", "", "Only knowledge bases matching this keyword")
	cmd.Flags().StringSliceVar(&params.TagIDs, "tag", nil, "Only knowledge bases with this tag id (repeatable)")
	cmd.Flags().IntVar(&params.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 20, "Knowledge bases per page")

	return cmd
}
