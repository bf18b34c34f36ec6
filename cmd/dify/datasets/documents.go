package datasetscmder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
)

func newDocumentsCmd() *cobra.Command {
	params := client.DocumentsParams{}

	cmd := &cobra.Command{
		Use:   "documents <dataset-id>",
		Short: "List the documents of a knowledge base",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, dc, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			list, err := dc.Documents(cmd.Context(), args[0], params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(list.Data) == 0 {
				fmt.Fprintf(out, "  %s No documents.\n", cliui.DimStyle.Render("●"))
				return nil
			}

			fmt.Fprintln(out)
			for _, doc := range list.Data {
				fmt.Fprintf(out, "  %s %s %s\n",
					cliui.IDStyle.Render(doc.ID),
					cliui.NameStyle.Render(doc.Name),
					cliui.DimStyle.Render(doc.IndexingStatus),
				)
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&params.Keyword, "keyword", "", "Only documents matching this keyword")
	cmd.Flags().IntVar(&params.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&params.Limit, "limit", 20, "Documents per page")

	return cmd
}
