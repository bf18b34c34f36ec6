package datasetscmder

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/utils"
)

func newRetrieveCmd() *cobra.Command {
	var (
		topK   int
		method string
	)

	cmd := &cobra.Command{
		Use:   "retrieve <dataset-id> <query>",
		Short: "Test retrieval against a knowledge base",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, dc, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			req := client.RetrieveRequest{Query: strings.Join(args[1:], " ")}
			if topK > 0 || method != "" {
				if method == "" {
					method = "semantic_search"
				}
				req.RetrievalModel = &client.RetrievalModel{SearchMethod: method, TopK: topK}
			}

			res, err := dc.Retrieve(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(res.Records) == 0 {
				fmt.Fprintf(out, "  %s No matching segments.\n", cliui.DimStyle.Render("●"))
				return nil
			}

			fmt.Fprintln(out)
			for i, rec := range res.Records {
				fmt.Fprintf(out, "  %s %s %s\n",
					cliui.DimStyle.Render(fmt.Sprintf("%d.", i+1)),
					cliui.ValueStyle.Render(fmt.Sprintf("%.3f", rec.Score)),
					cliui.NameStyle.Render(rec.Segment.Document.Name),
				)
				fmt.Fprintf(out, "     %s\n", utils.Truncate(strings.Join(strings.Fields(rec.Segment.Content), " "), 96))
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&topK, "top-k", 0, "Number of segments to return")
	cmd.Flags().StringVar(&method, "method", "", "Search method (semantic_search, full_text_search, hybrid_search, keyword_search)")

	return cmd
}
