// Package datasetscmder provides the datasets command for managing knowledge
// bases with the knowledge base API key.
package datasetscmder

import (
	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/setup"
)

const datasetsLongDesc string = `Manage knowledge bases.

Knowledge base requests use the knowledge base API key (--dataset-api-key,
server.dataset_api_key or DIFY_SERVER_DATASET_API_KEY), not the app key.

Use subcommands to work with knowledge bases:
  dify datasets list                          List knowledge bases
  dify datasets create <name>                 Create an empty knowledge base
  dify datasets delete <dataset-id>           Delete a knowledge base
  dify datasets documents <dataset-id>        List the documents of a knowledge base
  dify datasets add-text <dataset-id> <name>  Add a document from text
  dify datasets retrieve <dataset-id> <query> Test retrieval

Examples:
  dify datasets create "Support articles"
  dify datasets add-text 7e3b... refunds.md --file ./refunds.md --wait
  dify datasets retrieve 7e3b... "how long do refunds take"`

const datasetsShortDesc string = "Manage knowledge bases"

func NewDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasets",
		Aliases: []string{"kb"},
		Short:   datasetsShortDesc,
		Long:    datasetsLongDesc,
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCreateCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newDocumentsCmd())
	cmd.AddCommand(newAddTextCmd())
	cmd.AddCommand(newRetrieveCmd())

	return cmd
}

func load(cmd *cobra.Command) (*setup.Runtime, *client.DatasetClient, error) {
	rt, err := setup.Load(cmd, setup.CommonFlags...)
	if err != nil {
		return nil, nil, err
	}

	dc, err := rt.DatasetClient()
	if err != nil {
		_ = rt.Close()
		return nil, nil, err
	}
	return rt, dc, nil
}
