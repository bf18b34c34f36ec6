package datasetscmder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
)

// indexingPoll is how often --wait checks indexing progress.
var indexingPoll = 2 * time.Second

type addTextCommander struct {
	file     string
	text     string
	indexing string
	wait     bool
}

const addTextLongDesc string = `Add a document to a knowledge base from text.

The text comes from --text, --file or stdin. With --wait the command
returns once the document is indexed.

Examples:
  dify datasets add-text 7e3b... refunds.md --file ./refunds.md --wait
  cat notes.txt | dify datasets add-text 7e3b... notes`

func newAddTextCmd() *cobra.Command {
	cmder := &addTextCommander{}

	cmd := &cobra.Command{
		Use:   "add-text <dataset-id> <name>",
		Short: "Add a document from text",
		Long:  addTextLongDesc,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := cmder.readText(cmd.InOrStdin())
			if err != nil {
				return err
			}

			rt, dc, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := dc.CreateDocumentByText(cmd.Context(), args[0], client.CreateDocumentByTextRequest{
				Name:              args[1],
				Text:              text,
				IndexingTechnique: cmder.indexing,
				ProcessRule:       &client.ProcessRule{Mode: "automatic"},
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %s Added %s %s\n",
				cliui.SuccessMark,
				cliui.NameStyle.Render(res.Document.Name),
				cliui.IDStyle.Render(res.Document.ID),
			)

			if !cmder.wait {
				return nil
			}
			return cliui.Step(out, "Indexing", func() error {
				return waitIndexed(cmd.Context(), dc, args[0], res.Batch)
			})
		},
	}

	cmd.Flags().StringVarP(&cmder.file, "file", "f", "", "Read the text from this file")
	cmd.Flags().StringVar(&cmder.text, "text", "", "Document text")
	cmd.Flags().StringVar(&cmder.indexing, "indexing", "high_quality", "Indexing technique (high_quality, economy)")
	cmd.Flags().BoolVar(&cmder.wait, "wait", false, "Wait until the document is indexed")

	return cmd
}

func (c *addTextCommander) readText(stdin io.Reader) (string, error) {
	switch {
	case c.text != "" && c.file != "":
		return "", errors.New("give either --text or --file, not both")
	case c.text != "":
		return c.text, nil
	case c.file != "":
		data, err := os.ReadFile(c.file)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", c.file, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	if len(data) == 0 {
		return "", errors.New("no text given (use --text, --file or stdin)")
	}
	return string(data), nil
}

// waitIndexed polls the batch until every document in it is completed.
func waitIndexed(ctx context.Context, dc *client.DatasetClient, datasetID, batch string) error {
	ticker := time.NewTicker(indexingPoll)
	defer ticker.Stop()

	for {
		statuses, err := dc.IndexingStatus(ctx, datasetID, batch)
		if err != nil {
			return err
		}

		done := len(statuses) > 0
		for _, s := range statuses {
			switch s.IndexingStatus {
			case "completed":
			case "error":
				return fmt.Errorf("indexing document %s: %s", s.ID, s.Error)
			default:
				done = false
			}
		}
		if done {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
