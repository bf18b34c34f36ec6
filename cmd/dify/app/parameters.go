package appcmder

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/dify/pkg/client"
	"github.com/papercomputeco/dify/pkg/cliui"
	"github.com/papercomputeco/dify/pkg/setup"
)

const parametersLongDesc string = `Show the input variables and features of the app.

Input variables are what --input and --inputs fill in on "dify chat",
"dify complete" and "dify workflow run".

Examples:
  dify app parameters`

const parametersShortDesc string = "Show the input variables and features"

func newParametersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parameters",
		Short: parametersShortDesc,
		Long:  parametersLongDesc,
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

			params, err := dc.AppParameters(cmd.Context())
			if err != nil {
				return err
			}

			printParameters(cmd.OutOrStdout(), params)
			return nil
		},
	}

	return cmd
}

func printParameters(out io.Writer, params *client.AppParameters) {
	fmt.Fprintln(out)
	if params.OpeningStatement != "" {
		fmt.Fprintf(out, "  %s %s\n\n", cliui.KeyStyle.Render("Opening:"), params.OpeningStatement)
	}

	fmt.Fprintf(out, "  %s\n", cliui.HeaderStyle.Render("Inputs"))
	if len(params.UserInputForm) == 0 {
		fmt.Fprintf(out, "    %s\n", cliui.DimStyle.Render("none"))
	}
	for _, item := range params.UserInputForm {
		// Each item is a single-key object naming the control type.
		for control, raw := range item {
			field, _ := raw.(map[string]any)
			variable, _ := field["variable"].(string)
			label, _ := field["label"].(string)
			required, _ := field["required"].(bool)

			req := ""
			if required {
				req = " " + cliui.WarnMark
			}
			fmt.Fprintf(out, "    %s %s %s%s\n",
				cliui.NameStyle.Render(variable),
				cliui.DimStyle.Render("("+control+")"),
				label,
				req,
			)
		}
	}

	features := enabledFeatures(params)
	if len(features) > 0 {
		fmt.Fprintf(out, "\n  %s\n", cliui.HeaderStyle.Render("Features"))
		for _, f := range features {
			fmt.Fprintf(out, "    %s %s\n", cliui.SuccessMark, f)
		}
	}

	if len(params.SuggestedQuestions) > 0 {
		fmt.Fprintf(out, "\n  %s\n", cliui.HeaderStyle.Render("Suggested questions"))
		for _, q := range params.SuggestedQuestions {
			fmt.Fprintf(out, "    %s %s\n", cliui.DimStyle.Render("-"), q)
		}
	}
	fmt.Fprintln(out)
}

func enabledFeatures(params *client.AppParameters) []string {
	blocks := map[string]map[string]any{
		"suggested questions after answer": params.SuggestedQuestionsAfterAnswer,
		"speech to text":                   params.SpeechToText,
		"text to speech":                   params.TextToSpeech,
		"retriever resource":               params.RetrieverResource,
		"annotation reply":                 params.AnnotationReply,
		"file upload":                      params.FileUpload,
	}

	var enabled []string
	for name, block := range blocks {
		if on, _ := block["enabled"].(bool); on {
			enabled = append(enabled, name)
		}
	}
	sort.Strings(enabled)
	return enabled
}
