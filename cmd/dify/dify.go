// Package difycmder
package difycmder

import (
	"github.com/spf13/cobra"

	appcmder "github.com/papercomputeco/dify/cmd/dify/app"
	chatcmder "github.com/papercomputeco/dify/cmd/dify/chat"
	completecmder "github.com/papercomputeco/dify/cmd/dify/complete"
	configcmder "github.com/papercomputeco/dify/cmd/dify/config"
	conversationscmder "github.com/papercomputeco/dify/cmd/dify/conversations"
	datasetscmder "github.com/papercomputeco/dify/cmd/dify/datasets"
	initcmder "github.com/papercomputeco/dify/cmd/dify/init"
	workflowcmder "github.com/papercomputeco/dify/cmd/dify/workflow"
	versioncmder "github.com/papercomputeco/dify/cmd/version"
	"github.com/papercomputeco/dify/pkg/config"
)

const difyLongDesc string = `Dify is a command line client for Dify apps.

Talk to an app using:
  dify chat            Chat with a chat, agent or chatflow app
  dify complete        Run a text generation app
  dify workflow run    Run a workflow app

Settings come from flags, DIFY_* environment variables and config.toml in
the .dify/ directory, in that order.`

const difyShortDesc string = "Dify - App API client"

type globalFlags struct {
	baseURL       string
	apiKey        string
	datasetAPIKey string
	timeout       string
	logFormat     string
	logFile       string
	user          string
	app           string
	debug         bool
}

func NewDifyCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:           "dify",
		Short:         difyShortDesc,
		Long:          difyLongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().String("config-dir", "", "Override path to .dify/ config directory")
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagBaseURL, &flags.baseURL)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagAPIKey, &flags.apiKey)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagDatasetAPIKey, &flags.datasetAPIKey)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagTimeout, &flags.timeout)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagLogFormat, &flags.logFormat)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagLogFile, &flags.logFile)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagUser, &flags.user)
	config.AddPersistentStringFlag(cmd, config.Flags, config.FlagApp, &flags.app)
	config.AddPersistentBoolFlag(cmd, config.Flags, config.FlagDebug, &flags.debug)

	// Add subcommands
	cmd.AddCommand(chatcmder.NewChatCmd())
	cmd.AddCommand(completecmder.NewCompleteCmd())
	cmd.AddCommand(workflowcmder.NewWorkflowCmd())
	cmd.AddCommand(conversationscmder.NewConversationsCmd())
	cmd.AddCommand(appcmder.NewAppCmd())
	cmd.AddCommand(datasetscmder.NewDatasetsCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
