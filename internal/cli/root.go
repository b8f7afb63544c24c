package cli

import (
	"github.com/spf13/cobra"

	generatecmd "github.com/dobrovols/mklaunch/cmd/mklaunch/generate"
	validatecmd "github.com/dobrovols/mklaunch/cmd/mklaunch/validate"
)

// NewRootCommand constructs the root mklaunch command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mklaunch",
		Short: "mklaunch generates VS Code launch.json files from reusable debug templates",
	}

	cmd.AddCommand(generatecmd.NewGenerateCommand())
	cmd.AddCommand(validatecmd.NewValidateCommand())

	return cmd
}
