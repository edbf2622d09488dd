package app

import (
	"github.com/spf13/cobra"

	identifycmd "github.com/verdantlabs/plantid/cmd/plantid/cmd/identify"
	"github.com/verdantlabs/plantid/cmd/plantid/cmd/serve"
)

// CreateServeCommand creates the serve command with app dependencies.
func (a *App) CreateServeCommand() *cobra.Command {
	return serve.NewCommand(a)
}

// CreateIdentifyCommand creates the identify command with app dependencies.
func (a *App) CreateIdentifyCommand() *cobra.Command {
	return identifycmd.NewCommand(a)
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("plantid %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
