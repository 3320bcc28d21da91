package cmd

import (
	"github.com/joshyorko/sakdash/interactive"
	"github.com/joshyorko/sakdash/pretty"

	"github.com/spf13/cobra"
)

var uiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui", "dashboard"},
	Short:   "Launch the interactive terminal dashboard.",
	Long: `Launch the full screen dashboard.

Navigation:
  1-5        Switch views (Catalog, Sessions, Plugins, History, Logs)
  j/k        Navigate up/down
  Enter      Open or edit
  r          Run
  :          Quick run a command line
  q          Quit
  ?          Help

Example:
  sakdash ui
  sakdash ui --endpoint http://localhost:5000`,
	Run: func(cmd *cobra.Command, args []string) {
		pretty.Guard(pretty.Interactive, 1, "The dashboard requires an interactive terminal (TTY).")
		err := interactive.Run(interactive.NewState(connect()))
		pretty.Guard(err == nil, 1, "Dashboard error: %v", err)
	},
}

func init() {
	rootCmd.AddCommand(uiCmd)
}
