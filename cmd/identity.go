package cmd

import (
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/joshyorko/sakdash/settings"
	"github.com/joshyorko/sakdash/wizard"
	"github.com/joshyorko/sakdash/xviper"

	"github.com/spf13/cobra"
)

var (
	renewIdentity   bool
	identityYesFlag bool
)

var identityCmd = &cobra.Command{
	Use:     "identity",
	Aliases: []string{"i", "id"},
	Short:   "Show or renew the identity sent to the backend.",
	Long: `Show the identity this installation sends to the backend in the
` + settings.IdentityHead + ` header, or replace it with a fresh one.`,
	Run: func(cmd *cobra.Command, args []string) {
		if renewIdentity {
			confirmed, err := wizard.Confirm("Replace the current identity with a new one?", identityYesFlag)
			pretty.Guard(err == nil, 1, "Error: %v", err)
			if !confirmed {
				return
			}
			xviper.RenewIdentity()
		}
		identity := settings.Global.Identity()
		err := xviper.Save()
		pretty.Guard(err == nil, 1, "Could not save %q: %v", xviper.ConfigFile(), err)
		common.Stdout("sakdash instance identity is: %v\n", identity)
	},
}

func init() {
	rootCmd.AddCommand(identityCmd)
	identityCmd.Flags().BoolVarP(&renewIdentity, "renew", "r", false, "Generate a new identity.")
	wizard.AddYesFlag(identityCmd, &identityYesFlag)
}
