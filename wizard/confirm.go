package wizard

import (
	"errors"

	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/spf13/cobra"
)

var (
	ErrConfirmationRequired = errors.New("confirmation required: use --yes flag in non-interactive mode")
	ErrNotInteractive       = errors.New("selection requires interactive mode")
)

// Confirm asks a yes/no question, defaulting to no. With force the answer
// is yes without asking, and without a terminal it is an error.
func Confirm(question string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	if !pretty.Interactive {
		return false, ErrConfirmationRequired
	}
	validator := memberValidation([]string{"y", "Y", "n", "N"}, "Please answer 'y' or 'n'.")
	response, err := ask(question, "n", validator)
	if err != nil {
		return false, err
	}
	confirmed := response == "y" || response == "Y"
	if !confirmed {
		common.Stdout("%sOperation cancelled.%s\n", pretty.Grey, pretty.Reset)
	}
	return confirmed, nil
}

// AddYesFlag adds a --yes/-y flag to the given command that can be used to skip confirmation prompts.
func AddYesFlag(cmd *cobra.Command, target *bool) {
	cmd.Flags().BoolVarP(target, "yes", "y", false, "Skip confirmation prompt")
}
