package wizard

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
)

// Option is one numbered line of a choice.
type Option struct {
	Name        string
	Description string
}

// Choose lists the options with numbers and returns the index of the
// picked one.
func Choose(prompt string, options []Option) (int, error) {
	if !pretty.Interactive {
		return -1, ErrNotInteractive
	}
	if len(options) == 0 {
		return -1, errors.New("nothing to choose from")
	}

	common.Stdout("%s%s%s\n\n", pretty.White, prompt, pretty.Reset)
	for at, option := range options {
		common.Stdout("  %s%d)%s %s%s%s\n", pretty.Green, at+1, pretty.Reset, pretty.White, option.Name, pretty.Reset)
		if len(option.Description) > 0 {
			common.Stdout("     %s%s%s\n", pretty.Grey, option.Description, pretty.Reset)
		}
	}
	common.Stdout("\n")

	reply, err := ask(fmt.Sprintf("Enter choice [1-%d]", len(options)), "1", numberValidation(len(options)))
	if err != nil {
		return -1, err
	}
	index, _ := strconv.Atoi(reply)
	return index - 1, nil
}

func numberValidation(limit int) Validator {
	return func(input string) bool {
		if len(input) > 10 {
			common.Stdout("%sInput too long. Please enter a number between 1 and %d.%s\n\n", pretty.Red, limit, pretty.Reset)
			return false
		}
		number, err := strconv.Atoi(input)
		if err != nil || number < 1 || number > limit {
			common.Stdout("%sPlease enter a number between 1 and %d.%s\n\n", pretty.Red, limit, pretty.Reset)
			return false
		}
		return true
	}
}
