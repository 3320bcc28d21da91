package wizard

import (
	"fmt"
	"net/url"

	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/joshyorko/sakdash/session"
)

// AskArguments walks the arguments of a command and asks a value for each
// one, offering the current value as default. Unsupported arguments are
// skipped.
func AskArguments(command *catalog.CommandNode, current url.Values) ([]session.Assignment, error) {
	if !pretty.Interactive {
		return nil, ErrNotInteractive
	}
	result := make([]session.Assignment, 0, len(command.Args))
	for _, arg := range command.Args {
		if arg.Kind() == catalog.KindUnsupported {
			note("Skipping %s, type %q is not supported.", arg.Name, arg.Type)
			continue
		}
		reply, err := ask(question(arg), session.FormText(arg, current[arg.Name]), argumentValidation(arg))
		if err != nil {
			return nil, err
		}
		result = append(result, session.Assignment{Name: arg.Name, Value: reply})
	}
	return result, nil
}

func question(arg catalog.ArgSpec) string {
	if len(arg.Help) > 0 {
		return fmt.Sprintf("%s (%s, %s)", arg.Name, arg.Kind(), arg.Help)
	}
	return fmt.Sprintf("%s (%s)", arg.Name, arg.Kind())
}

func argumentValidation(arg catalog.ArgSpec) Validator {
	switch {
	case arg.HasChoices():
		return memberValidation(append([]string{""}, arg.Choices...), fmt.Sprintf("Choose one of: %v", []string(arg.Choices)))
	case arg.Kind() == catalog.KindBool:
		return memberValidation([]string{"", "true", "false"}, "Please answer 'true' or 'false'.")
	}
	return anything
}
