// Package wizard asks the user small questions on the terminal: yes/no
// confirmations, numbered choices and argument values for a command.
package wizard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
)

const (
	newline         = '\n'
	UNIX_NEWLINE    = "\n"
	WINDOWS_NEWLINE = "\r\n"
)

var (
	source = bufio.NewReader(os.Stdin)
)

type Validator func(string) bool

func useInput(reader io.Reader) {
	source = bufio.NewReader(reader)
}

func memberValidation(members []string, erratic string) Validator {
	return func(input string) bool {
		for _, member := range members {
			if input == member {
				return true
			}
		}
		common.Stdout("%s%s%s\n\n", pretty.Red, erratic, pretty.Reset)
		return false
	}
}

func anything(string) bool {
	return true
}

func note(form string, details ...interface{}) {
	message := fmt.Sprintf(form, details...)
	common.Stdout("%s! %s%s%s\n", pretty.Red, pretty.White, message, pretty.Reset)
}

func ask(question, defaults string, validator Validator) (string, error) {
	for {
		common.Stdout("%s? %s%s %s[%s]:%s ", pretty.Green, pretty.White, question, pretty.Grey, defaults, pretty.Reset)
		reply, err := source.ReadString(newline)
		common.Stdout("\n")
		if err != nil && len(reply) == 0 {
			return "", err
		}
		if reply == UNIX_NEWLINE || reply == WINDOWS_NEWLINE {
			reply = defaults
		}
		reply = strings.TrimSpace(reply)
		if !validator(reply) {
			if err != nil {
				return "", err
			}
			continue
		}
		return reply, nil
	}
}
