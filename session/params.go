package session

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/shlex"
	"github.com/joshyorko/sakdash/catalog"
)

// FormValues turns what a user typed for one argument into query values.
// List arguments accept comma or newline separated items, everything else
// is sent as typed.
func FormValues(arg catalog.ArgSpec, text string) []string {
	if arg.Kind() != catalog.KindList {
		if len(text) == 0 {
			return nil
		}
		return []string{text}
	}
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	result := make([]string, 0, len(fields))
	for _, field := range fields {
		if trimmed := strings.TrimSpace(field); len(trimmed) > 0 {
			result = append(result, trimmed)
		}
	}
	return result
}

// FormText is the inverse of FormValues, used to prefill inputs.
func FormText(arg catalog.ArgSpec, values []string) string {
	if arg.Kind() == catalog.KindList {
		return strings.Join(values, ", ")
	}
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Defaults collects the default values of every argument of cmd.
func Defaults(cmd *catalog.CommandNode) url.Values {
	result := url.Values{}
	if cmd == nil {
		return result
	}
	for _, arg := range cmd.Args {
		if values := arg.DefaultValues(); len(values) > 0 {
			result[arg.Name] = values
		}
	}
	return result
}

// Assignment is one name=value word of a command line.
type Assignment struct {
	Name  string
	Value string
}

// ParseAssignments reads name=value words. A name given several times
// collects several values.
func ParseAssignments(words []string) ([]Assignment, error) {
	result := make([]Assignment, 0, len(words))
	for _, word := range words {
		name, value, ok := strings.Cut(word, "=")
		name = strings.TrimSpace(name)
		if !ok || len(name) == 0 {
			return nil, fmt.Errorf("%q is not in name=value form", word)
		}
		result = append(result, Assignment{Name: name, Value: value})
	}
	return result, nil
}

// ParseCommandLine splits a quick-run line like `/root/echo msg="hi there"`
// into the command path and its assignments.
func ParseCommandLine(line string) (string, []Assignment, error) {
	words, err := shlex.Split(line)
	if err != nil {
		return "", nil, fmt.Errorf("command line: %w", err)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("command line is empty")
	}
	assignments, err := ParseAssignments(words[1:])
	if err != nil {
		return "", nil, err
	}
	return words[0], assignments, nil
}

// Apply stores assignments as params of the panel, passing each value
// through FormValues of the matching argument.
func (it *List) Apply(id ID, assignments []Assignment) error {
	entry, ok := it.FindByID(id)
	if !ok {
		return fmt.Errorf("panel %s does not exist", id)
	}
	collected := make(map[string][]string)
	order := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		arg := catalog.ArgSpec{Name: assignment.Name, Type: catalog.TypeString}
		if entry.Cmd != nil {
			if known, ok := entry.Cmd.Arg(assignment.Name); ok {
				arg = *known
			}
		}
		if _, seen := collected[assignment.Name]; !seen {
			order = append(order, assignment.Name)
		}
		collected[assignment.Name] = append(collected[assignment.Name], FormValues(arg, assignment.Value)...)
	}
	for _, name := range order {
		it.SetParam(id, name, collected[name]...)
	}
	return nil
}

// Open adds a panel for the command at path, seeds its defaults and
// applies the assignments. The panel id is returned even when the
// assignments are rejected.
func (it *List) Open(index *catalog.Index, path string, assignments []Assignment) (ID, error) {
	node, ok := index.Lookup(path)
	if !ok {
		return 0, fmt.Errorf("no command at path %q", path)
	}
	if !node.IsCallable {
		return 0, fmt.Errorf("%q is a command group, not a command", path)
	}
	id := it.Add(node)
	it.SeedDefaults(id)
	return id, it.Apply(id, assignments)
}

// SeedDefaults stores the argument defaults of the panel command as its
// params.
func (it *List) SeedDefaults(id ID) bool {
	entry, ok := it.FindByID(id)
	if !ok {
		return false
	}
	for name, values := range Defaults(entry.Cmd) {
		it.SetParam(id, name, values...)
	}
	return true
}
