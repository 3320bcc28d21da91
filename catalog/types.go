// Package catalog holds the command tree published by the sak backend and
// the path keyed index the rest of sakdash looks commands up from.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Argument types the backend is known to send. The set is open, anything
// else is reported as unsupported and left alone.
const (
	TypeBool   = `bool`
	TypeString = `string`
	TypeList   = `list`
	TypeInt    = `int`
	TypeFloat  = `float`
	TypeDate   = `date`
)

type Kind int

const (
	KindUnsupported Kind = iota
	KindBool
	KindString
	KindList
	KindInt
	KindFloat
	KindDate
)

var kinds = map[string]Kind{
	TypeBool:   KindBool,
	TypeString: KindString,
	TypeList:   KindList,
	TypeInt:    KindInt,
	TypeFloat:  KindFloat,
	TypeDate:   KindDate,
}

func (it Kind) String() string {
	for name, kind := range kinds {
		if kind == it {
			return name
		}
	}
	return "unsupported"
}

// Choices are the allowed values of an argument. The backend sometimes
// sends numbers, they are kept as their textual form.
type Choices []string

func (it *Choices) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*it = nil
		return nil
	}
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("choices: %w", err)
	}
	result := make(Choices, 0, len(raw))
	for _, value := range raw {
		result = append(result, scalarText(value))
	}
	*it = result
	return nil
}

type ArgSpec struct {
	Name    string      `json:"name" yaml:"name"`
	Type    string      `json:"type" yaml:"type"`
	Choices Choices     `json:"choices,omitempty" yaml:"choices,omitempty"`
	Help    string      `json:"help,omitempty" yaml:"help,omitempty"`
	Default interface{} `json:"default,omitempty" yaml:"default,omitempty"`
}

func (it ArgSpec) Kind() Kind {
	kind, ok := kinds[strings.ToLower(strings.TrimSpace(it.Type))]
	if !ok {
		return KindUnsupported
	}
	return kind
}

func (it ArgSpec) HasChoices() bool {
	return len(it.Choices) > 0
}

// DefaultValues returns the default as the textual values a form would
// send. Missing defaults give nothing.
func (it ArgSpec) DefaultValues() []string {
	switch value := it.Default.(type) {
	case nil:
		return nil
	case []interface{}:
		result := make([]string, 0, len(value))
		for _, item := range value {
			result = append(result, scalarText(item))
		}
		return result
	default:
		return []string{scalarText(value)}
	}
}

type CommandNode struct {
	Path       string         `json:"path" yaml:"path"`
	Name       string         `json:"name" yaml:"name"`
	HelpMsg    string         `json:"helpmsg" yaml:"helpmsg,omitempty"`
	IsCallable bool           `json:"isCallable" yaml:"callable"`
	Args       []ArgSpec      `json:"args" yaml:"args,omitempty"`
	SubCmds    []*CommandNode `json:"subcmds" yaml:"subcmds,omitempty"`
}

// Parse decodes one command tree document.
func Parse(content []byte) (*CommandNode, error) {
	root := new(CommandNode)
	err := json.Unmarshal(content, root)
	if err != nil {
		return nil, fmt.Errorf("command tree: %w", err)
	}
	return root, nil
}

// Walk visits the node and its descendants depth first, parent before
// children and children in their given order. Visiting stops at the first
// error.
func (it *CommandNode) Walk(visit func(node *CommandNode, depth int) error) error {
	return it.walk(visit, 0)
}

func (it *CommandNode) walk(visit func(*CommandNode, int) error, depth int) error {
	if it == nil {
		return nil
	}
	if err := visit(it, depth); err != nil {
		return err
	}
	for _, child := range it.SubCmds {
		if err := child.walk(visit, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (it *CommandNode) Arg(name string) (*ArgSpec, bool) {
	for at := range it.Args {
		if it.Args[at].Name == name {
			return &it.Args[at], true
		}
	}
	return nil, false
}

// Title is the name when there is one, otherwise the last path element.
func (it *CommandNode) Title() string {
	if len(it.Name) > 0 {
		return it.Name
	}
	parts := strings.Split(strings.Trim(it.Path, "/"), "/")
	return parts[len(parts)-1]
}

func scalarText(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}
