package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshyorko/sakdash/backend"
	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

const (
	formatText = `text`
	formatJson = `json`
	formatYaml = `yaml`
)

var (
	catalogFormat   string
	catalogCallable bool
)

func loadIndex(api *backend.API) *catalog.Index {
	index := catalog.NewIndex()
	err := index.Load(context.Background(), api)
	pretty.Guard(err == nil, 3, "Could not load commands from %s: %v", api.Endpoint(), err)
	return index
}

func encodeTree(root *catalog.CommandNode, format string) ([]byte, error) {
	switch format {
	case formatJson:
		return json.MarshalIndent(root, "", "  ")
	case formatYaml:
		return yaml.Marshal(root)
	case formatText:
		return []byte(treeListing(root, false)), nil
	}
	return nil, fmt.Errorf("unknown format %q, use one of: text, json, yaml", format)
}

func treeListing(root *catalog.CommandNode, callableOnly bool) string {
	var out strings.Builder
	root.Walk(func(node *catalog.CommandNode, depth int) error {
		if callableOnly {
			if node.IsCallable {
				fmt.Fprintf(&out, "%s\n", node.Path)
			}
			return nil
		}
		marker := "+"
		if node.IsCallable {
			marker = "-"
		}
		fmt.Fprintf(&out, "%s%s %s", strings.Repeat("  ", depth), marker, node.Title())
		if node.IsCallable {
			fmt.Fprintf(&out, "  %s", node.Path)
		}
		if len(node.HelpMsg) > 0 {
			fmt.Fprintf(&out, "  # %s", firstLine(node.HelpMsg))
		}
		out.WriteString("\n")
		return nil
	})
	return out.String()
}

func firstLine(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return line
}

func argumentListing(node *catalog.CommandNode) string {
	var out strings.Builder
	fmt.Fprintf(&out, "path:     %s\n", node.Path)
	fmt.Fprintf(&out, "name:     %s\n", node.Title())
	fmt.Fprintf(&out, "callable: %v\n", node.IsCallable)
	if len(node.HelpMsg) > 0 {
		fmt.Fprintf(&out, "help:     %s\n", strings.TrimSpace(node.HelpMsg))
	}
	if len(node.Args) == 0 {
		return out.String()
	}
	out.WriteString("arguments:\n")
	for _, arg := range node.Args {
		kind := arg.Kind().String()
		if arg.Kind() == catalog.KindUnsupported {
			kind = fmt.Sprintf("%s (unsupported)", arg.Type)
		}
		fmt.Fprintf(&out, "  %s: %s", arg.Name, kind)
		if defaults := arg.DefaultValues(); len(defaults) > 0 {
			fmt.Fprintf(&out, " = %s", strings.Join(defaults, ", "))
		}
		if arg.HasChoices() {
			fmt.Fprintf(&out, " [%s]", strings.Join(arg.Choices, "|"))
		}
		if len(arg.Help) > 0 {
			fmt.Fprintf(&out, "  # %s", firstLine(arg.Help))
		}
		out.WriteString("\n")
	}
	return out.String()
}

var catalogCmd = &cobra.Command{
	Use:     "catalog",
	Aliases: []string{"commands", "tree"},
	Short:   "Show the command tree of the backend.",
	Long:    "Show the command tree of the backend as indented text, json or yaml.",
	Run: func(cmd *cobra.Command, args []string) {
		index := loadIndex(connect())
		if catalogCallable {
			common.Stdout("%s", treeListing(index.Root(), true))
			return
		}
		content, err := encodeTree(index.Root(), catalogFormat)
		pretty.Guard(err == nil, 4, "%v", err)
		common.Stdout("%s\n", strings.TrimRight(string(content), "\n"))
		if catalogFormat == formatText {
			common.Log("%d commands, %d callable, digest %s.", index.Len(), len(index.Callable()), index.Digest())
		}
	},
}

var catalogLookupCmd = &cobra.Command{
	Use:   "lookup <path>",
	Short: "Show one command and its arguments.",
	Long:  "Show one command and its arguments.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index := loadIndex(connect())
		node, ok := index.Lookup(args[0])
		pretty.Guard(ok, 5, "No command at path %q.", args[0])
		common.Stdout("%s", argumentListing(node))
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogLookupCmd)
	catalogCmd.Flags().StringVarP(&catalogFormat, "format", "f", formatText, "Output format: text, json or yaml.")
	catalogCmd.Flags().BoolVarP(&catalogCallable, "callable", "c", false, "Only list paths of callable commands.")
}
