package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/joshyorko/sakdash/anywork"
	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/payload"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/joshyorko/sakdash/render"
	"github.com/joshyorko/sakdash/session"
	"github.com/joshyorko/sakdash/wizard"

	"github.com/spf13/cobra"
)

var (
	runArgsFlag   string
	runAlsoFlag   []string
	runImagesFlag string
	runChartFlag  bool
	runAskFlag    bool
)

// commandWords joins positional name=value words with the shell-like
// --args line.
func commandWords(positional []string, line string) ([]string, error) {
	words := append([]string{}, positional...)
	if len(strings.TrimSpace(line)) == 0 {
		return words, nil
	}
	extra, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("--args: %w", err)
	}
	return append(words, extra...), nil
}

// runPanels starts every panel at once on the worker pool and returns the
// completions in panel order.
func runPanels(list *session.List, ids []session.ID) ([]session.Completion, error) {
	results := make([]session.Completion, len(ids))
	for at, id := range ids {
		call, ok := list.RunByID(context.Background(), id)
		if !ok {
			continue
		}
		slot := &results[at]
		anywork.Backlog(func() {
			*slot = call()
		})
	}
	return results, anywork.Sync()
}

func failed(completion session.Completion) bool {
	if completion.Err != nil {
		return true
	}
	_, ok := completion.Response.(payload.Failure)
	return ok
}

func showCompletion(completion session.Completion, headers bool) {
	styles := render.DefaultStyles()
	if pretty.Colorless || pretty.Disabled {
		styles = render.PlainStyles()
	}
	if headers {
		common.Stdout("%s== %s %s (%s)%s\n", pretty.Bold, completion.ID, completion.Path, completion.Elapsed, pretty.Reset)
	}
	common.Stdout("%s\n", render.Render(completion.Response, render.Options{
		Width:  pretty.TerminalWidth(),
		Chart:  runChartFlag,
		Styles: styles,
	}))
	if picture, ok := completion.Response.(payload.Image); ok && len(runImagesFlag) > 0 {
		basename := fmt.Sprintf("%s-%d", strings.ReplaceAll(strings.Trim(completion.Path, "/"), "/", "_"), uint64(completion.ID))
		filename, err := render.SaveImage(picture, runImagesFlag, basename)
		if err != nil {
			pretty.Warning("Could not save image of %s: %v", completion.Path, err)
		} else {
			pretty.Note("Saved image to %s", filename)
		}
	}
	if completion.Err != nil {
		common.Debug("%s failed: %v", completion.Path, completion.Err)
	}
}

func chooseCommand(index *catalog.Index) string {
	callable := index.Callable()
	options := make([]wizard.Option, 0, len(callable))
	for _, node := range callable {
		options = append(options, wizard.Option{Name: node.Path, Description: firstLine(node.HelpMsg)})
	}
	picked, err := wizard.Choose("Which command to run?", options)
	pretty.Guard(err == nil, 4, "No command path given and none chosen: %v", err)
	return callable[picked].Path
}

var runCmd = &cobra.Command{
	Use:   "run [path] [name=value ...]",
	Short: "Run one command of the backend and show its result.",
	Long: `Run one command of the backend and show its result.

Arguments are given as name=value words, or as one shell-like line with
--args. Naming an argument several times sends several values. Arguments
not given keep their defaults. List arguments accept comma separated items.

Example:
  sakdash run /root/echo msg="hi there"
  sakdash run /root/stats --args 'columns=a,b window=7' --chart
  sakdash run /root/plot --save-images ./pictures`,
	Run: func(cmd *cobra.Command, args []string) {
		api := connect()
		index := loadIndex(api)

		var path string
		if len(args) > 0 {
			path, args = args[0], args[1:]
		} else {
			path = chooseCommand(index)
		}
		words, err := commandWords(args, runArgsFlag)
		pretty.Guard(err == nil, 4, "%v", err)
		assignments, err := session.ParseAssignments(words)
		pretty.Guard(err == nil, 4, "%v", err)

		list := session.NewList(api)
		primary, err := list.Open(index, path, assignments)
		pretty.Guard(err == nil, 5, "%v", err)
		if runAskFlag {
			entry, _ := list.FindByID(primary)
			answers, err := wizard.AskArguments(entry.Cmd, entry.Params)
			pretty.Guard(err == nil, 4, "%v", err)
			pretty.Guard(list.Apply(primary, answers) == nil, 4, "Could not apply answers.")
		}
		ids := []session.ID{primary}
		for _, also := range runAlsoFlag {
			id, err := list.Open(index, also, nil)
			pretty.Guard(err == nil, 5, "%v", err)
			ids = append(ids, id)
		}

		spinner := pretty.NewSpinner(fmt.Sprintf("Waiting for %s ...", api.Endpoint()))
		spinner.Start()
		completions, err := runPanels(list, ids)
		spinner.Stop(err == nil)
		if err != nil {
			pretty.Warning("%v", err)
		}
		failures := 0
		for _, completion := range completions {
			showCompletion(completion, len(completions) > 1)
			if failed(completion) {
				failures += 1
			}
		}
		pretty.Guard(failures == 0, 6, "%d of %d commands failed.", failures, len(completions))
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runArgsFlag, "args", "a", "", "Arguments as one shell-like line of name=value words.")
	runCmd.Flags().StringSliceVar(&runAlsoFlag, "also", nil, "Other command paths to run at the same time, with their defaults.")
	runCmd.Flags().StringVar(&runImagesFlag, "save-images", "", "Directory where image results are written.")
	runCmd.Flags().BoolVar(&runChartFlag, "chart", false, "Draw a bar chart under table results.")
	runCmd.Flags().BoolVar(&runAskFlag, "ask", false, "Ask the value of every argument before running.")
}
