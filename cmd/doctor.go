package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/joshyorko/sakdash/catalog"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/joshyorko/sakdash/settings"
	"github.com/mitchellh/go-ps"

	"github.com/spf13/cobra"
)

const (
	statusOk   = `ok`
	statusWarn = `warn`
	statusFail = `fail`
)

type check struct {
	Name   string
	Status string
	Detail string
}

type checks []check

func (it checks) failures() int {
	count := 0
	for _, entry := range it {
		if entry.Status == statusFail {
			count += 1
		}
	}
	return count
}

func (it checks) render(plain bool) string {
	rows := make([][]string, 0, len(it))
	for _, entry := range it {
		rows = append(rows, []string{entry.Name, entry.Status, entry.Detail})
	}
	colors := map[string]lipgloss.Style{
		statusOk:   lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")),
		statusWarn: lipgloss.NewStyle().Foreground(lipgloss.Color("#FBBF24")),
		statusFail: lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Bold(true),
	}
	grid := table.New().
		Border(lipgloss.RoundedBorder()).
		StyleFunc(func(row, column int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow || plain || column != 1 {
				return style
			}
			return colors[rows[row][1]].Padding(0, 1)
		}).
		Headers("check", "status", "detail").
		Rows(rows...)
	return grid.String()
}

// localBackends lists running processes that look like the sak backend.
func localBackends(processes []ps.Process, self int) []string {
	result := []string{}
	for _, process := range processes {
		if process.Pid() == self {
			continue
		}
		name := strings.ToLower(process.Executable())
		if strings.HasPrefix(name, "sakdash") {
			continue
		}
		if strings.HasPrefix(name, "sak") {
			result = append(result, fmt.Sprintf("%s (pid %d)", process.Executable(), process.Pid()))
		}
	}
	return result
}

func diagnose(ctx context.Context) checks {
	result := checks{}
	for _, key := range sortedKeys(settings.Global.Diagnostics()) {
		result = append(result, check{"config " + key, statusOk, settings.Global.Diagnostics()[key]})
	}

	api := connect()
	status, elapsed, err := api.Reachable(ctx)
	switch {
	case err != nil:
		result = append(result, check{"backend", statusFail, err.Error()})
	case status >= 400:
		result = append(result, check{"backend", statusWarn, fmt.Sprintf("HTTP %d in %s", status, elapsed)})
	default:
		result = append(result, check{"backend", statusOk, fmt.Sprintf("HTTP %d in %s", status, elapsed)})
	}

	index := catalog.NewIndex()
	err = index.Load(ctx, api)
	if err != nil {
		result = append(result, check{"catalog", statusFail, err.Error()})
	} else {
		detail := fmt.Sprintf("%d commands, %d callable, digest %s", index.Len(), len(index.Callable()), index.Digest())
		result = append(result, check{"catalog", statusOk, detail})
	}

	if settings.Global.PluginsEnabled() {
		plugins, err := api.Plugins(ctx)
		if err != nil {
			result = append(result, check{"plugins", statusWarn, err.Error()})
		} else {
			result = append(result, check{"plugins", statusOk, fmt.Sprintf("%d loaded", len(plugins))})
		}
	}

	processes, err := ps.Processes()
	if err != nil {
		result = append(result, check{"local", statusWarn, err.Error()})
	} else if found := localBackends(processes, os.Getpid()); len(found) > 0 {
		result = append(result, check{"local", statusOk, strings.Join(found, ", ")})
	} else {
		result = append(result, check{"local", statusOk, "no local backend process, fine for remote endpoints"})
	}
	return result
}

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"diagnostics", "diag"},
	Short:   "Check configuration and backend connectivity.",
	Long:    "Check configuration, backend reachability, command catalog and plugins.",
	Run: func(cmd *cobra.Command, args []string) {
		if common.DebugFlag() {
			defer common.Stopwatch("Diagnostics lasted").Report()
		}
		result := diagnose(context.Background())
		common.Stdout("%s\n", result.render(pretty.Colorless || pretty.Disabled))
		pretty.Guard(result.failures() == 0, 7, "%d checks failed.", result.failures())
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
