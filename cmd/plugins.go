package cmd

import (
	"context"

	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/joshyorko/sakdash/settings"

	"github.com/spf13/cobra"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the plugins the backend has loaded.",
	Long:  "List the plugins the backend has loaded.",
	Run: func(cmd *cobra.Command, args []string) {
		if !settings.Global.PluginsEnabled() {
			pretty.Note("Plugin listing is disabled in configuration (%s: false).", settings.PluginsKey)
			return
		}
		plugins, err := connect().Plugins(context.Background())
		pretty.Guard(err == nil, 3, "Could not list plugins: %v", err)
		if len(plugins) == 0 {
			common.Log("Backend has no plugins.")
			return
		}
		for _, plugin := range plugins {
			common.Stdout("%-24s %s\n", plugin.Name, plugin.Path)
		}
	},
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}
