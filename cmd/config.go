package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/joshyorko/sakdash/backend"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/joshyorko/sakdash/settings"
	"github.com/joshyorko/sakdash/xviper"

	"github.com/spf13/cobra"
)

// settingValue checks text against the key and returns the typed value to
// store.
func settingValue(key, text string) (interface{}, error) {
	switch key {
	case settings.EndpointKey:
		return backend.NormalizeEndpoint(text)
	case settings.TimeoutKey:
		timeout, err := time.ParseDuration(text)
		if err != nil || timeout < 0 {
			return nil, fmt.Errorf("timeout %q is not a non-negative duration like 30s", text)
		}
		return timeout.String(), nil
	case settings.PluginsKey:
		enabled, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("plugins %q is not true or false", text)
		}
		return enabled, nil
	case settings.ThemeKey:
		return text, nil
	}
	return nil, fmt.Errorf("unknown setting %q, known are: %s, %s, %s, %s", key, settings.EndpointKey, settings.TimeoutKey, settings.PluginsKey, settings.ThemeKey)
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var configCmd = &cobra.Command{
	Use:     "config",
	Aliases: []string{"configuration", "settings"},
	Short:   "Show the effective configuration.",
	Long:    "Show the effective configuration, after defaults, file, environment and flags.",
	Run: func(cmd *cobra.Command, args []string) {
		diagnostics := settings.Global.Diagnostics()
		diagnostics["theme"] = settings.Global.Theme()
		for _, key := range sortedKeys(diagnostics) {
			common.Stdout("%-10s %s\n", key+":", diagnostics[key])
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Store one setting into the configuration file.",
	Long:  "Store one setting into the configuration file.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		value, err := settingValue(args[0], args[1])
		pretty.Guard(err == nil, 4, "%v", err)
		xviper.Set(args[0], value)
		err = xviper.Save()
		pretty.Guard(err == nil, 1, "Could not save %q: %v", xviper.ConfigFile(), err)
		pretty.Ok()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd)
}
