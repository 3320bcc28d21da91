package cmd

import (
	"time"

	"github.com/joshyorko/sakdash/backend"
	"github.com/joshyorko/sakdash/common"
	"github.com/joshyorko/sakdash/pretty"
	"github.com/joshyorko/sakdash/settings"
	"github.com/joshyorko/sakdash/xviper"

	"github.com/spf13/cobra"
)

var (
	configFile   string
	endpointFlag string
	timeoutFlag  time.Duration
	silentFlag   bool
	debugFlag    bool
	traceFlag    bool
)

var rootCmd = &cobra.Command{
	Use:     "sakdash",
	Short:   "Terminal dashboard for a Swiss-army-knife command backend.",
	Version: common.Version,
	Long: `sakdash browses the command tree served by a backend, fills in command
arguments, runs commands and shows their results as tables, charts, text
or image summaries. Use "sakdash ui" for the full screen dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
		target := configFile
		if len(target) == 0 {
			target = common.Product.ConfigFile()
		}
		err := xviper.SetConfigFile(target)
		if err != nil {
			pretty.Warning("Could not read configuration %q, reason: %v", target, err)
		}
		common.Trace("Using configuration %q and endpoint %q.", xviper.ConfigFile(), settings.Global.Endpoint())
	},
}

// Execute runs the command line and panics with common.ExitCode on failure.
func Execute() {
	err := rootCmd.Execute()
	pretty.Guard(err == nil, 1, "Error: %v", err)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Configuration file to use. Default is $SAKDASH_HOME/sakdash.yaml.")
	flags.StringVarP(&endpointFlag, "endpoint", "e", settings.DefaultEndpoint, "Backend base address.")
	flags.DurationVar(&timeoutFlag, "timeout", 0, "Timeout for each backend request, zero means no timeout.")
	flags.BoolVar(&silentFlag, "silent", false, "Be less verbose on output.")
	flags.BoolVar(&debugFlag, "debug", false, "Turn on debugging output.")
	flags.BoolVar(&traceFlag, "trace", false, "Turn on tracing output.")

	xviper.BindFlag(settings.EndpointKey, flags.Lookup("endpoint"))
	xviper.BindFlag(settings.TimeoutKey, flags.Lookup("timeout"))
}

// connect builds the backend API from the effective settings.
func connect() *backend.API {
	client, err := backend.NewClient(settings.Global.Endpoint())
	pretty.Guard(err == nil, 2, "Bad endpoint %q: %v", settings.Global.Endpoint(), err)
	if timeout := settings.Global.Timeout(); timeout > 0 {
		client = client.WithTimeout(timeout)
	}
	if common.TraceFlag() {
		client = client.WithTracing()
	}
	return backend.NewAPI(client)
}
