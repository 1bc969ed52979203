package cmd

import (
	"os"
	"time"

	"nathanbeddoewebdev/rscloud/cmd/commands/audit"
	"nathanbeddoewebdev/rscloud/cmd/commands/auth"
	"nathanbeddoewebdev/rscloud/cmd/commands/catalog"
	"nathanbeddoewebdev/rscloud/cmd/commands/cmdutil"
	cfgcmd "nathanbeddoewebdev/rscloud/cmd/commands/config"
	"nathanbeddoewebdev/rscloud/cmd/commands/ipgroup"
	"nathanbeddoewebdev/rscloud/cmd/commands/node"
	"nathanbeddoewebdev/rscloud/internal/auditlog"
	"nathanbeddoewebdev/rscloud/internal/logger"
	"nathanbeddoewebdev/rscloud/internal/providers"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	// Group commands resolve --variant in their own PersistentPreRunE; the
	// root hook must still run for --verbose.
	cobra.EnableTraverseRunHooks = true

	var cmd = &cobra.Command{
		Use:   "rscloud",
		Short: "Manage Rackspace Cloud Servers (v1.0) and compatible clouds",
		Long: `rscloud manages nodes, images, flavors and shared IP groups on the
Rackspace Cloud Servers v1.0 API, its UK region and OpenStack endpoints that
speak the same XML API.

Supported variants: rackspace, rackspace-uk, openstack.

Quick start:
  rscloud config set username alice          # Account username
  rscloud auth login rackspace               # Store your API key
  rscloud config set default-variant rackspace
  rscloud catalog all                        # Find image and size IDs
  rscloud node create --name web-1 --image 112 --size 1
  rscloud node list`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				logger.SetLevel(zerolog.DebugLevel)
			}
			l := logger.Get().With().Str("command", cmd.CommandPath()).Logger()
			cmd.SetContext(logger.WithLogger(cmd.Context(), &l))
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log API requests and responses at debug level")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(node.NewCommand())
	cmd.AddCommand(catalog.NewCommand())
	cmd.AddCommand(ipgroup.NewCommand())
	cmd.AddCommand(audit.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterRackspace()

	var root = rootCmd()
	start := time.Now()
	executed, err := root.ExecuteC()
	recordAudit(executed, os.Args[1:], start, err)
	if err != nil {
		os.Exit(1)
	}
}

// recordAudit stores a best-effort audit entry for commands that change
// provider or credential state.
func recordAudit(cmd *cobra.Command, args []string, start time.Time, runErr error) {
	if cmd == nil || !cmdutil.IsAudited(cmd) {
		return
	}
	ctx := cmd.Context()
	auditlog.Record(ctx, auditlog.NewEntry(ctx, cmd.CommandPath(), args, start, runErr))
}
