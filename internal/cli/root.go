package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/weightvote/weightvote-cli/internal/adapters/progress"
	"github.com/weightvote/weightvote-cli/internal/app"
	"github.com/weightvote/weightvote-cli/internal/config"
	"github.com/weightvote/weightvote-cli/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
	// cleanupKey is the context key for the session teardown
	cleanupKey contextKey = "cleanup"
)

// annotationTUI marks commands that own the terminal: no spinner, no timeout
const annotationTUI = "wvote/tui"

// appInitializer builds the app; tests swap it for a fake-backed one
var appInitializer func(v *viper.Viper, sink usecase.ProgressSink) (*app.App, error) = app.InitApp

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wvote",
		Short: "Encrypted-weight voting client",
		Long: `wvote submits encrypted weights attached to proposals on an FHE-enabled
voting contract, and later reveals and verifies them on-chain.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipAppInit(cmd) {
				return nil
			}

			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				return err
			}

			v := config.SetupViper(projectRoot, cmd)
			tui := cmd.Annotations[annotationTUI] == "true"
			sink := newProgressSink(v.GetString("output"), v.GetBool("non_interactive") || tui)

			// Initialize app with DI
			appInstance, err := appInitializer(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			cancel := context.CancelFunc(func() {})
			if appInstance.Config.Timeout > 0 && !tui {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}

			cleanup := func() {
				appInstance.ConnectSession.Close()
				if s, ok := sink.(*progress.SpinnerSink); ok {
					s.Stop()
				}
				cancel()
			}
			cmd.SetContext(context.WithValue(ctx, cleanupKey, cleanup))

			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from wvote.toml to use")
	rootCmd.PersistentFlags().String("rpc-url", "", "Ledger RPC endpoint (overrides the network entry)")
	rootCmd.PersistentFlags().String("contract", "", "Voting contract address")
	rootCmd.PersistentFlags().String("relayer-url", "", "Encryption relayer endpoint")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table, json, yaml)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Abort the command after this duration (default 5m)")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	for _, c := range []*cobra.Command{NewListCmd(), NewCreateCmd(), NewRevealCmd(), NewDashboardCmd()} {
		c.GroupID = "main"
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{NewStatsCmd(), NewPingCmd()} {
		c.GroupID = "management"
		rootCmd.AddCommand(c)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

func skipAppInit(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", cobra.ShellCompRequestCmd:
		return true
	}
	return false
}

// newProgressSink picks the spinner for humans and stays quiet for machine output
func newProgressSink(output string, nonInteractive bool) usecase.ProgressSink {
	if nonInteractive || (output != "" && output != "table") {
		return progress.NewNopSink()
	}
	return progress.NewSpinnerSink()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}

// withApp resolves the app for a command and tears the session down when the
// command returns, whether it failed or not.
func withApp(run func(cmd *cobra.Command, args []string, app *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app, err := getApp(cmd)
		if err != nil {
			return err
		}
		if cleanup, ok := cmd.Context().Value(cleanupKey).(func()); ok {
			defer cleanup()
		}
		return run(cmd, args, app)
	}
}

// useColor reports whether human output should be colored
func useColor(app *app.App) bool {
	return !app.Config.NonInteractive && !app.Config.JSON
}
