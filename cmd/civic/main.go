package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/steveyegge/civic/internal/config"
	"github.com/steveyegge/civic/internal/debug"
	"github.com/steveyegge/civic/internal/storage"
	"github.com/steveyegge/civic/internal/storage/sqlite"
	"github.com/steveyegge/civic/internal/telemetry"
)

var (
	dbPath     string
	store      storage.Storage
	jsonOutput bool

	verboseFlag bool // Enable verbose/debug output
	quietFlag   bool // Suppress non-essential output

	// Signal-aware context for graceful cancellation
	rootCtx    context.Context
	rootCancel context.CancelFunc
)

// noDbCommands never touch the issue database.
var noDbCommands = map[string]bool{
	"version":    true,
	"config":     true,
	"help":       true,
	"completion": true,
	"__complete": true,
}

func init() {
	// .env values never override variables already set in the environment.
	_ = godotenv.Load()

	if err := config.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize config: %v\n", err)
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: $CIVIC_DB or ~/.civic/citizen.db)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")

	rootCmd.AddGroup(&cobra.Group{ID: "issues", Title: "Working With Issues:"})
	rootCmd.AddGroup(&cobra.Group{ID: "views", Title: "Views & Reports:"})
}

var rootCmd = &cobra.Command{
	Use:   "civic",
	Short: "civic - report and vote on neighborhood issues",
	Long: `Citizens report civic issues (potholes, broken lights, unsafe crossings),
vote on the ones that matter to them, and review what the community cares about most.`,
	Run: func(cmd *cobra.Command, args []string) {
		// No subcommand - show usage
		_ = cmd.Help() // Help() always returns nil for cobra commands
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupSignalContext()
		applyVerbosityFlags()
		applyViperOverrides(cmd)
		initTelemetry()

		if isNoDbCommand(cmd) {
			return
		}
		openStore()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			if err := store.Close(); err != nil {
				WarnError("failed to close database: %v", err)
			}
			store = nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(ctx); err != nil {
			debug.Logf("telemetry shutdown: %v", err)
		}

		if rootCancel != nil {
			rootCancel()
		}
	},
}

func setupSignalContext() {
	rootCtx, rootCancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func applyVerbosityFlags() {
	debug.SetVerbose(verboseFlag)
	debug.SetQuiet(quietFlag)
}

// applyViperOverrides lets explicitly set flags win over env and config file,
// then reads the effective values back into the flag-bound globals.
func applyViperOverrides(cmd *cobra.Command) {
	for _, key := range []string{config.KeyDB, config.KeyJSON} {
		if err := config.BindFlag(key, cmd.Flags().Lookup(key)); err != nil {
			debug.Logf("failed to bind --%s: %v", key, err)
		}
	}
	dbPath = config.GetString(config.KeyDB)
	jsonOutput = config.GetBool(config.KeyJSON)
}

func initTelemetry() {
	if err := telemetry.Init(rootCtx, "civic", Version); err != nil {
		WarnError("telemetry disabled: %v", err)
	}
}

// isNoDbCommand reports whether cmd runs without opening the store. The root
// command only prints usage.
func isNoDbCommand(cmd *cobra.Command) bool {
	return !cmd.HasParent() || noDbCommands[cmd.Name()]
}

func openStore() {
	opts := []sqlite.Option{sqlite.WithLogger(debug.Logger())}
	if !config.GetBool(config.KeyListStrictSort) {
		opts = append(opts, sqlite.WithLenientSort())
	}

	s, err := sqlite.New(rootCtx, dbPath, opts...)
	if err != nil {
		FatalErrorWithHint(fmt.Sprintf("failed to open database %s: %v", dbPath, err),
			"pass --db or set CIVIC_DB to a writable location")
	}
	store = telemetry.WrapStorage(s)
}

// getContext returns the command context, falling back to Background for
// code paths that run outside rootCmd (tests).
func getContext() context.Context {
	if rootCtx != nil {
		return rootCtx
	}
	return context.Background()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
