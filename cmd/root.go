package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tekqueue/internal/app"

	"github.com/spf13/cobra"
)

var (
	// rootDebug enables verbose logging across the application.
	rootDebug bool

	// rootConfigPath is an optional path to a YAML configuration file.
	rootConfigPath string

	// rootKubeconfig is an optional kubeconfig path; defaults to the usual
	// in-cluster / environment detection.
	rootKubeconfig string

	// rootNamespacePatterns overrides the configured namespace glob patterns.
	rootNamespacePatterns []string

	// rootSweepInterval overrides the configured sweep interval.
	rootSweepInterval time.Duration
)

// rootCmd is the one and only run mode: tekqueue is a single-purpose daemon,
// so the root command starts the controller directly.
var rootCmd = &cobra.Command{
	Use:   "tekqueue",
	Short: "Enforce a cluster-wide concurrency limit on pipeline runs",
	Long: `tekqueue is a controller daemon that enforces a global ceiling on
concurrently running Tekton PipelineRuns across all namespaces matching the
configured glob patterns.

New runs in matched namespaces are tagged as managed and admitted while the
global limit has room; beyond the limit they are held Pending and promoted in
first-in-first-out order (by creation timestamp) as running pipelines finish.
Runs the platform starts despite a queue decision are deleted and recreated
at the back of the queue.

The limit is read from the cluster-scoped GlobalLimit resource
"tekton-queue-limit" (queue.tekton.dev/v1alpha1) on every pass, so operators
can retune concurrency at runtime without restarting the controller.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

// SetVersion sets the version for the root command, injected from main.
func SetVersion(v string) {
	rootCmd.Version = v
}

// runRoot bootstraps the application and runs it until a termination signal.
func runRoot(cmd *cobra.Command, args []string) error {
	cfg := app.NewConfig(rootDebug, rootConfigPath, rootKubeconfig, rootNamespacePatterns, rootSweepInterval)

	application, err := app.NewApplication(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}

// Execute is the main entry point for the CLI. It is called by main.main()
// and exits non-zero on any error, which for a controller daemon means an
// unrecoverable startup failure.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tekqueue version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&rootDebug, "debug", false, "Enable debug logging")
	rootCmd.Flags().StringVar(&rootConfigPath, "config", "", "Path to a YAML configuration file")
	rootCmd.Flags().StringVar(&rootKubeconfig, "kubeconfig", "", "Path to a kubeconfig file (defaults to in-cluster or $KUBECONFIG)")
	rootCmd.Flags().StringSliceVar(&rootNamespacePatterns, "namespace-pattern", nil, "Namespace glob pattern(s) to manage (default \"*-cicd\")")
	rootCmd.Flags().DurationVar(&rootSweepInterval, "sweep-interval", 0, "Reconciliation sweep interval (default 5s)")
}
