package app

import (
	"context"
	"fmt"
	"os"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"tekqueue/internal/config"
	"tekqueue/internal/queue"
	"tekqueue/internal/store"
	"tekqueue/pkg/logging"
)

// Application bootstraps and runs the queue controller.
//
// It follows a two-phase initialization: the bootstrap phase loads
// configuration, initializes logging, and verifies cluster connectivity (the
// only failure treated as fatal); the execution phase runs the controller
// until the context is cancelled.
type Application struct {
	config     *Config
	controller *queue.Controller
}

// NewApplication creates and initializes a new application instance.
//
// It returns an error when configuration cannot be loaded or the cluster API
// is unreachable. Both are startup failures the process should exit on;
// everything that can go wrong later is retried in the control loops instead.
func NewApplication(cfg *Config) (*Application, error) {
	logLevel := logging.LevelInfo
	if cfg.Debug {
		logLevel = logging.LevelDebug
	}
	logging.Init(logLevel, os.Stdout)

	queueCfg, err := config.LoadConfig(cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(cfg.NamespacePatterns) > 0 {
		queueCfg.NamespacePatterns = cfg.NamespacePatterns
	}
	if cfg.SweepInterval > 0 {
		queueCfg.SweepInterval = cfg.SweepInterval
	}
	if err := queueCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.QueueConfig = &queueCfg

	restConfig, err := buildRestConfig(cfg.Kubeconfig)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load Kubernetes configuration")
		return nil, fmt.Errorf("failed to load Kubernetes configuration: %w", err)
	}

	k8sClient, err := client.New(restConfig, client.Options{Scheme: store.NewScheme()})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}

	st := store.New(k8sClient, queueCfg.RequestTimeout)

	// Probe the API before declaring the bootstrap good: an unreachable
	// cluster at startup is the one fatal case.
	if _, err := st.ListNamespaceNames(context.Background()); err != nil {
		return nil, fmt.Errorf("cluster API unreachable: %w", err)
	}

	logging.Info("Bootstrap", "Managing namespaces matching %v, sweep interval %v, default limit %d",
		queueCfg.NamespacePatterns, queueCfg.SweepInterval, queueCfg.DefaultLimit)

	return &Application{
		config:     cfg,
		controller: queue.NewController(queueCfg, restConfig, st),
	}, nil
}

// Run executes the controller until the context is cancelled. When a
// configuration file is in use, changes to it are picked up at runtime.
func (a *Application) Run(ctx context.Context) error {
	if a.config.ConfigPath != "" {
		watcher := config.NewWatcher(a.config.ConfigPath, 0)
		reloads := make(chan config.QueueConfig, 1)

		if err := watcher.Start(ctx, reloads); err != nil {
			logging.Warn("Bootstrap", "Configuration reloading disabled: %v", err)
		} else {
			defer watcher.Stop()
			go a.consumeReloads(ctx, reloads)
		}
	}

	return a.controller.Run(ctx)
}

// consumeReloads applies reloaded configurations, keeping any flag overrides
// in force over the file contents.
func (a *Application) consumeReloads(ctx context.Context, reloads <-chan config.QueueConfig) {
	for {
		select {
		case <-ctx.Done():
			return
		case queueCfg := <-reloads:
			if len(a.config.NamespacePatterns) > 0 {
				queueCfg.NamespacePatterns = a.config.NamespacePatterns
			}
			a.controller.ApplyConfig(queueCfg)
		}
	}
}

// buildRestConfig resolves the cluster connection, preferring an explicit
// kubeconfig path over the standard in-cluster / environment detection.
func buildRestConfig(kubeconfig string) (*rest.Config, error) {
	if kubeconfig != "" {
		return clientcmd.BuildConfigFromFlags("", kubeconfig)
	}
	return ctrl.GetConfig()
}
