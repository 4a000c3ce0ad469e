package queue

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"k8s.io/client-go/rest"

	"tekqueue/internal/config"
	"tekqueue/internal/store"
	"tekqueue/pkg/logging"
)

// eventChannelBufferSize bounds the watcher-to-tagger handoff. Anything
// dropped past this is recovered by the next sweep's full listing.
const eventChannelBufferSize = 256

// Controller wires the watcher, tagger/evaluator, and sweeper together over
// one shared store.
type Controller struct {
	cfg      config.QueueConfig
	store    *store.Store
	patterns *PatternSet
	watcher  *Watcher
	tagger   *Tagger
	sweeper  *Sweeper
}

// NewController assembles the queue controller from its configuration and a
// cluster connection.
func NewController(cfg config.QueueConfig, restConfig *rest.Config, s *store.Store) *Controller {
	patterns := NewPatternSet(cfg.NamespacePatterns)
	limits := NewLimitReader(s, cfg.DefaultLimit)
	evaluator := NewEvaluator(s, limits, patterns)
	tagger := NewTagger(s, evaluator)

	return &Controller{
		cfg:      cfg,
		store:    s,
		patterns: patterns,
		watcher:  NewWatcher(restConfig, store.NewScheme(), patterns),
		tagger:   tagger,
		sweeper:  NewSweeper(s, tagger, limits, patterns, cfg.SweepInterval),
	}
}

// ApplyConfig takes over the reloadable parts of a fresh configuration. Only
// the namespace patterns can change at runtime; the sweep interval and the
// cluster connection are fixed for the process lifetime.
func (c *Controller) ApplyConfig(cfg config.QueueConfig) {
	logging.Info("Controller", "Applying reloaded configuration, namespace patterns %v", cfg.NamespacePatterns)
	c.patterns.Update(cfg.NamespacePatterns)
}

// Run starts the event stream and the periodic sweep and blocks until the
// context is cancelled. The two loops share no state beyond the cluster
// itself; every action they take is idempotent, so they are free to race.
func (c *Controller) Run(ctx context.Context) error {
	events := make(chan RunEvent, eventChannelBufferSize)

	if err := c.watcher.Start(ctx, events); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer c.watcher.Stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return c.processEvents(ctx, events)
	})
	g.Go(func() error {
		return c.sweeper.Run(ctx)
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// processEvents consumes watcher events and runs tagging plus admission for
// each. A failure on one run never stops the stream.
func (c *Controller) processEvents(ctx context.Context, events <-chan RunEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-events:
			if err := c.tagger.Process(ctx, event); err != nil {
				logging.Error("Controller", err, "Failed to process %s/%s, next sweep will cover it",
					event.Namespace, event.Name)
			}
		}
	}
}
