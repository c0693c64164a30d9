package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kubestronaut/internal/app"
	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/explain"
	"github.com/abhisek/kubestronaut/internal/journal"
	"github.com/abhisek/kubestronaut/internal/llm"
	"github.com/abhisek/kubestronaut/internal/logging"
	"github.com/abhisek/kubestronaut/internal/tracker"
)

// runTUI opens the journal, builds the services and launches the TUI.
func runTUI(cmd *cobra.Command) error {
	ctx := cmd.Context()
	log, err := newLogger(cmd, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	j, err := journal.OpenMemory()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	log = log.With("session", j.SessionID())
	session := tracker.NewSession(cat, tracker.WithRecorder(j), tracker.WithLogger(log))
	log.Info("starting tui", "courses", len(cat.Courses()), "topics", cat.TopicCount())

	return app.Run(ctx, app.Options{
		Session:   session,
		Explainer: newExplainer(ctx, cat, j, log),
		Activity:  j,
		Logger:    log,
	})
}

// newExplainer wires the configured LLM provider into an explain.Service.
// Without one the service serves static notes. recorder may be nil.
func newExplainer(ctx context.Context, cat *curriculum.Catalog, recorder llm.EventRecorder, log *logging.Logger) *explain.Service {
	var provider llm.Provider
	if cfg, ok := llm.ResolveConfig(); ok {
		p, err := llm.NewProvider(ctx, cfg, recorder, log)
		if err != nil {
			log.Warn("LLM provider not configured, using static notes", "err", err)
		} else {
			provider = p
			log.Info("LLM provider ready", "provider", cfg.Provider, "model", p.ModelID())
		}
	} else {
		log.Debug("no LLM provider configured")
	}
	return explain.NewService(cat, provider, explain.DefaultConfig(), log)
}
