package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/kubestronaut/internal/curriculum"
	"github.com/abhisek/kubestronaut/internal/logging"
)

const curriculumEnv = "KUBESTRONAUT_CURRICULUM"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kubestronaut",
		Short: "Kubernetes certification curriculum tracker",
		Long: `Kubestronaut maps the CKA, CKAD, CKS, KCNA and KCSA curricula in one
knowledge graph. Topics shared between certifications are selected together,
and completing one certification credits progress to the others.

Topic notes use an LLM when one is configured:
  KUBESTRONAUT_LLM_PROVIDER   anthropic, openai, gemini or mock
  KUBESTRONAUT_<PROVIDER>_API_KEY, KUBESTRONAUT_<PROVIDER>_MODEL
  KUBESTRONAUT_OPENAI_BASE_URL for OpenAI-compatible gateways
  or the standard GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}

	root.PersistentFlags().String("curriculum", "", "Path to a curriculum YAML file (overrides "+curriculumEnv+")")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides KUBESTRONAUT_LOG_LEVEL)")
	root.PersistentFlags().String("log-file", "", "Write logs to this file (overrides KUBESTRONAUT_LOG_FILE)")

	root.AddCommand(newCoursesCmd())
	root.AddCommand(newTopicsCmd())
	root.AddCommand(newRelatedCmd())
	root.AddCommand(newSharedCmd())
	root.AddCommand(newProgressCmd())
	root.AddCommand(newExplainCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// loadCatalog returns the curriculum from --curriculum, then the
// KUBESTRONAUT_CURRICULUM env var, then the embedded dataset.
func loadCatalog(cmd *cobra.Command) (*curriculum.Catalog, error) {
	path, _ := cmd.Flags().GetString("curriculum")
	if path == "" {
		path = os.Getenv(curriculumEnv)
	}
	if path == "" {
		return curriculum.Default(), nil
	}
	cat, err := curriculum.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load curriculum: %w", err)
	}
	return cat, nil
}

// newLogger builds the logger from env and flags. With quiet set and no log
// file the logger discards everything, which keeps the TUI screen clean.
func newLogger(cmd *cobra.Command, quiet bool) (*logging.Logger, error) {
	cfg := logging.ConfigFromEnv()
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-file"); v != "" {
		cfg.File = v
	}
	if quiet && cfg.File == "" {
		return logging.Nop(), nil
	}
	return logging.New(cfg)
}
