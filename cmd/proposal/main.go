// Command proposal generates automation proposals from DOCX templates.
package main

import (
	"fmt"
	"os"

	"github.com/benjaminschreck/go-proposal/pkg/proposal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0"

// app carries the state shared by all subcommands.
type app struct {
	verbose     bool
	templateDir string
	outputDir   string
	catalogPath string
	currency    string

	logger *zap.Logger
	engine *proposal.Engine
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "proposal",
		Short: "Generate automation proposals from DOCX templates",
		Long: `proposal fills the <<placeholders>> of a proposal template with client,
pricing and team details and writes the finished DOCX.

Templates are looked up in --templates (or PROPOSAL_TEMPLATE_DIR) by the
file name declared for each variant. Run "proposal variants" to list them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVarP(&a.templateDir, "templates", "t", "", "Template directory (or set PROPOSAL_TEMPLATE_DIR)")
	root.PersistentFlags().StringVarP(&a.outputDir, "out", "o", "", "Output directory (default: a private temporary directory)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "YAML variant catalog (or set PROPOSAL_CATALOG)")
	root.PersistentFlags().StringVar(&a.currency, "currency", "", "Default currency code (or set PROPOSAL_CURRENCY)")

	root.AddCommand(newGenerateCmd(a))
	root.AddCommand(newBatchCmd(a))
	root.AddCommand(newVariantsCmd(a))
	root.AddCommand(newTokensCmd(a))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "proposal version %s\n", version)
		},
	})
	return root
}

// init builds the logger and the engine from the environment and flags.
// A logger set beforehand is kept.
func (a *app) init() error {
	if a.logger == nil {
		config := zap.NewProductionConfig()
		if a.verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.logger = logger
	}
	proposal.SetLogger(a.logger)

	cfg := proposal.ConfigFromEnvironment()
	if a.templateDir != "" {
		cfg.TemplateDir = a.templateDir
	}
	if a.outputDir != "" {
		cfg.OutputDir = a.outputDir
	}
	if a.catalogPath != "" {
		cfg.CatalogPath = a.catalogPath
	}
	if a.currency != "" {
		cfg.DefaultCurrency = a.currency
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}

	engine, err := proposal.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	a.engine = engine.WithLogger(a.logger)
	return nil
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
