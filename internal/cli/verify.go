package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"vouch/internal/ai"
	"vouch/internal/model"
	"vouch/internal/pipeline"
	"vouch/internal/report"
	"vouch/internal/source"
)

var (
	legalForm     string
	timeout       time.Duration
	outJSON       string
	rulesPath     string
	templatesPath string
	livePresence  bool
	llmEnabled    bool
	llmModel      string
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <business name>",
	Short: "Verify a single business and print its report",
	Long: `Verify runs the full verification pipeline for one business:
- Classify the industry from the business name
- Gather evidence from registry, search, review and scam sources
- Evaluate regulatory compliance for the detected industry
- Score trust factors and overall legitimacy

Evidence comes from deterministic built-in fixtures unless live
connectors are enabled, so repeated runs produce identical reports.

Example:
  vouch verify "Acme Gas Plumbing Ltd"
  vouch verify "Jane Smith Plumbing" --form sole_trader
  vouch verify "Acme Ltd" --json report.json --llm`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&legalForm, "form", "limited_company", "legal form (limited_company, sole_trader, partnership, llp, plc, charity, other)")
	verifyCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall verification timeout")
	verifyCmd.Flags().StringVar(&outJSON, "json", "", "write the report as JSON to this path instead of printing text")
	verifyCmd.Flags().StringVar(&rulesPath, "rules", "", "YAML file overriding the built-in industry rules")
	verifyCmd.Flags().StringVar(&templatesPath, "templates", "", "YAML file overriding the built-in compliance templates")
	verifyCmd.Flags().BoolVar(&livePresence, "live-presence", false, "check online presence against the business website instead of fixtures")

	verifyCmd.Flags().BoolVar(&llmEnabled, "llm", false, "use an LLM for the credibility analysis (sole traders)")
	verifyCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runVerify(cmd *cobra.Command, args []string) error {
	req := model.VerificationRequest{BusinessName: args[0]}
	form, err := model.ParseLegalForm(legalForm)
	if err != nil {
		return err
	}
	req.LegalForm = form

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	runner, err := buildRunner(cfg, req.BusinessName, req.LegalForm)
	if err != nil {
		return err
	}
	if verbose {
		runner = runner.WithHook(func(step model.VerificationStep) {
			fmt.Fprintf(os.Stderr, "[%s] %s: %s", step.Agent, step.DisplayName, step.Status)
			if step.Result != "" && step.Status.Terminal() {
				fmt.Fprintf(os.Stderr, " (%s)", step.Result)
			}
			fmt.Fprintln(os.Stderr)
		})
	}

	run, err := runner.Start(ctx, req)
	if err != nil {
		return err
	}
	if err := run.Wait(ctx); err != nil {
		run.Cancel()
		return fmt.Errorf("verification timed out: %w", err)
	}

	rep, err := run.Report()
	if err != nil {
		return err
	}

	if outJSON != "" {
		f, err := os.Create(outJSON)
		if err != nil {
			return fmt.Errorf("create %s: %w", outJSON, err)
		}
		defer func() { _ = f.Close() }()
		if err := report.RenderJSON(f, rep); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", outJSON)
		}
		return nil
	}
	return report.RenderText(os.Stdout, rep)
}

// buildConfig assembles the engine config from defaults and flags.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Sources.Timeout = timeout
	cfg.RulesPath = rulesPath
	cfg.TemplatesPath = templatesPath
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.AI.Provider = "openai"
		cfg.AI.Model = llmModel
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.AI.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}
	return cfg, nil
}

// buildRunner wires sources and the analyzer into a pipeline runner.
// Fixture sources back every evidence name; the live presence connector
// replaces the presence fixture when requested.
func buildRunner(cfg *model.Config, businessName string, form model.LegalForm) (*pipeline.Runner, error) {
	sources := source.DemoSet(businessName, form)
	if livePresence {
		sources[source.NamePresence] = source.NewWebsite(cfg.Sources.Timeout, cfg.Sources.UserAgent, cfg.Sources.MaxBodyBytes)
	}
	wrapped := source.WrapSet(sources, source.OptionsFromConfig(cfg.Sources))

	analyzer, err := ai.NewAnalyzer(cfg.AI)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cfg, wrapped, analyzer)
}
