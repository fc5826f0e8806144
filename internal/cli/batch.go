package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"vouch/internal/model"
	"vouch/internal/report"
	"vouch/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Verify multiple businesses from a file in parallel",
	Long: `Batch verifies many businesses concurrently:
- Read requests from an input file, one "name, legal_form" per line
- Run verifications in parallel with a configurable worker count
- Write one JSON report per business to the output directory

Example:
  vouch batch businesses.txt
  vouch batch businesses.txt --concurrency 10 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent verifications")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./vouch-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for the whole batch")
	batchCmd.Flags().DurationVar(&timeout, "verify-timeout", 2*time.Minute, "timeout for each verification")
	batchCmd.Flags().StringVar(&rulesPath, "rules", "", "YAML file overriding the built-in industry rules")
	batchCmd.Flags().StringVar(&templatesPath, "templates", "", "YAML file overriding the built-in compliance templates")
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "use an LLM for credibility analysis (sole traders)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

// pipelineVerifier adapts the pipeline to the worker.Verifier contract.
// Each verification gets its own runner because fixture sources are
// derived per business.
type pipelineVerifier struct {
	cfg *model.Config
}

func (v *pipelineVerifier) Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationReport, error) {
	runner, err := buildRunner(v.cfg, req.BusinessName, req.LegalForm)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	run, err := runner.Start(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := run.Wait(ctx); err != nil {
		run.Cancel()
		return nil, err
	}
	return run.Report()
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n\n", outputDir)

	batch := worker.NewBatch(&pipelineVerifier{cfg: cfg}, concurrency)
	results, err := batch.ProcessFile(ctx, file)
	if err != nil {
		return err
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Business", "Form", "Legitimacy", "Trust", "Status"})

	var failures int
	for _, res := range results {
		if res.Err() != nil {
			failures++
			tw.AppendRow(table.Row{res.Request.BusinessName, res.Request.LegalForm, "-", "-", res.Err().Error()})
			continue
		}
		if err := writeReport(res.Report); err != nil {
			return err
		}
		tw.AppendRow(table.Row{
			res.Request.BusinessName,
			res.Request.LegalForm,
			res.Report.LegitimacyScore,
			res.Report.BusinessPurpose.OverallTrustScore,
			"ok",
		})
	}
	tw.Render()

	if failures > 0 {
		return fmt.Errorf("%d of %d verifications failed", failures, len(results))
	}
	return nil
}

func writeReport(rep *model.VerificationReport) error {
	path := filepath.Join(outputDir, reportFileName(rep.BusinessName))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	if err := report.RenderJSON(f, rep); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func reportFileName(businessName string) string {
	slug := strings.ToLower(businessName)
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "report"
	}
	return slug + ".json"
}
