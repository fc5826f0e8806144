// Package pipeline orchestrates a verification run: it builds the step
// plan for the business's legal form, executes it with two cooperating
// agents, and assembles the final report exactly once when every step
// has reached a terminal status.
//
// The Verification agent gathers external evidence; the Purpose agent
// classifies and scores. They run concurrently and synchronize at a
// single barrier before the scoring steps, which need the full evidence
// set. Evidence-source failures degrade evidence but never fail a run;
// only cancellation stops one early.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"vouch/internal/ai"
	"vouch/internal/classify"
	"vouch/internal/compliance"
	"vouch/internal/model"
	"vouch/internal/report"
	"vouch/internal/score"
	"vouch/internal/source"
)

// ErrIncomplete reports a run that reached assembly with a non-terminal
// step. This indicates an orchestrator bug, not a data problem.
var ErrIncomplete = errors.New("run finished with non-terminal steps")

// aiSourceName labels analyzer output in the evidence set and report.
const aiSourceName = "ai_analysis"

// StepHook observes step transitions. Hooks receive copies and run on
// the agent goroutines, so they must not block.
type StepHook func(step model.VerificationStep)

// Runner executes verification runs. It is safe for concurrent use; all
// per-run state lives on the Run handle.
type Runner struct {
	cfg        *model.Config
	classifier *classify.Classifier
	engine     *compliance.Engine
	scorer     *score.Scorer
	analyzer   ai.Analyzer
	sources    source.Set
	hook       StepHook
	now        func() time.Time
}

// NewRunner builds a runner from configuration. Classification rules and
// compliance templates come from the configured paths when set, built-in
// defaults otherwise.
func NewRunner(cfg *model.Config, sources source.Set, analyzer ai.Analyzer) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rules := classify.DefaultRules()
	if cfg.RulesPath != "" {
		loaded, err := classify.LoadRules(cfg.RulesPath)
		if err != nil {
			return nil, fmt.Errorf("loading classification rules: %w", err)
		}
		rules = loaded
	}

	templates := compliance.DefaultTemplates()
	if cfg.TemplatesPath != "" {
		loaded, err := compliance.LoadTemplates(cfg.TemplatesPath)
		if err != nil {
			return nil, fmt.Errorf("loading compliance templates: %w", err)
		}
		templates = loaded
	}

	return &Runner{
		cfg:        cfg,
		classifier: classify.New(rules),
		engine:     compliance.NewEngine(templates),
		scorer:     score.NewScorer(cfg.Scoring.Weights),
		analyzer:   analyzer,
		sources:    sources,
		now:        time.Now,
	}, nil
}

// WithHook registers a step observer.
func (r *Runner) WithHook(h StepHook) *Runner {
	r.hook = h
	return r
}

// WithClock injects the time source used for compliance evaluation,
// scoring and report timestamps.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	r.engine = r.engine.WithClock(now)
	r.scorer = r.scorer.WithClock(now)
	return r
}

// Start validates the request, classifies the business and launches the
// run. It returns immediately; callers track progress through the Run
// handle.
func (r *Runner) Start(ctx context.Context, req model.VerificationRequest) (*Run, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	run := &Run{
		ID:       uuid.NewString(),
		Request:  req,
		Industry: r.classifier.Classify(req.BusinessName, req.LegalForm),
		state:    RunActive,
		steps:    Plan(req.LegalForm),
		agents: map[model.AgentName]*model.AgentState{
			model.AgentVerification: {Name: model.AgentVerification, Status: model.AgentIdle},
			model.AgentPurpose:      {Name: model.AgentPurpose, Status: model.AgentIdle},
		},
		evidence: model.NewEvidenceSet(),
		cancel:   cancel,
		verDone:  make(chan struct{}),
		done:     make(chan struct{}),
	}

	go r.execute(ctx, run)
	return run, nil
}

func (r *Runner) execute(ctx context.Context, run *Run) {
	defer run.cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer close(run.verDone)
		r.runAgent(ctx, run, model.AgentVerification)
	}()
	go func() {
		defer wg.Done()
		r.runAgent(ctx, run, model.AgentPurpose)
	}()
	wg.Wait()

	r.finish(ctx, run)
}

// runAgent walks the agent's steps in plan order. The Purpose agent
// blocks at the barrier before its scoring steps until the Verification
// agent has delivered all evidence.
func (r *Runner) runAgent(ctx context.Context, run *Run, agent model.AgentName) {
	for _, step := range run.Steps() {
		if step.Agent != agent {
			continue
		}
		if ctx.Err() != nil {
			return
		}
		if agent == model.AgentPurpose && (step.ID == StepTrust || step.ID == StepLegitimacy) {
			select {
			case <-run.verDone:
			case <-ctx.Done():
				return
			}
			if ctx.Err() != nil {
				return
			}
		}

		r.observe(run.setStep(step.ID, model.StepProcessing, ""))
		status, result, err := r.executeStep(ctx, run, step.ID)
		if err != nil {
			// Cancelled mid-step: the step keeps its Processing status.
			return
		}
		r.observe(run.setStep(step.ID, status, result))
	}
}

func (r *Runner) observe(step model.VerificationStep) {
	if r.hook != nil {
		r.hook(step)
	}
}

func (r *Runner) executeStep(ctx context.Context, run *Run, id string) (model.StepStatus, string, error) {
	q := source.Query{
		BusinessName: run.Request.BusinessName,
		LegalForm:    run.Request.LegalForm,
		Industry:     run.Industry,
	}

	switch id {
	case StepInputValidation:
		return model.StepCompleted, fmt.Sprintf("Validated %q (%s)", run.Request.BusinessName, run.Request.LegalForm.String()), nil

	case StepBusinessType:
		return model.StepCompleted, fmt.Sprintf("Business type confirmed: %s", run.Request.LegalForm.String()), nil

	case StepRegistry:
		if !run.Request.LegalForm.IsRegistered() {
			return model.StepSkipped, "Skipped - Sole Trader business type", nil
		}
		return r.fetchStep(ctx, run, source.NameRegistry, q)

	case StepSearch:
		return r.fetchStep(ctx, run, source.NameSearch, q)

	case StepMaps:
		return r.fetchStep(ctx, run, source.NameAddress, q)

	case StepReviews:
		return r.fetchStep(ctx, run, source.NameReviews, q)

	case StepScamCheck:
		return r.fetchStep(ctx, run, source.NameScamDB, q)

	case StepPresence:
		return r.fetchStep(ctx, run, source.NamePresence, q)

	case StepAIAnalysis:
		analysis, err := r.analyzer.Analyze(ctx, run.Request.BusinessName, run.searchSnapshot())
		if err != nil {
			if ctx.Err() != nil {
				return "", "", ctx.Err()
			}
			run.addEvidence(source.Degraded(aiSourceName, err))
			return model.StepCompleted, "Credibility analysis unavailable", nil
		}
		run.addEvidence(model.Evidence{Source: aiSourceName, RetrievedAt: r.now(), Credibility: analysis})
		return model.StepCompleted, fmt.Sprintf("Credibility score %d/100", analysis.Score), nil

	case StepCompliance:
		status, _, err := r.fetchStep(ctx, run, source.NameCompliance, q)
		if err != nil {
			return status, "", err
		}
		rc := r.engine.Evaluate(run.Industry, run.findingsSnapshot())
		run.mu.Lock()
		run.results.compliance = rc
		run.mu.Unlock()
		return model.StepCompleted, fmt.Sprintf("Compliance score %d/100", rc.OverallScore), nil

	case StepSICLookup:
		return model.StepCompleted, fmt.Sprintf("Industry classified as %s", run.Industry), nil

	case StepActivity:
		return model.StepCompleted, "Business activity profile established", nil

	case StepTrust:
		run.mu.Lock()
		rc := run.results.compliance
		run.mu.Unlock()
		purpose := r.scorer.BuildPurpose(run.Request.LegalForm, run.Industry, run.evidence, rc)
		run.mu.Lock()
		run.results.purpose = purpose
		run.mu.Unlock()
		return model.StepCompleted, fmt.Sprintf("Overall trust score %d/100", purpose.OverallTrustScore), nil

	case StepLegitimacy:
		legitimacy := score.LegitimacyFor(run.Request.LegalForm)(run.evidence)
		risks := score.RiskFactors(run.evidence)
		run.mu.Lock()
		run.results.legitimacy = legitimacy
		run.results.risks = risks
		run.mu.Unlock()
		return model.StepCompleted, fmt.Sprintf("Legitimacy score %d/100", legitimacy), nil
	}

	return "", "", fmt.Errorf("unknown step %s", id)
}

// fetchStep dispatches one evidence lookup. Absent or failing sources
// produce degraded evidence and the step still completes.
func (r *Runner) fetchStep(ctx context.Context, run *Run, name string, q source.Query) (model.StepStatus, string, error) {
	src, ok := r.sources[name]
	if !ok {
		run.addEvidence(source.Degraded(name, source.ErrUnavailable))
		return model.StepCompleted, fmt.Sprintf("No %s source configured", name), nil
	}

	ev, err := src.Fetch(ctx, q)
	if ctx.Err() != nil {
		return "", "", ctx.Err()
	}
	if err != nil {
		ev = source.Degraded(name, err)
	}
	run.addEvidence(ev)

	if ev.Degraded {
		return model.StepCompleted, fmt.Sprintf("Evidence from %s degraded", name), nil
	}
	return model.StepCompleted, fmt.Sprintf("Evidence from %s gathered", name), nil
}

// finish records the final run state and, for completed runs, assembles
// the report. It runs exactly once per run.
func (r *Runner) finish(ctx context.Context, run *Run) {
	defer close(run.done)

	run.mu.Lock()
	defer run.mu.Unlock()

	if ctx.Err() != nil {
		run.state = RunCancelled
		return
	}

	for i := range run.steps {
		if !run.steps[i].Status.Terminal() {
			run.failure = fmt.Errorf("%w: %s is %s", ErrIncomplete, run.steps[i].ID, run.steps[i].Status)
			run.state = RunDone
			return
		}
	}

	rep := report.Assemble(report.Input{
		Request:     run.Request,
		Industry:    run.Industry,
		Evidence:    run.evidence,
		Compliance:  run.results.compliance,
		Purpose:     run.results.purpose,
		Legitimacy:  run.results.legitimacy,
		RiskFactors: run.results.risks,
		GeneratedAt: r.now(),
	})
	run.report = &rep
	run.state = RunDone
}

func (r *Run) searchSnapshot() []model.SearchResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.evidence.Search == nil {
		return nil
	}
	out := make([]model.SearchResult, len(r.evidence.Search.Results))
	copy(out, r.evidence.Search.Results)
	return out
}

func (r *Run) findingsSnapshot() []model.ComplianceFinding {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.ComplianceFinding, len(r.evidence.Compliance))
	copy(out, r.evidence.Compliance)
	return out
}
