package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"vouch/internal/model"
)

// Verifier runs one verification to completion and returns its report.
type Verifier interface {
	Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationReport, error)
}

// VerifyJob verifies one business.
type VerifyJob struct {
	Request  model.VerificationRequest
	Verifier Verifier
}

func (j *VerifyJob) Execute(ctx context.Context) Result {
	report, err := j.Verifier.Verify(ctx, j.Request)
	return &VerifyResult{Request: j.Request, Report: report, Error: err}
}

// VerifyResult pairs a request with its report or error.
type VerifyResult struct {
	Request model.VerificationRequest
	Report  *model.VerificationReport
	Error   error
}

func (r *VerifyResult) Err() error { return r.Error }

// Batch verifies many businesses concurrently.
type Batch struct {
	verifier    Verifier
	concurrency int
}

// NewBatch builds a batch processor over a verifier.
func NewBatch(verifier Verifier, concurrency int) *Batch {
	return &Batch{verifier: verifier, concurrency: concurrency}
}

// Process runs every request through the pool and returns one result per
// request, in completion order.
func (b *Batch) Process(ctx context.Context, reqs []model.VerificationRequest) []*VerifyResult {
	if len(reqs) == 0 {
		return []*VerifyResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start(ctx)
	for _, req := range reqs {
		pool.Submit(&VerifyJob{Request: req, Verifier: b.verifier})
	}

	results := pool.Wait()
	out := make([]*VerifyResult, len(results))
	for i, result := range results {
		out[i] = result.(*VerifyResult)
	}
	return out
}

// ProcessFile reads requests from a file and verifies them concurrently.
func (b *Batch) ProcessFile(ctx context.Context, path string) ([]*VerifyResult, error) {
	reqs, err := ReadRequestsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	return b.Process(ctx, reqs), nil
}

// ReadRequestsFromFile parses one request per line in the form
// "Business Name, legal_form". Empty lines and '#' comments are skipped
// and duplicate lines collapse to one request.
func ReadRequestsFromFile(path string) ([]model.VerificationRequest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var reqs []model.VerificationRequest
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, formField, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("line %d: want \"name, legal_form\", got %q", lineNo, line)
		}
		form, err := model.ParseLegalForm(formField)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		req := model.VerificationRequest{BusinessName: strings.TrimSpace(name), LegalForm: form}
		if err := req.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		key := req.BusinessName + "|" + string(req.LegalForm)
		if !seen[key] {
			seen[key] = true
			reqs = append(reqs, req)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return reqs, nil
}
