package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vouch/internal/model"
)

type stubVerifier struct {
	shouldErr bool
}

func (v *stubVerifier) Verify(ctx context.Context, req model.VerificationRequest) (*model.VerificationReport, error) {
	if v.shouldErr {
		return nil, errors.New("verification failed")
	}
	return &model.VerificationReport{
		BusinessName: req.BusinessName,
		LegalForm:    req.LegalForm,
	}, nil
}

func TestBatch_Process(t *testing.T) {
	batch := NewBatch(&stubVerifier{}, 2)
	reqs := []model.VerificationRequest{
		{BusinessName: "Acme Ltd", LegalForm: model.FormLimitedCompany},
		{BusinessName: "Jane Smith", LegalForm: model.FormSoleTrader},
		{BusinessName: "Smith & Sons", LegalForm: model.FormPartnership},
	}

	results := batch.Process(context.Background(), reqs)
	if len(results) != len(reqs) {
		t.Fatalf("got %d results, want %d", len(results), len(reqs))
	}
	for _, res := range results {
		if res.Err() != nil {
			t.Errorf("%s: unexpected error %v", res.Request.BusinessName, res.Err())
			continue
		}
		if res.Report == nil || res.Report.BusinessName != res.Request.BusinessName {
			t.Errorf("%s: report does not match request", res.Request.BusinessName)
		}
	}
}

func TestBatch_ProcessCollectsFailures(t *testing.T) {
	batch := NewBatch(&stubVerifier{shouldErr: true}, 2)
	results := batch.Process(context.Background(), []model.VerificationRequest{
		{BusinessName: "Acme Ltd", LegalForm: model.FormLimitedCompany},
	})
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Err() == nil {
		t.Error("expected a verification error")
	}
}

func TestBatch_ProcessEmpty(t *testing.T) {
	batch := NewBatch(&stubVerifier{}, 2)
	if results := batch.Process(context.Background(), nil); len(results) != 0 {
		t.Errorf("got %d results for empty input", len(results))
	}
}

func writeRequestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "businesses.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestReadRequestsFromFile(t *testing.T) {
	path := writeRequestFile(t, `# businesses to verify
Acme Gas Plumbing Ltd, limited_company

Jane Smith Plumbing, sole trader
Acme Gas Plumbing Ltd, limited_company
`)

	reqs, err := ReadRequestsFromFile(path)
	if err != nil {
		t.Fatalf("ReadRequestsFromFile: %v", err)
	}
	want := []model.VerificationRequest{
		{BusinessName: "Acme Gas Plumbing Ltd", LegalForm: model.FormLimitedCompany},
		{BusinessName: "Jane Smith Plumbing", LegalForm: model.FormSoleTrader},
	}
	if len(reqs) != len(want) {
		t.Fatalf("got %d requests, want %d (duplicates collapse)", len(reqs), len(want))
	}
	for i := range want {
		if reqs[i] != want[i] {
			t.Errorf("request %d = %+v, want %+v", i, reqs[i], want[i])
		}
	}
}

func TestReadRequestsFromFile_Errors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing form", "Acme Ltd\n"},
		{"unknown form", "Acme Ltd, conglomerate\n"},
		{"blank name", ", limited_company\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeRequestFile(t, tc.content)
			if _, err := ReadRequestsFromFile(path); err == nil {
				t.Error("expected a parse error")
			}
		})
	}

	if _, err := ReadRequestsFromFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestBatch_ProcessFile(t *testing.T) {
	path := writeRequestFile(t, "Acme Ltd, limited_company\nJane Smith, sole_trader\n")
	batch := NewBatch(&stubVerifier{}, 2)

	results, err := batch.ProcessFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}
