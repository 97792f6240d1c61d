package proposal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
)

const testBatchYAML = `
jobs:
  - variant: Make & CRM Automation
    form:
      client_name: Acme
      country: USA
      client_number: "+15550100"
      date: 2025-03-05
      currency: USD
      prices: {M-Price: 10000, C-Price: 0}
      team: {P1: 1, BD1: 2}
      tools: [Zapier]
      special_dates: {VDate: 2025-04-30}
  - variant: Manychat & CRM Automation
    form:
      client_name: Bharat Traders
      country: India
      client_number: "+919800000000"
      date: 2025-03-06
      currency: INR
      prices: {MC-Price: 5000}
`

func TestLoadBatch(t *testing.T) {
	reqs, err := LoadBatch(strings.NewReader(testBatchYAML))
	if err != nil {
		t.Fatalf("LoadBatch() error = %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(reqs))
	}

	form := reqs[0].Form
	if form.ClientName != "Acme" || form.Prices["M-Price"] != 10000 || form.Team["BD1"] != 2 {
		t.Errorf("form = %+v", form)
	}
	if !form.Date.Equal(time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Date = %v", form.Date)
	}
	if got := FormatDate(form.SpecialDates["VDate"]); got != "30-04-2025" {
		t.Errorf("VDate = %q", got)
	}

	for _, bad := range []string{"", "jobs: []", "jobs:\n  - variant: A\n    extra: 1\n"} {
		if _, err := LoadBatch(strings.NewReader(bad)); err == nil {
			t.Errorf("LoadBatch(%q) expected error", bad)
		}
	}
}

func TestGenerateBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine, _ := testEngine(t)
	reqs, err := LoadBatch(strings.NewReader(testBatchYAML))
	if err != nil {
		t.Fatalf("LoadBatch() error = %v", err)
	}
	reqs = append(reqs,
		Request{Variant: "Unknown"},
		Request{Variant: "Make & CRM Automation", Form: Form{Country: "India", ClientNumber: "+1"}},
	)
	outDir := t.TempDir()

	results, err := engine.GenerateBatch(context.Background(), reqs, outDir, 2)

	if err == nil {
		t.Fatal("expected the failing jobs to be reported")
	}
	var multi *MultiError
	if !errors.As(err, &multi) || multi.Len() != 2 {
		t.Fatalf("expected two joined errors, got %v", err)
	}
	if !IsValidationError(err) {
		t.Error("joined error should expose the validation failure")
	}

	if len(results) != len(reqs) {
		t.Fatalf("results = %d", len(results))
	}
	for i, want := range []string{
		"Automation Proposal - Acme 05-03-2025.docx",
		"Automation Proposal - Bharat Traders 06-03-2025.docx",
	} {
		if results[i].Err != nil {
			t.Errorf("job %d error = %v", i+1, results[i].Err)
			continue
		}
		if results[i].Path != filepath.Join(outDir, want) {
			t.Errorf("job %d path = %q", i+1, results[i].Path)
		}
		if _, err := os.Stat(results[i].Path); err != nil {
			t.Errorf("job %d file missing: %v", i+1, err)
		}
	}
	if results[2].Err == nil || !strings.Contains(results[2].Err.Error(), "job 3") {
		t.Errorf("job 3 error = %v", results[2].Err)
	}
	if results[3].Output != nil {
		t.Error("failed job must not carry output")
	}
}

func TestGenerateBatchCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine, _ := testEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := engine.GenerateBatch(ctx, []Request{{Variant: "Make & CRM Automation"}}, t.TempDir(), 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("GenerateBatch() error = %v", err)
	}
	if results[0].Path != "" {
		t.Error("cancelled job must not write a file")
	}
}

func TestGenerateBatchSameFilename(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine, _ := testEngine(t)
	date := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	var reqs []Request
	for i := 1; i <= 8; i++ {
		reqs = append(reqs, Request{
			Variant: "Make & CRM Automation",
			Form:    Form{ClientName: "Acme", Date: date, Prices: map[string]int64{"M-Price": int64(i) * 1000}},
		})
	}
	outDir := t.TempDir()

	results, err := engine.GenerateBatch(context.Background(), reqs, outDir, len(reqs))
	if err != nil {
		t.Fatalf("GenerateBatch() error = %v", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "Automation Proposal - Acme 05-03-2025.docx" {
		t.Fatalf("output dir = %v", entries)
	}

	data, err := os.ReadFile(filepath.Join(outDir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if string(r.Output.Data) == string(data) {
			return
		}
	}
	t.Error("saved file does not match any job's output")
}
