package proposal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BatchResult is the outcome of one request of a batch.
type BatchResult struct {
	Request Request
	Path    string
	Output  *Output
	Err     error
}

type batchFile struct {
	Jobs []Request `yaml:"jobs"`
}

// LoadBatch reads a YAML list of requests:
//
//	jobs:
//	  - variant: Make & CRM Automation
//	    form:
//	      client_name: Acme
//	      date: 2025-03-05
//	      prices: {M-Price: 10000}
func LoadBatch(r io.Reader) ([]Request, error) {
	var file batchFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("batch file is empty")
		}
		return nil, fmt.Errorf("failed to parse batch file: %w", err)
	}
	if len(file.Jobs) == 0 {
		return nil, errors.New("batch file has no jobs")
	}
	return file.Jobs, nil
}

// LoadBatchFile reads a YAML batch file from disk.
func LoadBatchFile(path string) ([]Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()
	return LoadBatch(f)
}

// GenerateBatch generates and saves every request into dir, running at most
// limit requests at once (limit <= 0 means GOMAXPROCS). Requests are fully
// independent: a failing one does not stop the others. Results are returned
// in request order; the error joins every failure. Jobs that derive the same
// file name overwrite each other; the file left behind is one job's
// complete output.
func (e *Engine) GenerateBatch(ctx context.Context, reqs []Request, dir string, limit int) ([]BatchResult, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(reqs))
	var g errgroup.Group
	g.SetLimit(limit)

	for i, req := range reqs {
		results[i].Request = req
		g.Go(func() error {
			out, err := e.Generate(ctx, req)
			if err == nil {
				results[i].Output = out
				results[i].Path, err = out.Save(dir)
			}
			if err != nil {
				results[i].Err = fmt.Errorf("job %d (%s): %w", i+1, req.Variant, err)
				e.logger.Warn("batch job failed", zap.Int("job", i+1), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	errs := NewMultiError()
	for _, r := range results {
		errs.Add(r.Err)
	}
	return results, errs.Err()
}
