package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/gomask/pkg/diff"
	"github.com/yaklabco/gomask/pkg/fsutil"
	"github.com/yaklabco/gomask/pkg/record"
)

// Runner applies a fixed set of bindings to files.
type Runner struct {
	bindings []record.Binding
}

// New creates a Runner for the given bindings.
func New(bindings []record.Binding) *Runner {
	return &Runner{bindings: bindings}
}

// Run discovers files under opts.Paths and processes them with a pool of
// opts.Jobs workers. Outcomes are returned in path order no matter which
// worker finished first. A file that fails does not stop the others; its
// error is recorded in its FileOutcome.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.processFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// processFile reads, transforms, and optionally replaces one file.
func (r *Runner) processFile(ctx context.Context, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}

	data, snap, err := fsutil.Read(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	output, stats, err := record.Process(ctx, data, r.bindings)
	outcome.Stats = stats
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}

	if opts.Diff {
		outcome.Diff = diff.Compute(path, data, output)
	}

	if !opts.Write {
		outcome.Output = output
		return outcome
	}

	written, err := fsutil.Replace(ctx, snap, output)
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	outcome.Written = written
	return outcome
}
