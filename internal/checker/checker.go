// Package checker implements the availability decision engine: a resolver
// that maps one DNS-over-HTTPS lookup to a verdict, and a batch evaluator
// that fans lookups out over the configured domain list.
package checker

import (
	"context"
	"errors"
	"sync"
	"time"

	"checker/internal/config"
	"checker/pkg/doh"
	"checker/pkg/domain"
	"checker/pkg/metrics"
)

// Failure reasons reported in Result.Err. SERVFAIL and FORMERR come from the
// DNS status code; the others are produced at the resolver boundary.
const (
	ReasonInvalidDomain = "Invalid domain name"
	ReasonServerFailure = "DNS server failed to respond"
	ReasonFormatError   = "DNS query format error"
	ReasonTimeout       = "timeout"
)

// Options configure how a batch is evaluated.
type Options struct {
	// LookupTimeout bounds each outbound DoH call so a slow upstream fails
	// the lookup instead of hanging the batch.
	LookupTimeout time.Duration
	// Concurrency is the number of parallel lookups; 1 means sequential.
	Concurrency int
}

// NewOptions constructs an Options value from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		LookupTimeout: cfg.Checker.LookupTimeout,
		Concurrency:   cfg.Checker.Concurrency,
	}
}

// checker is the concrete implementation of the Checker interface.
type checker struct {
	options  Options
	resolver doh.Client
	recorder *metrics.Recorder
}

// Check evaluates the batch over a bounded worker pool. Lookups are fully
// independent; results are joined back into input order before aggregation.
func (c *checker) Check(ctx context.Context, names []string) Report {
	report := Report{Results: make([]Result, len(names))}
	if len(names) == 0 {
		return report
	}

	type job struct {
		idx  int
		name string
	}
	type out struct {
		idx int
		res Result
	}

	workers := c.options.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(names) {
		workers = len(names)
	}

	jobs := make(chan job)
	results := make(chan out)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- out{idx: j.idx, res: c.resolveOne(ctx, j.name)}
			}
		}()
	}

	go func() {
		for idx, name := range names {
			jobs <- job{idx: idx, name: name}
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	for r := range results {
		report.Results[r.idx] = r.res
	}

	return report
}

// resolveOne performs a single lookup and classifies the outcome. It is
// total: every fault is converted to a failed result, nothing escapes.
func (c *checker) resolveOne(ctx context.Context, input string) Result {
	start := time.Now()

	finish := func(res Result) Result {
		res.CheckedAt = time.Now().UTC()
		res.DurationMs = time.Since(start).Milliseconds()
		c.recorder.Lookup(ctx, string(res.Verdict), time.Since(start).Seconds())

		return res
	}

	name, err := domain.Normalize(input)
	if err != nil {
		return finish(Result{Domain: input, Verdict: VerdictFailed, Err: ReasonInvalidDomain})
	}

	lookupCtx := ctx
	if c.options.LookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, c.options.LookupTimeout)
		defer cancel()
	}

	resp, err := c.resolver.Resolve(lookupCtx, name)
	if err != nil {
		reason := err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			reason = ReasonTimeout
		}

		return finish(Result{Domain: name, Verdict: VerdictFailed, Err: reason})
	}

	verdict, reason := classify(resp.Status)

	return finish(Result{Domain: name, Verdict: verdict, Err: reason})
}

// classify maps a DNS status code to a verdict. Only NXDOMAIN signals
// availability; SERVFAIL and FORMERR are lookup failures. Every other code,
// including NOTIMP (4), REFUSED (5) and out-of-range values, counts as
// unavailable.
func classify(status int) (Verdict, string) {
	switch status {
	case doh.RCodeNameError:
		return VerdictAvailable, ""
	case doh.RCodeServerFailure:
		return VerdictFailed, ReasonServerFailure
	case doh.RCodeFormatError:
		return VerdictFailed, ReasonFormatError
	default:
		return VerdictUnavailable, ""
	}
}

// New creates a Checker backed by the provided resolver. recorder may be nil.
func New(resolver doh.Client, recorder *metrics.Recorder, options Options) Checker {
	return &checker{
		options:  options,
		resolver: resolver,
		recorder: recorder,
	}
}
