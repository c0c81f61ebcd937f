// Package dispatch fans a fixed number of GET requests out over parallel workers and
// collects one Fact per measured request.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"slices"
	"time"

	"blitz/internal/log"
	"blitz/pkg/stats"

	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/fasthttp"
)

var (
	ErrInvalidURL         = errors.New("invalid target url")
	ErrInvalidConcurrency = errors.New("concurrency must be at least 1")
	ErrInvalidRequests    = errors.New("request count must not be negative")
)

// Doer sends a request and fills resp. *fasthttp.Client and *fasthttp.HostClient satisfy it.
type Doer interface {
	Do(req *fasthttp.Request, resp *fasthttp.Response) error
}

// ClientFactory returns a fresh Doer for one worker.
type ClientFactory func() Doer

// NewClient is the default ClientFactory: one keep-alive connection per worker.
func NewClient() Doer {
	return newClient(nil)
}

// newClient never retries. A failed request fails the run and a retry would be
// folded into the measured latency.
func newClient(dial fasthttp.DialFunc) *fasthttp.Client {
	return &fasthttp.Client{
		Name:                      "blitz",
		MaxConnsPerHost:           1,
		MaxIdemponentCallAttempts: 1,
		ReadBufferSize:            16 * 1024,
		Dial:                      dial,
	}
}

type Option func(*Dispatcher)

func WithClientFactory(fn ClientFactory) Option {
	return func(d *Dispatcher) {
		d.newClient = fn
	}
}

type Dispatcher struct {
	target      string
	concurrency int
	requests    int
	newClient   ClientFactory
}

// ParseTarget accepts absolute http and https URLs only.
func ParseTarget(raw string) (*url.URL, error) {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidURL, raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w %q: need an absolute http or https url", ErrInvalidURL, raw)
	}
	return u, nil
}

func New(target string, concurrency, requests int, opts ...Option) (*Dispatcher, error) {
	u, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidConcurrency, concurrency)
	}
	if requests < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRequests, requests)
	}

	d := &Dispatcher{
		target:      u.String(),
		concurrency: concurrency,
		requests:    requests,
		newClient:   NewClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// PerWorker is the number of measured requests each worker issues. The remainder of
// requests / concurrency is never sent.
func (d *Dispatcher) PerWorker() int {
	return d.requests / d.concurrency
}

func (d *Dispatcher) Concurrency() int {
	return d.concurrency
}

type workerFacts struct {
	id    int
	facts []stats.Fact
}

// Run blocks until every worker has finished. Any failed request cancels the other
// workers and Run returns that error without facts. Facts are concatenated in worker
// order.
func (d *Dispatcher) Run(ctx context.Context) ([]stats.Fact, error) {
	share := d.PerWorker()
	log.Logger.Debugf("dispatching %d requests to %s over %d workers", share*d.concurrency, d.target, d.concurrency)

	p := pool.NewWithResults[workerFacts]().
		WithMaxGoroutines(d.concurrency).
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError()
	for id := 0; id < d.concurrency; id++ {
		p.Go(func(ctx context.Context) (workerFacts, error) {
			facts, err := d.work(ctx, id, share)
			return workerFacts{id: id, facts: facts}, err
		})
	}

	results, err := p.Wait()
	if err == nil {
		err = context.Cause(ctx)
	}
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b workerFacts) int {
		return a.id - b.id
	})
	facts := make([]stats.Fact, 0, share*d.concurrency)
	for _, r := range results {
		facts = append(facts, r.facts...)
	}
	return facts, nil
}

func (d *Dispatcher) work(ctx context.Context, id, share int) ([]stats.Fact, error) {
	client := d.newClient()

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(d.target)
	req.Header.SetMethod(fasthttp.MethodGet)

	if err := client.Do(req, resp); err != nil {
		return nil, fmt.Errorf("worker %d: warm connection: %w", id, err)
	}
	log.Logger.Debugf("worker %d warmed up, status %d", id, resp.StatusCode())

	facts := make([]stats.Fact, 0, share)
	for i := 0; i < share; i++ {
		// canceled: a sibling failed or the caller gave up
		if ctx.Err() != nil {
			return nil, nil
		}

		start := time.Now()
		err := client.Do(req, resp)
		elapsed := time.Since(start)
		if err != nil {
			return nil, fmt.Errorf("worker %d: request %d: %w", id, i, err)
		}
		facts = append(facts, stats.Record(resp.StatusCode(), elapsed, len(resp.Body())))
	}
	return facts, nil
}
