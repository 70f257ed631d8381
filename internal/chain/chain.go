// Package chain implements the ordered provider fallback: try each
// provider in turn, return the first success, and aggregate every failure
// into a single ChainError when none succeeds.
package chain

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ariel-frischer/aicommit/internal/aerr"
	"github.com/ariel-frischer/aicommit/internal/provider"
)

// Reporter receives per-attempt notifications during generation.
// Implementations must not influence control flow; failures still advance
// to the next provider and successes still return immediately.
type Reporter interface {
	Attempt(providerName string, attempt, total int)
	Success(providerName string)
	Failure(providerName string, err error)
}

// Chain is an ordered, fixed list of providers. Order is caller-supplied;
// there is no dynamic reordering based on historical success.
type Chain struct {
	providers []provider.Provider

	// Reporter, when non-nil, observes each attempt. Optional.
	Reporter Reporter
}

// New creates a Chain from a non-empty ordered provider list.
// Constructing with zero providers is a configuration error.
func New(providers []provider.Provider) (*Chain, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("chain requires at least one provider")
	}
	return &Chain{providers: append([]provider.Provider(nil), providers...)}, nil
}

// Providers returns the chain's provider list in attempt order.
func (c *Chain) Providers() []provider.Provider {
	return append([]provider.Provider(nil), c.providers...)
}

// GenerateCommitMessage attempts each provider in order and returns the
// first success. Attempts are strictly sequential: provider N+1 runs only
// after provider N definitively fails, because the wrapped tools have side
// effects (quota, temp files) that make speculative duplicate invocation
// wasteful. If every provider fails, the returned ChainError carries one
// error per attempted provider, index-aligned with attempt order.
func (c *Chain) GenerateCommitMessage(ctx context.Context, prompt string, opts provider.GenerateOptions) (string, error) {
	attempted := make([]string, 0, len(c.providers))
	errs := make([]error, 0, len(c.providers))

	for i, p := range c.providers {
		if c.Reporter != nil {
			c.Reporter.Attempt(p.Name(), i+1, len(c.providers))
		}
		message, err := tryProvider(ctx, p, prompt, opts)
		if err == nil {
			if c.Reporter != nil {
				c.Reporter.Success(p.Name())
			}
			return message, nil
		}
		if c.Reporter != nil {
			c.Reporter.Failure(p.Name(), err)
		}
		attempted = append(attempted, p.Name())
		errs = append(errs, err)
	}

	return "", &aerr.ChainError{AttemptedProviders: attempted, Errs: errs}
}

// tryProvider invokes one provider, coercing a panic into an error so a
// misbehaving implementation cannot abort the chain.
func tryProvider(ctx context.Context, p provider.Provider, prompt string, opts provider.GenerateOptions) (message string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = aerr.NewProviderError(p.Name(), fmt.Sprintf("provider panicked: %v", r), nil)
		}
	}()
	return p.GenerateCommitMessage(ctx, prompt, opts)
}

// IsAvailable probes all providers in parallel and reports whether at
// least one is available. Probes are pure read-only checks with no
// side-effect conflict, so latency wins over resource economy here. A
// probe that panics counts as unavailable for that provider only.
func (c *Chain) IsAvailable(ctx context.Context) bool {
	results := make([]bool, len(c.providers))

	var g errgroup.Group
	for i, p := range c.providers {
		g.Go(func() error {
			results[i] = probeProvider(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	for _, ok := range results {
		if ok {
			return true
		}
	}
	return false
}

func probeProvider(ctx context.Context, p provider.Provider) (available bool) {
	defer func() {
		if recover() != nil {
			available = false
		}
	}()
	return p.IsAvailable(ctx)
}
