package core

import (
	"context"
	"fmt"
)

// SendSpec is the request shape accepted by Requests.Send, either a
// structured *RequestSpec or a byte-exact *RequestSpecRaw.
type SendSpec interface {
	// Target transport target of the spec
	Target() (host string, port int, tls bool)

	sendSpec()
}

// Transport performs the actual network send for a spec, honoring any
// upstream proxy the host configured. Implemented outside the core.
type Transport interface {
	Do(ctx context.Context, spec SendSpec) (*RequestResponse, error)
}

// Recorder receives completed exchanges for capture. Optional.
type Recorder interface {
	Record(pair *RequestResponse) error
}

// ScopeProvider hands out the current scope rule set.
type ScopeProvider interface {
	Rules() ScopeRules
}

// ScopeTarget is anything scope classification can inspect. Both
// immutable requests and structured specs qualify.
type ScopeTarget interface {
	Host() string
}

// SendResult outcome of an asynchronous send
type SendResult struct {
	Pair *RequestResponse
	Err  error
}

// Requests sends specs through the proxy pipeline and classifies targets
// against the configured scope. The service keeps no per-call state, so
// concurrent sends are fully independent.
type Requests struct {
	transport Transport
	scope     ScopeProvider
	recorder  Recorder
	console   Console
}

// NewRequests wire the requests service. Scope, recorder and console may
// be nil when the host does not provide them.
func NewRequests(transport Transport, scope ScopeProvider, recorder Recorder, console Console) *Requests {
	return &Requests{
		transport: transport,
		scope:     scope,
		recorder:  recorder,
		console:   console,
	}
}

// Send drive the spec through the transport and return the immutable pair
// that was actually sent and received. Any delivery failure comes back as
// a single wrapped transport error.
func (r *Requests) Send(ctx context.Context, spec SendSpec) (*RequestResponse, error) {
	if spec == nil {
		return nil, fmt.Errorf("sending request: nil spec")
	}
	pair, err := r.transport.Do(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	if r.recorder != nil {
		if err := r.recorder.Record(pair); err != nil && r.console != nil {
			r.console.Warn(fmt.Sprintf("recording exchange: %v", err))
		}
	}
	return pair, nil
}

// SendAsync start the send in its own goroutine and return a one-shot
// result channel. Completion order across in-flight sends is not defined.
func (r *Requests) SendAsync(ctx context.Context, spec SendSpec) <-chan SendResult {
	out := make(chan SendResult, 1)
	go func() {
		pair, err := r.Send(ctx, spec)
		out <- SendResult{Pair: pair, Err: err}
		close(out)
	}()
	return out
}

// InScope classify a request-shaped value against the configured rules.
// Pure and synchronous, deterministic for a fixed rule set.
func (r *Requests) InScope(target ScopeTarget) bool {
	if target == nil {
		return false
	}
	if r.scope == nil {
		return true
	}
	return r.scope.Rules().Match(target.Host())
}
