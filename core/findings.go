package core

import (
	"context"
	"fmt"
)

// FindingSpec describes a finding before it is persisted. No id exists
// until the store accepts it.
type FindingSpec struct {
	Title       string
	Description string
	Reporter    string
	DedupeKey   string
	Request     *Request
}

// Finding is a persisted security observation tied to one captured
// request. Safe for unsynchronized concurrent reads.
type Finding struct {
	id          string
	title       string
	description string
	reporter    string
}

// NewFinding build the immutable view over a stored finding. Used by
// store implementations.
func NewFinding(id, title, description, reporter string) *Finding {
	return &Finding{id: id, title: title, description: description, reporter: reporter}
}

// ID store-assigned identifier
func (f *Finding) ID() string { return f.id }

// Title short summary of the observation
func (f *Finding) Title() string { return f.title }

// Description longer writeup, may be empty
func (f *Finding) Description() string { return f.description }

// Reporter who filed the finding
func (f *Finding) Reporter() string { return f.reporter }

// FindingStore persists finding records. Implemented outside the core.
type FindingStore interface {
	Save(ctx context.Context, spec FindingSpec) (*Finding, error)
}

// FindingResult outcome of an asynchronous create
type FindingResult struct {
	Finding *Finding
	Err     error
}

// Findings files findings with the host store. Create-only, no update or
// delete exists in this contract.
type Findings struct {
	store FindingStore
}

// NewFindings wire the findings service
func NewFindings(store FindingStore) *Findings {
	return &Findings{store: store}
}

// Create persist a finding referencing an existing captured request
func (f *Findings) Create(ctx context.Context, spec FindingSpec) (*Finding, error) {
	if spec.Request == nil {
		return nil, fmt.Errorf("creating finding: missing request reference")
	}
	if spec.Title == "" {
		return nil, fmt.Errorf("creating finding: missing title")
	}
	if f.store == nil {
		return nil, fmt.Errorf("creating finding: no store configured")
	}
	finding, err := f.store.Save(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("creating finding: %w", err)
	}
	return finding, nil
}

// CreateAsync start the create in its own goroutine and return a one-shot
// result channel
func (f *Findings) CreateAsync(ctx context.Context, spec FindingSpec) <-chan FindingResult {
	out := make(chan FindingResult, 1)
	go func() {
		finding, err := f.Create(ctx, spec)
		out <- FindingResult{Finding: finding, Err: err}
		close(out)
	}()
	return out
}
