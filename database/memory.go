package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/sundew-project/sundew/core"
)

// MemoryStore keeps exchanges and findings in process. Used when the
// sqlite store is disabled.
type MemoryStore struct {
	mu       sync.Mutex
	requests map[string]*core.Request
	byDedupe map[string]*core.Finding
	findings []*core.Finding
}

// NewMemoryStore make an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		requests: make(map[string]*core.Request),
		byDedupe: make(map[string]*core.Finding),
	}
}

// Record stash the request side of a completed exchange
func (s *MemoryStore) Record(pair *core.RequestResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[pair.Request().ID()] = pair.Request()
	return nil
}

// HasRequest check whether a request id is known to the store
func (s *MemoryStore) HasRequest(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.requests[id]
	return ok
}

// Save persist one finding in memory. Satisfies core.FindingStore.
func (s *MemoryStore) Save(ctx context.Context, spec core.FindingSpec) (*core.Finding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.requests[spec.Request.ID()]; !ok {
		return nil, fmt.Errorf("referenced request %v not found", spec.Request.ID())
	}
	if spec.DedupeKey != "" {
		if existing, ok := s.byDedupe[spec.DedupeKey]; ok {
			return existing, nil
		}
	}
	id, _ := uuid.NewUUID()
	finding := core.NewFinding(id.String(), spec.Title, spec.Description, spec.Reporter)
	s.findings = append(s.findings, finding)
	if spec.DedupeKey != "" {
		s.byDedupe[spec.DedupeKey] = finding
	}
	return finding, nil
}

// Findings snapshot of everything filed so far
func (s *MemoryStore) Findings() []*core.Finding {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*core.Finding, len(s.findings))
	copy(out, s.findings)
	return out
}
