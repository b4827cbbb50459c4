package repositories

import (
	"context"
	"sync"
)

// MockSequenceRepository is an in-memory implementation of
// SequenceRepository. Safe for concurrent use.
type MockSequenceRepository struct {
	mu   sync.Mutex
	seqs map[string]int64
}

// NewMockSequenceRepository creates a new instance of MockSequenceRepository.
func NewMockSequenceRepository() *MockSequenceRepository {
	return &MockSequenceRepository{
		seqs: make(map[string]int64),
	}
}

// Next returns the next value of the named sequence, starting at 1.
func (r *MockSequenceRepository) Next(_ context.Context, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs[name]++
	return r.seqs[name], nil
}
