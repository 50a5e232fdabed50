package repository

import (
	"context"
	"sync"

	"loan-evaluator/domain"
)

// LoanCalculation is a stored calculator request with its result.
type LoanCalculation struct {
	Input  domain.LoanInput
	Result domain.LoanResult
}

// LoanRepositoryMemory is an in-memory implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu   sync.RWMutex
	data []LoanCalculation
}

// NewLoanRepositoryMemory creates a new in-memory loan repository.
func NewLoanRepositoryMemory() *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		data: []LoanCalculation{},
	}
}

// Save stores the loan calculation in memory.
func (r *LoanRepositoryMemory) Save(
	_ context.Context,
	input domain.LoanInput,
	result domain.LoanResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append(r.data, LoanCalculation{Input: input, Result: result})
	return nil
}

// All returns a copy of every stored calculation.
func (r *LoanRepositoryMemory) All() []LoanCalculation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]LoanCalculation, len(r.data))
	copy(out, r.data)
	return out
}
