package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/akave-ai/ledgerdesk/internal/model"
)

// TransactionRepository is an append-only transaction log.
type TransactionRepository struct {
	mu   sync.RWMutex
	log  []model.Transaction
	byID map[string]int
}

// NewTransactionRepository returns an empty TransactionRepository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{byID: make(map[string]int)}
}

// Create appends tx. The caller assigns ID, Timestamp and Status.
func (r *TransactionRepository) Create(_ context.Context, tx model.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[tx.ID] = len(r.log)
	r.log = append(r.log, tx)
	return nil
}

// All returns a copy of the log in insertion order.
func (r *TransactionRepository) All(_ context.Context) ([]model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := slices.Clone(r.log)
	if out == nil {
		out = []model.Transaction{}
	}
	return out, nil
}

// Get returns one transaction by id, or ErrNotFound.
func (r *TransactionRepository) Get(_ context.Context, id string) (*model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	tx := r.log[i]
	return &tx, nil
}

// ByAccount returns the transactions whose source or destination is account.
func (r *TransactionRepository) ByAccount(_ context.Context, account string) ([]model.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Transaction{}
	for i := range r.log {
		if r.log[i].Touches(account) {
			out = append(out, r.log[i])
		}
	}
	return out, nil
}
