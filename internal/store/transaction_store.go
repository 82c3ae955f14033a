package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/pkg/storage"
)

// transactionsKey is the fixed blob key; it matches the localStorage key
// of earlier releases so exported data stays importable.
const transactionsKey = "nero_transactions"

// Blobs is what the stores need from the persistence layer.
type Blobs interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// TransactionStore owns the canonical ordered collection, newest-first.
// Every mutation rewrites the whole collection into the blob store before
// returning, so the in-memory state and the persisted copy agree at every
// observable point. Records are never edited in place; "editing" is
// delete plus re-create by the caller.
type TransactionStore struct {
	mu    sync.Mutex
	blobs Blobs
	list  []model.Transaction
}

// NewTransactionStore loads the persisted collection. A missing blob
// yields an empty store; a malformed blob is an error rather than a
// silent empty ledger, losing the operator's books must be loud.
func NewTransactionStore(blobs Blobs) (*TransactionStore, error) {
	s := &TransactionStore{blobs: blobs}

	raw, err := blobs.Get(transactionsKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	var list []model.Transaction
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("load transactions: corrupt data under %q: %w", transactionsKey, err)
	}
	for i := range list {
		list[i].Normalize()
	}
	s.list = list
	return s, nil
}

// Add prepends the transaction and persists. On a persistence failure the
// record stays in memory for the session and the error is surfaced.
func (s *TransactionStore) Add(t model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.Normalize()
	s.list = append([]model.Transaction{t}, s.list...)
	return s.persist()
}

// Delete removes the record with the given id. Deleting an absent id is a
// no-op, not an error.
func (s *TransactionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.list {
		if t.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// ReplaceAll overwrites the collection wholesale; used for restoring a
// backup. No merge semantics, no validation beyond structural shape.
func (s *TransactionStore) ReplaceAll(list []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := make([]model.Transaction, len(list))
	copy(replaced, list)
	for i := range replaced {
		replaced[i].Normalize()
	}
	s.list = replaced
	return s.persist()
}

// List returns a copy of the collection, newest-first.
func (s *TransactionStore) List() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Transaction, len(s.list))
	copy(out, s.list)
	return out
}

// MarshalBackup serializes a collection the way backups are written:
// indented, so the operator can inspect the file.
func MarshalBackup(list []model.Transaction) ([]byte, error) {
	return json.MarshalIndent(list, "", "  ")
}

func (s *TransactionStore) persist() error {
	raw, err := json.Marshal(s.list)
	if err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	if err := s.blobs.Put(transactionsKey, raw); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	return nil
}
