package store

import (
	"path/filepath"
	"testing"

	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBlobs(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(storage.Config{Path: filepath.Join(t.TempDir(), "test.db")}, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testTransaction(id, date string) model.Transaction {
	return model.Transaction{
		ID:             id,
		Type:           model.TypeSale,
		Date:           date,
		PartnerName:    "Max Mustermann",
		PartnerAddress: "Musterstraße 1",
		Items: []model.TransactionItem{
			{ID: "i1", Name: "Charizard Holo", Quantity: 1, Price: 100, TaxRate: 19},
		},
		TotalNet:      84.03,
		TotalTax:      15.97,
		TotalGross:    100,
		TaxMethod:     model.TaxRegular,
		PaymentMethod: model.PaymentCash,
	}
}

func TestTransactionStore(t *testing.T) {
	t.Run("starts empty on a fresh database", func(t *testing.T) {
		s, err := NewTransactionStore(newBlobs(t))
		require.NoError(t, err)
		assert.Empty(t, s.List())
	})

	t.Run("add keeps newest first", func(t *testing.T) {
		s, err := NewTransactionStore(newBlobs(t))
		require.NoError(t, err)

		require.NoError(t, s.Add(testTransaction("old", "2024-01-01")))
		require.NoError(t, s.Add(testTransaction("new", "2024-01-02")))

		list := s.List()
		require.Len(t, list, 2)
		assert.Equal(t, "new", list[0].ID)
		assert.Equal(t, "old", list[1].ID)
	})

	t.Run("collection survives a reload", func(t *testing.T) {
		blobs := newBlobs(t)

		s, err := NewTransactionStore(blobs)
		require.NoError(t, err)
		want := testTransaction("t1", "2024-06-01")
		require.NoError(t, s.Add(want))

		reloaded, err := NewTransactionStore(blobs)
		require.NoError(t, err)
		list := reloaded.List()
		require.Len(t, list, 1)
		assert.Equal(t, want, list[0])
	})

	t.Run("missing payment method normalizes to cash on load", func(t *testing.T) {
		blobs := newBlobs(t)
		require.NoError(t, blobs.Put(transactionsKey, []byte(`[{"id":"legacy","type":"sale","date":"2023-03-03"}]`)))

		s, err := NewTransactionStore(blobs)
		require.NoError(t, err)
		list := s.List()
		require.Len(t, list, 1)
		assert.Equal(t, model.PaymentCash, list[0].PaymentMethod)
	})

	t.Run("corrupt blob is a load error, not an empty ledger", func(t *testing.T) {
		blobs := newBlobs(t)
		require.NoError(t, blobs.Put(transactionsKey, []byte(`{definitely not json`)))

		_, err := NewTransactionStore(blobs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "corrupt")
	})

	t.Run("delete removes one record and persists", func(t *testing.T) {
		blobs := newBlobs(t)
		s, err := NewTransactionStore(blobs)
		require.NoError(t, err)
		require.NoError(t, s.Add(testTransaction("keep", "2024-01-01")))
		require.NoError(t, s.Add(testTransaction("drop", "2024-01-02")))

		require.NoError(t, s.Delete("drop"))

		reloaded, err := NewTransactionStore(blobs)
		require.NoError(t, err)
		list := reloaded.List()
		require.Len(t, list, 1)
		assert.Equal(t, "keep", list[0].ID)
	})

	t.Run("deleting an unknown id is a no-op", func(t *testing.T) {
		s, err := NewTransactionStore(newBlobs(t))
		require.NoError(t, err)
		require.NoError(t, s.Add(testTransaction("t1", "2024-01-01")))

		require.NoError(t, s.Delete("ghost"))
		assert.Len(t, s.List(), 1)
	})

	t.Run("replace all swaps the collection wholesale", func(t *testing.T) {
		blobs := newBlobs(t)
		s, err := NewTransactionStore(blobs)
		require.NoError(t, err)
		require.NoError(t, s.Add(testTransaction("before", "2024-01-01")))

		require.NoError(t, s.ReplaceAll([]model.Transaction{
			testTransaction("a", "2024-02-01"),
			testTransaction("b", "2024-02-02"),
		}))

		reloaded, err := NewTransactionStore(blobs)
		require.NoError(t, err)
		list := reloaded.List()
		require.Len(t, list, 2)
		assert.Equal(t, "a", list[0].ID)
	})

	t.Run("list hands out a copy", func(t *testing.T) {
		s, err := NewTransactionStore(newBlobs(t))
		require.NoError(t, err)
		require.NoError(t, s.Add(testTransaction("t1", "2024-01-01")))

		list := s.List()
		list[0].ID = "tampered"

		assert.Equal(t, "t1", s.List()[0].ID)
	})
}

func TestSettingsStore(t *testing.T) {
	t.Run("falls back to defaults when nothing is stored", func(t *testing.T) {
		s, err := NewSettingsStore(newBlobs(t))
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSettings(), s.Get())
	})

	t.Run("update persists across a reload", func(t *testing.T) {
		blobs := newBlobs(t)
		s, err := NewSettingsStore(blobs)
		require.NoError(t, err)

		cs := s.Get()
		cs.CompanyName = "NERO Collectibles GmbH"
		cs.TaxID = "DE123456789"
		require.NoError(t, s.Update(cs))

		reloaded, err := NewSettingsStore(blobs)
		require.NoError(t, err)
		assert.Equal(t, "NERO Collectibles GmbH", reloaded.Get().CompanyName)
		assert.Equal(t, "DE123456789", reloaded.Get().TaxID)
	})

	t.Run("corrupt settings blob falls back to defaults", func(t *testing.T) {
		blobs := newBlobs(t)
		require.NoError(t, blobs.Put(settingsKey, []byte("][")))

		s, err := NewSettingsStore(blobs)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultSettings(), s.Get())
	})
}
