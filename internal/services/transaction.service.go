package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/internal/numbering"
	"github.com/nero-collectibles/kassa/internal/tax"
	"github.com/nero-collectibles/kassa/pkg/prom"
)

var ErrNotFound = errors.New("transaction not found")

// TransactionStore is the ordered, durable collection the service works
// against.
type TransactionStore interface {
	Add(t model.Transaction) error
	Delete(id string) error
	ReplaceAll(list []model.Transaction) error
	List() []model.Transaction
}

type TransactionService struct {
	store TransactionStore
}

func NewTransactionService(store TransactionStore) *TransactionService {
	return &TransactionService{store: store}
}

// Create validates the request, derives the totals and persists the new
// record. This is the single point where tax engine output is bound into
// the transaction; the figures are never recomputed afterwards.
func (s *TransactionService) Create(req model.CreateTransactionRequest) (*model.Transaction, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items := make([]model.TransactionItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		items[i].Name = strings.TrimSpace(items[i].Name)
		// the rate only means something for regular-taxed sales
		if req.Type != model.TypeSale || req.TaxMethod != model.TaxRegular {
			items[i].TaxRate = 0
		}
	}

	totals := tax.Compute(items, req.Type, req.TaxMethod)

	t := model.Transaction{
		ID:             uuid.NewString(),
		Type:           req.Type,
		Date:           req.Date,
		PartnerName:    strings.TrimSpace(req.PartnerName),
		PartnerAddress: strings.TrimSpace(req.PartnerAddress),
		PartnerEmail:   strings.TrimSpace(req.PartnerEmail),
		Items:          items,
		TotalNet:       totals.TotalNet,
		TotalTax:       totals.TotalTax,
		TotalGross:     totals.TotalGross,
		Notes:          req.Notes,
		TaxMethod:      req.TaxMethod,
		SignatureURL:   req.SignatureURL,
		PaymentMethod:  req.PaymentMethod,
	}
	t.Normalize()

	if err := s.store.Add(t); err != nil {
		prom.IncCounter(prom.SystemLedger, prom.MetricPersistFailures)
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	prom.IncCounterVec(prom.SystemLedger, prom.MetricTransactionsCreated, string(t.Type), string(t.TaxMethod))
	return &t, nil
}

func (s *TransactionService) Get(id string) (model.Transaction, error) {
	for _, t := range s.store.List() {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Transaction{}, ErrNotFound
}

func (s *TransactionService) Delete(id string) error {
	if err := s.store.Delete(id); err != nil {
		prom.IncCounter(prom.SystemLedger, prom.MetricPersistFailures)
		return fmt.Errorf("delete transaction: %w", err)
	}
	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsDeleted)
	return nil
}

type TransactionFilter struct {
	Type  model.TransactionType // empty means both
	Query string                // matches partner name or record id
}

// NumberedTransaction decorates a record with its current document
// number. The number depends on the whole collection, so it is derived at
// read time.
type NumberedTransaction struct {
	model.Transaction
	Number string `json:"number"`
}

// List returns the collection newest-first, filtered and numbered.
func (s *TransactionService) List(f TransactionFilter) []NumberedTransaction {
	all := s.store.List()

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]NumberedTransaction, 0, len(all))
	for _, t := range all {
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.PartnerName), q) && !strings.Contains(t.ID, q) {
			continue
		}
		out = append(out, NumberedTransaction{Transaction: t, Number: numbering.Number(t, all)})
	}
	return out
}

// DocumentNumber derives the receipt number for one record against the
// current collection.
func (s *TransactionService) DocumentNumber(t model.Transaction) string {
	return numbering.Number(t, s.store.List())
}

// Export yields the full collection for backup. Import replaces it
// wholesale; restoring a backup has no merge semantics.
func (s *TransactionService) Export() []model.Transaction {
	return s.store.List()
}

func (s *TransactionService) Import(list []model.Transaction) error {
	if err := s.store.ReplaceAll(list); err != nil {
		prom.IncCounter(prom.SystemLedger, prom.MetricPersistFailures)
		return fmt.Errorf("import transactions: %w", err)
	}
	return nil
}

type Stats struct {
	TotalSales     float64 `json:"totalSales"`
	TotalPurchases float64 `json:"totalPurchases"`
	Profit         float64 `json:"profit"`
	Count          int     `json:"count"`
}

// Stats are the dashboard figures: lifetime gross sales, gross purchases
// and their difference.
func (s *TransactionService) Stats() Stats {
	var st Stats
	for _, t := range s.store.List() {
		if t.Type == model.TypeSale {
			st.TotalSales += t.TotalGross
		} else {
			st.TotalPurchases += t.TotalGross
		}
		st.Count++
	}
	st.Profit = st.TotalSales - st.TotalPurchases
	return st
}
