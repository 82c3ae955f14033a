package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type TransactionType string

const (
	TypePurchase TransactionType = "purchase"
	TypeSale     TransactionType = "sale"
)

func (t TransactionType) IsValid() bool {
	return t == TypePurchase || t == TypeSale
}

// TaxMethod selects between standard VAT and margin taxation (§25a UStG).
// Under margin taxation the receipt shows no tax line at all; the dealer's
// VAT liability is computed externally on the profit margin.
type TaxMethod string

const (
	TaxRegular TaxMethod = "regular"
	TaxDiff    TaxMethod = "diff"
)

func (m TaxMethod) IsValid() bool {
	return m == TaxRegular || m == TaxDiff
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentPaypal PaymentMethod = "paypal"
	PaymentBank   PaymentMethod = "bank"
)

// Normalize maps a missing payment method to cash. Records written by
// early versions of the app carry no paymentMethod field.
func (p PaymentMethod) Normalize() PaymentMethod {
	if p == "" {
		return PaymentCash
	}
	return p
}

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentPaypal, PaymentBank:
		return true
	}
	return false
}

type TransactionItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`   // unit price, gross
	TaxRate  float64 `json:"taxRate"` // e.g. 19 for 19%
}

// Transaction is one purchase or sale. It is immutable after creation;
// the totals are bound once from the tax engine and never recomputed, so
// historical receipts stay numerically stable even if tax logic changes.
//
// JSON field names match the persisted blob format of earlier releases so
// old backups import unchanged.
type Transaction struct {
	ID             string            `json:"id"`
	Type           TransactionType   `json:"type"`
	Date           string            `json:"date"` // ISO calendar date, YYYY-MM-DD
	PartnerName    string            `json:"partnerName"`
	PartnerAddress string            `json:"partnerAddress"`
	PartnerEmail   string            `json:"partnerEmail,omitempty"`
	Items          []TransactionItem `json:"items"`
	TotalNet       float64           `json:"totalNet"`
	TotalTax       float64           `json:"totalTax"`
	TotalGross     float64           `json:"totalGross"`
	Notes          string            `json:"notes,omitempty"`
	TaxMethod      TaxMethod         `json:"taxMethod"`
	SignatureURL   string            `json:"signatureUrl,omitempty"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod,omitempty"`
}

// Normalize fills defaults for optional fields at the data-model boundary
// so no read site has to.
func (t *Transaction) Normalize() {
	t.PaymentMethod = t.PaymentMethod.Normalize()
}

// Year returns the 4-digit year of the transaction date.
func (t Transaction) Year() string {
	if len(t.Date) < 4 {
		return t.Date
	}
	return t.Date[:4]
}

var (
	ErrInvalidType           = errors.New("transaction type must be purchase or sale")
	ErrInvalidTaxMethod      = errors.New("tax method must be regular or diff")
	ErrInvalidPaymentMethod  = errors.New("payment method must be cash, paypal or bank")
	ErrInvalidDate           = errors.New("date must be a calendar date in YYYY-MM-DD form")
	ErrPartnerNameRequired   = errors.New("partner name is required")
	ErrPartnerAddressRequire = errors.New("partner address is required")
	ErrNoItems               = errors.New("at least one item is required")
	ErrInvalidItem           = errors.New("invalid item")
)

// CreateTransactionRequest carries user input for a new transaction.
// Totals are intentionally absent: they are always derived by the tax
// engine at creation time, never accepted from the outside.
type CreateTransactionRequest struct {
	Type           TransactionType   `json:"type"`
	Date           string            `json:"date"`
	PartnerName    string            `json:"partnerName"`
	PartnerAddress string            `json:"partnerAddress"`
	PartnerEmail   string            `json:"partnerEmail"`
	Items          []TransactionItem `json:"items"`
	TaxMethod      TaxMethod         `json:"taxMethod"`
	PaymentMethod  PaymentMethod     `json:"paymentMethod"`
	SignatureURL   string            `json:"signatureUrl"`
	Notes          string            `json:"notes"`
}

func (r *CreateTransactionRequest) Validate() error {
	if !r.Type.IsValid() {
		return ErrInvalidType
	}
	if !r.TaxMethod.IsValid() {
		return ErrInvalidTaxMethod
	}
	if !r.PaymentMethod.Normalize().IsValid() {
		return ErrInvalidPaymentMethod
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return ErrInvalidDate
	}
	if strings.TrimSpace(r.PartnerName) == "" {
		return ErrPartnerNameRequired
	}
	if strings.TrimSpace(r.PartnerAddress) == "" {
		return ErrPartnerAddressRequire
	}
	if len(r.Items) == 0 {
		return ErrNoItems
	}
	for i, item := range r.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w %d: name is required", ErrInvalidItem, i+1)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w %d: quantity must be at least 1", ErrInvalidItem, i+1)
		}
		if item.Price < 0 {
			return fmt.Errorf("%w %d: price must not be negative", ErrInvalidItem, i+1)
		}
		if item.TaxRate < 0 {
			return fmt.Errorf("%w %d: tax rate must not be negative", ErrInvalidItem, i+1)
		}
	}
	return nil
}
