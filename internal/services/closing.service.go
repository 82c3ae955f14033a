package services

import (
	"fmt"

	"github.com/nero-collectibles/kassa/internal/closing"
	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/internal/pdf"
	"github.com/nero-collectibles/kassa/pkg/prom"
)

// SettingsSource yields the current company profile for documents.
type SettingsSource interface {
	Get() model.CompanySettings
}

type ClosingService struct {
	store    TransactionStore
	settings SettingsSource
}

func NewClosingService(store TransactionStore, settings SettingsSource) *ClosingService {
	return &ClosingService{store: store, settings: settings}
}

// Daily aggregates the cash transactions of one calendar date.
func (s *ClosingService) Daily(date string) closing.DailyCash {
	return closing.Aggregate(s.store.List(), date)
}

// Report combines the day's aggregate with the manually counted figures.
func (s *ClosingService) Report(date, location, notes string, f closing.Figures) closing.Report {
	return closing.BuildReport(date, location, notes, f, s.Daily(date))
}

// ReportPDF renders the closing sheet for printing and filing.
func (s *ClosingService) ReportPDF(rep closing.Report) (string, []byte, error) {
	data, err := pdf.CashClosing(rep, s.settings.Get())
	if err != nil {
		return "", nil, fmt.Errorf("closing report: %w", err)
	}
	prom.IncCounterVec(prom.SystemLedger, prom.MetricReceiptsRendered, "closing")
	return fmt.Sprintf("Kassenabschluss_%s.pdf", rep.Date), data, nil
}
