package services

import (
	"errors"
	"fmt"

	"github.com/nero-collectibles/kassa/internal/model"
	"github.com/nero-collectibles/kassa/internal/pdf"
	"github.com/nero-collectibles/kassa/pkg/logger"
	"github.com/nero-collectibles/kassa/pkg/prom"
	"github.com/nero-collectibles/kassa/pkg/worker"
)

var (
	ErrMailerDisabled = errors.New("receipt email is not configured")
	ErrNoPartnerEmail = errors.New("no email address on file for this partner")
	ErrMailQueueFull  = errors.New("email queue is full, try again later")
)

// Sender delivers a rendered receipt to one recipient.
type Sender interface {
	Enabled() bool
	SendPDF(to, subject, body, filename string, data []byte) error
}

// ReceiptService renders receipts and dispatches them by email. Rendering
// is synchronous; SMTP delivery runs on a worker pool so a slow mail
// server never blocks a request.
type ReceiptService struct {
	transactions *TransactionService
	settings     SettingsSource
	sender       Sender
	jobs         *worker.Manager
}

type mailJob struct {
	to       string
	subject  string
	body     string
	filename string
	data     []byte
}

func NewReceiptService(transactions *TransactionService, settings SettingsSource, sender Sender, queueSize, workers int) (*ReceiptService, error) {
	s := &ReceiptService{
		transactions: transactions,
		settings:     settings,
		sender:       sender,
		jobs:         worker.NewManager(queueSize, workers),
	}
	if err := s.jobs.Start(s.deliver); err != nil {
		return nil, err
	}
	return s, nil
}

// Close drains queued emails and stops the workers.
func (s *ReceiptService) Close() {
	s.jobs.Exit()
}

// Render produces the receipt PDF for one transaction. The filename is
// the document number, which is what the operator files receipts under.
func (s *ReceiptService) Render(id string) (string, []byte, error) {
	t, err := s.transactions.Get(id)
	if err != nil {
		return "", nil, err
	}

	number := s.transactions.DocumentNumber(t)
	data, err := pdf.Receipt(t, number, s.settings.Get())
	if err != nil {
		return "", nil, err
	}
	prom.IncCounterVec(prom.SystemLedger, prom.MetricReceiptsRendered, "receipt")
	return number + ".pdf", data, nil
}

// Email renders the receipt and queues it for delivery to the partner.
func (s *ReceiptService) Email(id string) error {
	if s.sender == nil || !s.sender.Enabled() {
		return ErrMailerDisabled
	}

	t, err := s.transactions.Get(id)
	if err != nil {
		return err
	}
	if t.PartnerEmail == "" {
		return ErrNoPartnerEmail
	}

	filename, data, err := s.Render(id)
	if err != nil {
		return err
	}

	number := s.transactions.DocumentNumber(t)
	job := mailJob{
		to:       t.PartnerEmail,
		subject:  mailSubject(t, number, s.settings.Get()),
		body:     mailBody(t, number, s.settings.Get()),
		filename: filename,
		data:     data,
	}
	if !s.jobs.Publish(job) {
		return ErrMailQueueFull
	}
	return nil
}

func (s *ReceiptService) deliver(_ int, job interface{}) {
	j, ok := job.(mailJob)
	if !ok {
		return
	}
	if err := s.sender.SendPDF(j.to, j.subject, j.body, j.filename, j.data); err != nil {
		prom.IncCounterVec(prom.SystemLedger, prom.MetricReceiptEmails, "error")
		logger.Error("receipt email failed", "to", j.to, "file", j.filename, "error", err)
		return
	}
	prom.IncCounterVec(prom.SystemLedger, prom.MetricReceiptEmails, "ok")
	logger.Info("receipt email sent", "to", j.to, "file", j.filename)
}

func displayType(t model.Transaction) (short, long string) {
	if t.Type == model.TypePurchase {
		return "Gutschrift", "Ankauf (Gutschrift)"
	}
	return "Rechnung", "Verkauf (Rechnung)"
}

func mailSubject(t model.Transaction, number string, s model.CompanySettings) string {
	short, _ := displayType(t)
	return fmt.Sprintf("Beleg %s: %s %s", s.DisplayName(), short, number)
}

func mailBody(t model.Transaction, number string, s model.CompanySettings) string {
	_, long := displayType(t)
	return fmt.Sprintf(`Hallo %s,

anbei erhalten Sie den Beleg für unsere Transaktion vom %s.

Beleg-Nr: %s
Art: %s
Betrag: %.2f €

Mit freundlichen Grüßen,
%s`, t.PartnerName, t.Date, number, long, t.TotalGross, s.DisplayName())
}
