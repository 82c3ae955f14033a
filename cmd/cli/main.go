// Maintenance CLI: take backups, render receipts and closing sheets
// straight from the storage file, without the server running.
//
//	cli backup  --out=backup.json
//	cli receipt --id=<transaction id> [--out=beleg.pdf]
//	cli closing --date=2024-06-01 --opening=150 --counted=310.50 [--out=abschluss.pdf]
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nero-collectibles/kassa/internal/closing"
	"github.com/nero-collectibles/kassa/internal/config"
	"github.com/nero-collectibles/kassa/internal/services"
	"github.com/nero-collectibles/kassa/internal/store"
	"github.com/nero-collectibles/kassa/pkg/logger"
	"github.com/nero-collectibles/kassa/pkg/storage"
)

func main() {
	if err := config.Load(arg("env")); err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	blobs, err := storage.Open(storage.Config{Path: config.Get().StoragePath}, false)
	if err != nil {
		logger.Fatal(err)
	}
	defer blobs.Close()

	transactionStore, err := store.NewTransactionStore(blobs)
	if err != nil {
		logger.Fatal(err)
	}
	settingsStore, err := store.NewSettingsStore(blobs)
	if err != nil {
		logger.Fatal(err)
	}

	transactions := services.NewTransactionService(transactionStore)
	closings := services.NewClosingService(transactionStore, settingsStore)
	receipts, err := services.NewReceiptService(transactions, settingsStore, nil, 1, 1)
	if err != nil {
		logger.Fatal(err)
	}
	defer receipts.Close()

	switch command() {
	case "backup":
		runBackup(transactions)
	case "receipt":
		runReceipt(receipts)
	case "closing":
		runClosing(closings)
	default:
		fmt.Println("usage: cli <backup|receipt|closing> [--flags]")
	}
}

func runBackup(transactions *services.TransactionService) {
	out := arg("out")
	if out == "" {
		out = "backup.json"
	}
	data, err := store.MarshalBackup(transactions.Export())
	if err != nil {
		logger.Fatal(err)
	}
	writeFile(out, data)
}

func runReceipt(receipts *services.ReceiptService) {
	id := arg("id")
	if id == "" {
		logger.Error("receipt: --id is required")
		return
	}
	filename, data, err := receipts.Render(id)
	if err != nil {
		logger.Fatal(err)
	}
	if out := arg("out"); out != "" {
		filename = out
	}
	writeFile(filename, data)
}

func runClosing(closings *services.ClosingService) {
	date := arg("date")
	if date == "" {
		logger.Error("closing: --date is required")
		return
	}
	rep := closings.Report(date, arg("location"), arg("notes"), closing.Figures{
		Opening:    argFloat("opening"),
		Counted:    argFloat("counted"),
		Deposit:    argFloat("deposit"),
		Withdrawal: argFloat("withdrawal"),
	})
	filename, data, err := closings.ReportPDF(rep)
	if err != nil {
		logger.Fatal(err)
	}
	if out := arg("out"); out != "" {
		filename = out
	}
	writeFile(filename, data)
}

func writeFile(path string, data []byte) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Fatal(err)
	}
	logger.Info("written", "path", path, "bytes", len(data))
}

func command() string {
	for _, v := range os.Args[1:] {
		if !strings.HasPrefix(v, "--") {
			return v
		}
	}
	return ""
}

func arg(name string) string {
	prefix := "--" + name + "="
	for _, v := range os.Args[1:] {
		if strings.HasPrefix(v, prefix) {
			return strings.TrimPrefix(v, prefix)
		}
	}
	return ""
}

func argFloat(name string) float64 {
	v := arg(name)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		logger.Error("ignoring non-numeric flag", "flag", name, "value", v)
		return 0
	}
	return f
}
