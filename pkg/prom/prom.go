package prom

import (
	"sync"

	xhttp "github.com/nero-collectibles/kassa/pkg/http"
	"github.com/nero-collectibles/kassa/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	SystemLedger = "ledger"
)

const (
	MetricTransactionsCreated = "transactions_created_total"
	MetricTransactionsDeleted = "transactions_deleted_total"
	MetricReceiptsRendered    = "receipts_rendered_total"
	MetricReceiptEmails       = "receipt_emails_total"
	MetricPersistFailures     = "persist_failures_total"
)

var createLock = &sync.Mutex{}
var namespace = "none"

var MetricSystemEnabled = false

var counters = make(map[string]prometheus.Counter)
var counterVecs = make(map[string]*prometheus.CounterVec)

var defaultLabels prometheus.Labels

// Create registers the ledger metric set. Call once at startup; metric
// helpers are no-ops until then.
func Create(host string, env string, nameSpace string) error {
	defaultLabels = make(prometheus.Labels)
	defaultLabels["env"] = env
	defaultLabels["instance"] = host
	namespace = nameSpace
	MetricSystemEnabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(createCounterVec(SystemLedger, MetricTransactionsCreated, []string{"type", "tax_method"}))
	hasError(createCounter(SystemLedger, MetricTransactionsDeleted))
	hasError(createCounterVec(SystemLedger, MetricReceiptsRendered, []string{"kind"}))
	hasError(createCounterVec(SystemLedger, MetricReceiptEmails, []string{"result"}))
	hasError(createCounter(SystemLedger, MetricPersistFailures))

	return err
}

// ListenAndServe starts the metrics endpoint on its own listener.
func ListenAndServe(addr string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.CreateServer()
	s.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(addr); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

func createCounter(subsystem, name string) error {
	createLock.Lock()
	defer createLock.Unlock()
	counters[subsystem+name] = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	})
	return prometheus.Register(counters[subsystem+name])
}

func createCounterVec(subsystem, name string, labels []string) error {
	createLock.Lock()
	defer createLock.Unlock()
	counterVecs[subsystem+name] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(counterVecs[subsystem+name])
}

func IncCounter(subsystem, name string) {
	if !MetricSystemEnabled {
		return
	}
	if v, ok := counters[subsystem+name]; ok {
		v.Inc()
		return
	}
	logger.Warn("[metrics-server] counter not found", "subsystem", subsystem, "name", name)
}

func IncCounterVec(subsystem, name string, labelValues ...string) {
	if !MetricSystemEnabled {
		return
	}
	if v, ok := counterVecs[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Inc()
		return
	}
	logger.Warn("[metrics-server] counter vec not found", "subsystem", subsystem, "name", name)
}
