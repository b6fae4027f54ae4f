//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

const (
	ProviderName = "sales-backoffice-api"
	ConsumerName = "backoffice-dashboard"

	StateCancelledSale = "cancelled sale sale-101 exists"
	StateSaleMissing   = "no sale with id missing-404"
	StateQueueSeeded   = "triage queue seeded"
)

const (
	CancelledSaleID = "sale-101"
	MissingSaleID   = "missing-404"
	AsOfParam       = "2024-06-12T10:00:00Z"
)

// AsOf is the instant every contract interaction classifies against.
var AsOf = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the dashboard consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleSalePayload is the cancelled sale behind StateCancelledSale.
func ExampleSalePayload() map[string]any {
	return map[string]any{
		"id":               CancelledSaleID,
		"commercialStatus": "CANCELLED",
		"logisticStatus":   "INITIAL",
		"lineStatus":       "ACTIVE",
		"productType":      "PORTABILITY",
		"unitPrice":        79.9,
		"quantity":         1,
		"customerName":     "Ana Souza",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
