package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	triagemapper "github.com/Apurer/sales-backoffice/internal/domains/backoffice/adapters/http/mapper"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
)

const export = `[
  {"id": "low", "commercialStatus": "initial", "logisticStatus": "INITIAL", "lineStatus": "ACTIVE",
   "productType": "NEW_LINE", "unitPrice": 100, "quantity": 1, "createdAt": "2024-06-11T10:00:00Z"},
  {"id": "big", "commercialStatus": "APPROVED", "logisticStatus": "INITIAL", "lineStatus": "ACTIVE",
   "productType": "NEW_LINE", "unitPrice": 600, "quantity": 2, "createdAt": "2024-06-12T08:00:00Z"},
  {"id": "bad", "commercialStatus": "SHIPPED?", "logisticStatus": "INITIAL", "lineStatus": "ACTIVE",
   "productType": "NEW_LINE", "unitPrice": 10, "quantity": 1, "createdAt": "2024-06-09T10:00:00Z"}
]`

var asOf = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func TestClassifyExport(t *testing.T) {
	report, err := classifyExport(strings.NewReader(export), asOf)
	require.NoError(t, err)

	ids := make([]string, 0, len(report.Results))
	for _, r := range report.Results {
		ids = append(ids, r.SaleID)
	}
	assert.Equal(t, []string{"big", "low", "bad"}, ids)
	assert.Equal(t, triage.ReasonHighValue, report.Results[0].Reason)
	assert.Equal(t, triage.PriorityMedium, report.Results[1].Priority)
	assert.True(t, report.Results[2].Unclassifiable)
	assert.Equal(t, 3, report.Metrics.TotalCases)
	assert.Equal(t, 1, report.Metrics.UnclassifiableCount)
	assert.Equal(t, 1300.0, report.Metrics.TotalValue)
}

func TestClassifyExportKeepsBatchWhenRowIsMalformed(t *testing.T) {
	rows := `[
  {"id": "cancelled", "commercialStatus": "CANCELLED", "logisticStatus": "INITIAL", "lineStatus": "ACTIVE",
   "productType": "NEW_LINE", "unitPrice": 50, "quantity": 1, "createdAt": "2024-06-11T10:00:00Z"},
  {"id": "bad-date", "commercialStatus": "CANCELLED", "logisticStatus": "INITIAL", "lineStatus": "ACTIVE",
   "productType": "NEW_LINE", "unitPrice": 50, "quantity": 1, "createdAt": "not-a-date"},
  {"id": "bad-price", "commercialStatus": "APPROVED", "unitPrice": "lots", "quantity": 1}
]`
	report, err := classifyExport(strings.NewReader(rows), asOf)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	byID := map[string]triage.Result{}
	for _, r := range report.Results {
		byID[r.SaleID] = r
	}
	assert.Equal(t, triage.PriorityHigh, byID["cancelled"].Priority)
	for _, id := range []string{"bad-date", "bad-price"} {
		assert.True(t, byID[id].Unclassifiable, id)
		assert.Equal(t, triage.PriorityNormal, byID[id].Priority, id)
		assert.Equal(t, triage.ReasonUnclassifiable, byID[id].Reason, id)
	}
	assert.Equal(t, 3, report.Metrics.TotalCases)
	assert.Equal(t, 2, report.Metrics.UnclassifiableCount)
	assert.Equal(t, 1, report.Metrics.HighPriorityCount)
}

func TestClassifyExportRejectsMalformedJSON(t *testing.T) {
	_, err := classifyExport(strings.NewReader(`{"id": "not-an-array"}`), asOf)
	assert.ErrorContains(t, err, "decode sales")
}

func TestClassifyCommandPrintsReport(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(export))
	cmd.SetArgs([]string{"classify", "--input", "-", "--as-of", "2024-06-12T10:00:00Z"})
	require.NoError(t, cmd.Execute())

	var report triagemapper.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.True(t, asOf.Equal(report.AsOf))
	require.Len(t, report.Results, 3)
	assert.Equal(t, "HIGH", report.Results[0].Priority)
	assert.Equal(t, 3, report.BucketCounts["UNBUCKETED"])
}

func TestParseAsOf(t *testing.T) {
	_, err := parseAsOf("yesterday")
	assert.Error(t, err)

	got, err := parseAsOf("2024-06-12T12:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, asOf, got)
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "triagectl dev\n", out.String())
}
