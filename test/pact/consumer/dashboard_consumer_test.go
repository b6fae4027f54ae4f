//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"testing"
	"time"

	pacttest "github.com/Apurer/sales-backoffice/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type classification struct {
	SaleID   string `json:"saleId"`
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
	Bucket   string `json:"bucket"`
}

type classifiedSale struct {
	Sale struct {
		ID string `json:"id"`
	} `json:"sale"`
	Triage   classification `json:"triage"`
	Assignee string         `json:"assignee"`
}

type summary struct {
	Metrics struct {
		TotalCases        int     `json:"totalCases"`
		HighPriorityCount int     `json:"highPriorityCount"`
		UrgencyRate       float64 `json:"urgencyRate"`
	} `json:"metrics"`
	BucketCounts map[string]int `json:"bucketCounts"`
}

type apiError struct {
	status int
	title  string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.title, e.status)
}

func TestDashboardContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	pact.AddInteraction().
		Given(pacttest.StateCancelledSale).
		UponReceiving("a request to classify a cancelled sale").
		WithRequest("GET", "/v1/sales/"+pacttest.CancelledSaleID+"/triage", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("asOf", matchers.S(pacttest.AsOfParam))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"sale": matchers.StructMatcher{
					"id": matchers.S(pacttest.CancelledSaleID),
				},
				"triage": matchers.StructMatcher{
					"saleId":   matchers.S(pacttest.CancelledSaleID),
					"priority": matchers.Term("HIGH", "HIGH|MEDIUM|NORMAL"),
					"reason":   matchers.Like("Cancelled sale — requires analysis"),
					"bucket":   matchers.Like("UNBUCKETED"),
				},
				"assignee": matchers.Like("unassigned"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateSaleMissing).
		UponReceiving("a request to classify a missing sale").
		WithRequest("GET", "/v1/sales/"+pacttest.MissingSaleID+"/triage").
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateQueueSeeded).
		UponReceiving("a request for the triage summary").
		WithRequest("GET", "/v1/triage/summary", func(b *pactconsumer.V2RequestBuilder) {
			b.Query("asOf", matchers.S(pacttest.AsOfParam))
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"metrics": matchers.StructMatcher{
					"totalCases":        matchers.Like(2),
					"highPriorityCount": matchers.Like(1),
					"urgencyRate":       matchers.Like(50.0),
				},
				"bucketCounts": matchers.StructMatcher{
					"UNBUCKETED": matchers.Like(1),
				},
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newDashboardClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		classified, err := client.Classify(ctx, pacttest.CancelledSaleID, pacttest.AsOfParam)
		if err != nil {
			return fmt.Errorf("classify sale: %w", err)
		}
		if classified.Triage.Priority != "HIGH" {
			return fmt.Errorf("expected HIGH priority, got %+v", classified.Triage)
		}

		if _, err := client.Classify(ctx, pacttest.MissingSaleID, ""); err == nil {
			return fmt.Errorf("expected 404 for sale %s", pacttest.MissingSaleID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.status)
		}

		sum, err := client.Summary(ctx, pacttest.AsOfParam)
		if err != nil {
			return fmt.Errorf("summary: %w", err)
		}
		if sum.Metrics.TotalCases == 0 {
			return fmt.Errorf("expected cases in summary")
		}
		return nil
	})
	require.NoError(t, err)
}

type dashboardClient struct {
	baseURL    string
	httpClient *http.Client
}

func newDashboardClient(config pactconsumer.MockServerConfig) *dashboardClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &dashboardClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *dashboardClient) Classify(ctx context.Context, saleID, asOf string) (*classifiedSale, error) {
	var out classifiedSale
	if err := c.get(ctx, "/v1/sales/"+url.PathEscape(saleID)+"/triage", asOf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *dashboardClient) Summary(ctx context.Context, asOf string) (*summary, error) {
	var out summary
	if err := c.get(ctx, "/v1/triage/summary", asOf, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *dashboardClient) get(ctx context.Context, path, asOf string, out any) error {
	target := c.baseURL + path
	if asOf != "" {
		target += "?" + url.Values{"asOf": []string{asOf}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var problem struct {
			Title string `json:"title"`
		}
		_ = json.NewDecoder(res.Body).Decode(&problem)
		return apiError{status: res.StatusCode, title: problem.Title}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
