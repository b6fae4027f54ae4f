package mapper

import (
	"strings"
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
)

// Sale is the HTTP representation of a sale.
type Sale struct {
	ID               string    `json:"id"`
	CommercialStatus string    `json:"commercialStatus"`
	LogisticStatus   string    `json:"logisticStatus"`
	LineStatus       string    `json:"lineStatus"`
	ProductType      string    `json:"productType"`
	UnitPrice        float64   `json:"unitPrice"`
	Quantity         int       `json:"quantity"`
	TotalValue       float64   `json:"totalValue"`
	CustomerName     string    `json:"customerName,omitempty"`
	PhoneNumber      string    `json:"phoneNumber,omitempty"`
	PlanName         string    `json:"planName,omitempty"`
	Seller           string    `json:"seller,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// CreateSale is the inbound payload for new sales. Omitted statuses take their initial values.
type CreateSale struct {
	ID               string     `json:"id,omitempty"`
	CommercialStatus string     `json:"commercialStatus,omitempty"`
	LogisticStatus   string     `json:"logisticStatus,omitempty"`
	LineStatus       string     `json:"lineStatus,omitempty"`
	ProductType      string     `json:"productType"`
	UnitPrice        float64    `json:"unitPrice"`
	Quantity         int        `json:"quantity"`
	CustomerName     string     `json:"customerName,omitempty"`
	PhoneNumber      string     `json:"phoneNumber,omitempty"`
	PlanName         string     `json:"planName,omitempty"`
	Seller           string     `json:"seller,omitempty"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
}

// StatusChange preserves field presence so omitted dimensions stay untouched.
type StatusChange struct {
	CommercialStatus *string `json:"commercialStatus,omitempty"`
	LogisticStatus   *string `json:"logisticStatus,omitempty"`
	LineStatus       *string `json:"lineStatus,omitempty"`
}

func ToDraft(in CreateSale) domain.SaleDraft {
	draft := domain.SaleDraft{
		ID:               in.ID,
		CommercialStatus: domain.CommercialStatus(normalize(in.CommercialStatus)),
		LogisticStatus:   domain.LogisticStatus(normalize(in.LogisticStatus)),
		LineStatus:       domain.LineStatus(normalize(in.LineStatus)),
		ProductType:      domain.ProductType(in.ProductType),
		UnitPrice:        in.UnitPrice,
		Quantity:         in.Quantity,
		CustomerName:     in.CustomerName,
		PhoneNumber:      in.PhoneNumber,
		PlanName:         in.PlanName,
		Seller:           in.Seller,
	}
	if in.CreatedAt != nil {
		draft.CreatedAt = in.CreatedAt.UTC()
	}
	return draft
}

func ToStatusChange(in StatusChange) domain.StatusChange {
	var change domain.StatusChange
	if in.CommercialStatus != nil {
		v := domain.CommercialStatus(normalize(*in.CommercialStatus))
		change.Commercial = &v
	}
	if in.LogisticStatus != nil {
		v := domain.LogisticStatus(normalize(*in.LogisticStatus))
		change.Logistic = &v
	}
	if in.LineStatus != nil {
		v := domain.LineStatus(normalize(*in.LineStatus))
		change.Line = &v
	}
	return change
}

// FromDomainSale maps a sale without persistence metadata.
func FromDomainSale(s *domain.Sale) Sale {
	return Sale{
		ID:               s.ID,
		CommercialStatus: string(s.CommercialStatus),
		LogisticStatus:   string(s.LogisticStatus),
		LineStatus:       string(s.LineStatus),
		ProductType:      string(s.ProductType),
		UnitPrice:        s.UnitPrice,
		Quantity:         s.Quantity,
		TotalValue:       s.TotalValue(),
		CustomerName:     s.CustomerName,
		PhoneNumber:      s.PhoneNumber,
		PlanName:         s.PlanName,
		Seller:           s.Seller,
		CreatedAt:        s.CreatedAt,
	}
}

// ToDomainSale maps a stored or exported sale without validating it, so invalid rows can still be
// classified as unclassifiable.
func ToDomainSale(in Sale) *domain.Sale {
	return &domain.Sale{
		ID:               in.ID,
		CommercialStatus: domain.CommercialStatus(normalize(in.CommercialStatus)),
		LogisticStatus:   domain.LogisticStatus(normalize(in.LogisticStatus)),
		LineStatus:       domain.LineStatus(normalize(in.LineStatus)),
		ProductType:      domain.ProductType(in.ProductType),
		UnitPrice:        in.UnitPrice,
		Quantity:         in.Quantity,
		CustomerName:     in.CustomerName,
		PhoneNumber:      in.PhoneNumber,
		PlanName:         in.PlanName,
		Seller:           in.Seller,
		CreatedAt:        in.CreatedAt,
	}
}

func FromProjection(p *ports.SaleProjection) Sale {
	out := FromDomainSale(p.Entity)
	out.UpdatedAt = p.Metadata.UpdatedAt
	return out
}

func FromProjectionList(list []*ports.SaleProjection) []Sale {
	out := make([]Sale, 0, len(list))
	for _, p := range list {
		if p == nil || p.Entity == nil {
			continue
		}
		out = append(out, FromProjection(p))
	}
	return out
}

func normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
