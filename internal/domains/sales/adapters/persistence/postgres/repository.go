package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/sales-backoffice/internal/domains/sales/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/ports"
	"github.com/Apurer/sales-backoffice/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists sales in PostgreSQL using GORM. Schema is owned by platform/migrations.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// saleRecord maps the sale aggregate to the sales table.
type saleRecord struct {
	ID               string    `gorm:"primaryKey;column:id;size:64"`
	CommercialStatus string    `gorm:"column:commercial_status;type:varchar(32);index"`
	LogisticStatus   string    `gorm:"column:logistic_status;type:varchar(32);index"`
	LineStatus       string    `gorm:"column:line_status;type:varchar(32)"`
	ProductType      string    `gorm:"column:product_type;type:varchar(32);index"`
	UnitPrice        float64   `gorm:"column:unit_price"`
	Quantity         int       `gorm:"column:quantity"`
	CustomerName     string    `gorm:"column:customer_name"`
	PhoneNumber      string    `gorm:"column:phone_number"`
	PlanName         string    `gorm:"column:plan_name"`
	Seller           string    `gorm:"column:seller"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (saleRecord) TableName() string { return "sales" }

// Save inserts or updates a sale. created_at is immutable once written.
func (r *Repository) Save(ctx context.Context, sale *domain.Sale) (*ports.SaleProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, errors.New("sale is nil")
	}
	record := toRecord(sale)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"commercial_status": record.CommercialStatus,
				"logistic_status":   record.LogisticStatus,
				"line_status":       record.LineStatus,
				"product_type":      record.ProductType,
				"unit_price":        record.UnitPrice,
				"quantity":          record.Quantity,
				"customer_name":     record.CustomerName,
				"phone_number":      record.PhoneNumber,
				"plan_name":         record.PlanName,
				"seller":            record.Seller,
				"updated_at":        gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a sale by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*ports.SaleProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record saleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a sale by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&saleRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns sales matching the filter ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*ports.SaleProjection, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&saleRecord{})
	if len(filter.ProductTypes) > 0 {
		query = query.Where("product_type IN ?", toStrings(filter.ProductTypes))
	}
	if len(filter.CommercialStatuses) > 0 {
		query = query.Where("commercial_status IN ?", toStrings(filter.CommercialStatuses))
	}
	var records []saleRecord
	if err := query.Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*ports.SaleProjection, 0, len(records))
	for i := range records {
		list = append(list, records[i].toProjection())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres sale repository not configured")
	}
	return nil
}

func toRecord(sale *domain.Sale) saleRecord {
	return saleRecord{
		ID:               sale.ID,
		CommercialStatus: string(sale.CommercialStatus),
		LogisticStatus:   string(sale.LogisticStatus),
		LineStatus:       string(sale.LineStatus),
		ProductType:      string(sale.ProductType),
		UnitPrice:        sale.UnitPrice,
		Quantity:         sale.Quantity,
		CustomerName:     sale.CustomerName,
		PhoneNumber:      sale.PhoneNumber,
		PlanName:         sale.PlanName,
		Seller:           sale.Seller,
		CreatedAt:        sale.CreatedAt,
	}
}

func (r saleRecord) toProjection() *ports.SaleProjection {
	sale := &domain.Sale{
		ID:               r.ID,
		CommercialStatus: domain.CommercialStatus(r.CommercialStatus),
		LogisticStatus:   domain.LogisticStatus(r.LogisticStatus),
		LineStatus:       domain.LineStatus(r.LineStatus),
		ProductType:      domain.ProductType(r.ProductType),
		CreatedAt:        r.CreatedAt.UTC(),
		UnitPrice:        r.UnitPrice,
		Quantity:         r.Quantity,
		CustomerName:     r.CustomerName,
		PhoneNumber:      r.PhoneNumber,
		PlanName:         r.PlanName,
		Seller:           r.Seller,
	}
	return projection.New(sale, r.CreatedAt.UTC(), r.UpdatedAt.UTC())
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
