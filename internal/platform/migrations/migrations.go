package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// openFollowUpIndex keeps at most one unresolved follow-up per sale.
const openFollowUpIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_follow_up_tasks_open_sale
	ON follow_up_tasks (sale_id) WHERE status <> 'RESOLVED'`

// Run applies the schema for the bounded contexts. Adapters never automigrate on their own.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	if err := db.AutoMigrate(
		&saleRecord{},
		&followUpRecord{},
		&sweepRecord{},
	); err != nil {
		return err
	}
	return db.Exec(openFollowUpIndex).Error
}

// Sale schema mirrors the sales Postgres adapter.
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

// Follow-up schema mirrors the followups Postgres adapter.
type followUpRecord struct {
	ID        string         `gorm:"primaryKey;column:id;size:64"`
	SaleID    string         `gorm:"column:sale_id;size:64;index"`
	Assignee  string         `gorm:"column:assignee;index"`
	Status    string         `gorm:"column:status;type:varchar(32);index"`
	Reason    string         `gorm:"column:reason"`
	Notes     []followUpNote `gorm:"column:notes;serializer:json"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

type followUpNote struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (followUpRecord) TableName() string { return "follow_up_tasks" }

// Sweep schema mirrors the backoffice sweep audit adapter.
type sweepRecord struct {
	ID                  string         `gorm:"primaryKey;column:id;size:64"`
	AsOf                time.Time      `gorm:"column:as_of"`
	TotalCases          int            `gorm:"column:total_cases"`
	HighPriorityCount   int            `gorm:"column:high_priority_count"`
	MediumPriorityCount int            `gorm:"column:medium_priority_count"`
	NormalPriorityCount int            `gorm:"column:normal_priority_count"`
	PendingCount        int            `gorm:"column:pending_count"`
	CancelledCount      int            `gorm:"column:cancelled_count"`
	UnclassifiableCount int            `gorm:"column:unclassifiable_count"`
	TotalValue          float64        `gorm:"column:total_value"`
	AvgValue            float64        `gorm:"column:avg_value"`
	UrgencyRate         float64        `gorm:"column:urgency_rate"`
	OpenedSaleIDs       pq.StringArray `gorm:"column:opened_sale_ids;type:text[]"`
	CreatedAt           time.Time      `gorm:"column:created_at;index"`
}

func (sweepRecord) TableName() string { return "triage_sweeps" }
