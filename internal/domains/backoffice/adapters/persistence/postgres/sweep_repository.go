package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Apurer/sales-backoffice/internal/domains/backoffice/ports"
	"github.com/Apurer/sales-backoffice/internal/domains/sales/triage"
)

var _ ports.SweepRepository = (*SweepRepository)(nil)

// SweepRepository stores the sweep audit trail in triage_sweeps.
type SweepRepository struct {
	db *gorm.DB
}

func NewSweepRepository(db *gorm.DB) *SweepRepository {
	return &SweepRepository{db: db}
}

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

func (r *SweepRepository) Record(ctx context.Context, result *ports.SweepResult) error {
	if r == nil || r.db == nil {
		return errors.New("postgres sweep repository not configured")
	}
	if result == nil {
		return errors.New("sweep result is nil")
	}
	m := result.Metrics
	record := sweepRecord{
		ID:                  result.ID,
		AsOf:                result.AsOf,
		TotalCases:          m.TotalCases,
		HighPriorityCount:   m.HighPriorityCount,
		MediumPriorityCount: m.MediumPriorityCount,
		NormalPriorityCount: m.NormalPriorityCount,
		PendingCount:        m.PendingCount,
		CancelledCount:      m.CancelledCount,
		UnclassifiableCount: m.UnclassifiableCount,
		TotalValue:          m.TotalValue,
		AvgValue:            m.AvgValue,
		UrgencyRate:         m.UrgencyRate,
		OpenedSaleIDs:       pq.StringArray(append([]string{}, result.Opened...)),
		CreatedAt:           result.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&record).Error
}

func (r *SweepRepository) Recent(ctx context.Context, limit int) ([]*ports.SweepResult, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("postgres sweep repository not configured")
	}
	var records []sweepRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*ports.SweepResult, 0, len(records))
	for _, rec := range records {
		out = append(out, &ports.SweepResult{
			ID:   rec.ID,
			AsOf: rec.AsOf.UTC(),
			Metrics: triage.Metrics{
				TotalCases:          rec.TotalCases,
				HighPriorityCount:   rec.HighPriorityCount,
				MediumPriorityCount: rec.MediumPriorityCount,
				NormalPriorityCount: rec.NormalPriorityCount,
				PendingCount:        rec.PendingCount,
				CancelledCount:      rec.CancelledCount,
				UnclassifiableCount: rec.UnclassifiableCount,
				TotalValue:          rec.TotalValue,
				AvgValue:            rec.AvgValue,
				UrgencyRate:         rec.UrgencyRate,
			},
			Opened:    append([]string{}, rec.OpenedSaleIDs...),
			CreatedAt: rec.CreatedAt.UTC(),
		})
	}
	return out, nil
}

// Prune removes audit rows older than cutoff. Use for housekeeping or cron.
func (r *SweepRepository) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("postgres sweep repository not configured")
	}
	res := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&sweepRecord{})
	return res.RowsAffected, res.Error
}
