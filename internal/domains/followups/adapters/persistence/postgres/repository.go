package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
	"github.com/Apurer/sales-backoffice/internal/domains/followups/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists follow-up tasks using GORM. The one-unresolved-task-per-sale rule is
// enforced by a partial unique index created in platform/migrations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type taskRecord struct {
	ID        string       `gorm:"primaryKey;column:id;size:64"`
	SaleID    string       `gorm:"column:sale_id;size:64;index"`
	Assignee  string       `gorm:"column:assignee;index"`
	Status    string       `gorm:"column:status;type:varchar(32);index"`
	Reason    string       `gorm:"column:reason"`
	Notes     []noteRecord `gorm:"column:notes;serializer:json"`
	CreatedAt time.Time    `gorm:"column:created_at"`
	UpdatedAt time.Time    `gorm:"column:updated_at"`
}

type noteRecord struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func (taskRecord) TableName() string { return "follow_up_tasks" }

func (r *Repository) Save(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.New("follow-up is nil")
	}
	record := toRecord(task)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			// EXCLUDED carries the serialized notes column from the insert attempt.
			DoUpdates: clause.AssignmentColumns([]string{"assignee", "status", "reason", "notes", "updated_at"}),
		}).Create(&record).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ports.ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) FindBySale(ctx context.Context, saleID string) (*domain.Task, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record taskRecord
	err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN status = ? THEN 1 ELSE 0 END",
			Vars:               []any{string(domain.StatusResolved)},
			WithoutParentheses: true,
		}}).
		Order("updated_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Task, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Model(&taskRecord{})
	if filter.Active {
		query = query.Where("status <> ?", string(domain.StatusResolved))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Assignee != "" {
		query = query.Where("LOWER(assignee) = LOWER(?)", filter.Assignee)
	}
	var records []taskRecord
	if err := query.Order("created_at ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Task, 0, len(records))
	for i := range records {
		out = append(out, records[i].toDomain())
	}
	return out, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres follow-up repository not configured")
	}
	return nil
}

func toRecord(task *domain.Task) taskRecord {
	notes := make([]noteRecord, 0, len(task.Notes))
	for _, n := range task.Notes {
		notes = append(notes, noteRecord{Author: n.Author, Body: n.Body, CreatedAt: n.CreatedAt})
	}
	return taskRecord{
		ID:        task.ID,
		SaleID:    task.SaleID,
		Assignee:  task.Assignee,
		Status:    string(task.Status),
		Reason:    task.Reason,
		Notes:     notes,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

func (r taskRecord) toDomain() *domain.Task {
	task := &domain.Task{
		ID:        r.ID,
		SaleID:    r.SaleID,
		Assignee:  r.Assignee,
		Status:    domain.Status(r.Status),
		Reason:    r.Reason,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
	for _, n := range r.Notes {
		task.Notes = append(task.Notes, domain.Note{Author: n.Author, Body: n.Body, CreatedAt: n.CreatedAt.UTC()})
	}
	return task
}
