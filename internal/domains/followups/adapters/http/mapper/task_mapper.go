package mapper

import (
	"time"

	"github.com/Apurer/sales-backoffice/internal/domains/followups/domain"
)

type Note struct {
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// FollowUp is the HTTP representation of a follow-up task.
type FollowUp struct {
	ID        string    `json:"id"`
	SaleID    string    `json:"saleId"`
	Assignee  string    `json:"assignee"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	Notes     []Note    `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OpenFollowUp struct {
	Reason string `json:"reason"`
}

type AssignFollowUp struct {
	Assignee string `json:"assignee"`
}

type AddNote struct {
	Author string `json:"author"`
	Body   string `json:"body"`
}

func FromDomainTask(t *domain.Task) FollowUp {
	notes := make([]Note, 0, len(t.Notes))
	for _, n := range t.Notes {
		notes = append(notes, Note{Author: n.Author, Body: n.Body, CreatedAt: n.CreatedAt})
	}
	return FollowUp{
		ID:        t.ID,
		SaleID:    t.SaleID,
		Assignee:  t.Assignee,
		Status:    string(t.Status),
		Reason:    t.Reason,
		Notes:     notes,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func FromDomainTasks(list []*domain.Task) []FollowUp {
	out := make([]FollowUp, 0, len(list))
	for _, t := range list {
		if t != nil {
			out = append(out, FromDomainTask(t))
		}
	}
	return out
}
