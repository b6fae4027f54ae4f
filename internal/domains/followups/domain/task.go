package domain

import (
	"errors"
	"strings"
	"time"
)

// Status is the lifecycle state of a follow-up task.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
)

// Unassigned is the assignee of a task nobody picked up yet.
const Unassigned = "unassigned"

var (
	ErrEmptySaleID   = errors.New("sale id is required")
	ErrEmptyNoteBody = errors.New("note body is required")
	ErrInvalidStatus = errors.New("follow-up status is invalid")
	ErrAlreadyClosed = errors.New("follow-up is already resolved")
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// ParseStatus accepts a case-insensitive status name.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Note is a free-text entry appended to a task.
type Note struct {
	Author    string
	Body      string
	CreatedAt time.Time
}

// Task tracks back-office follow-up work for a single sale.
type Task struct {
	ID        string
	SaleID    string
	Assignee  string
	Status    Status
	Reason    string
	Notes     []Note
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewTask opens a task for saleID.
func NewTask(id, saleID, reason string, now time.Time) (*Task, error) {
	saleID = strings.TrimSpace(saleID)
	if saleID == "" {
		return nil, ErrEmptySaleID
	}
	return &Task{
		ID:        id,
		SaleID:    saleID,
		Assignee:  Unassigned,
		Status:    StatusOpen,
		Reason:    strings.TrimSpace(reason),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Closed reports whether the task was resolved.
func (t *Task) Closed() bool {
	return t.Status == StatusResolved
}

// Assign sets the assignee. An empty name resets it to Unassigned. Assigning a real person to an
// open task starts it.
func (t *Task) Assign(assignee string, now time.Time) error {
	if t.Closed() {
		return ErrAlreadyClosed
	}
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		assignee = Unassigned
	}
	t.Assignee = assignee
	if assignee != Unassigned && t.Status == StatusOpen {
		t.Status = StatusInProgress
	}
	t.UpdatedAt = now
	return nil
}

// AddNote appends a note. Author falls back to the current assignee.
func (t *Task) AddNote(author, body string, now time.Time) error {
	if t.Closed() {
		return ErrAlreadyClosed
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return ErrEmptyNoteBody
	}
	author = strings.TrimSpace(author)
	if author == "" {
		author = t.Assignee
	}
	t.Notes = append(t.Notes, Note{Author: author, Body: body, CreatedAt: now})
	t.UpdatedAt = now
	return nil
}

// Resolve closes the task. Resolving twice is a no-op.
func (t *Task) Resolve(now time.Time) {
	if t.Closed() {
		return
	}
	t.Status = StatusResolved
	t.UpdatedAt = now
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	out := *t
	if t.Notes != nil {
		out.Notes = append([]Note(nil), t.Notes...)
	}
	return &out
}
