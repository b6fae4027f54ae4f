package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)

func TestNewTask(t *testing.T) {
	task, err := NewTask("t1", "  sale-9 ", "High value", now)
	require.NoError(t, err)
	assert.Equal(t, "sale-9", task.SaleID)
	assert.Equal(t, Unassigned, task.Assignee)
	assert.Equal(t, StatusOpen, task.Status)

	_, err = NewTask("t2", " ", "", now)
	assert.ErrorIs(t, err, ErrEmptySaleID)
}

func TestAssign(t *testing.T) {
	task, _ := NewTask("t1", "s", "", now)

	require.NoError(t, task.Assign("", now))
	assert.Equal(t, Unassigned, task.Assignee)
	assert.Equal(t, StatusOpen, task.Status)

	later := now.Add(time.Minute)
	require.NoError(t, task.Assign("  maria ", later))
	assert.Equal(t, "maria", task.Assignee)
	assert.Equal(t, StatusInProgress, task.Status)
	assert.Equal(t, later, task.UpdatedAt)

	require.NoError(t, task.Assign("", later))
	assert.Equal(t, StatusInProgress, task.Status, "unassigning does not reopen")
}

func TestAddNote(t *testing.T) {
	task, _ := NewTask("t1", "s", "", now)
	require.NoError(t, task.Assign("joao", now))

	assert.ErrorIs(t, task.AddNote("x", "   ", now), ErrEmptyNoteBody)
	require.NoError(t, task.AddNote("", "called customer", now))
	require.Len(t, task.Notes, 1)
	assert.Equal(t, "joao", task.Notes[0].Author)
}

func TestResolveClosesTask(t *testing.T) {
	task, _ := NewTask("t1", "s", "", now)
	task.Resolve(now)
	assert.True(t, task.Closed())

	task.Resolve(now.Add(time.Hour))
	assert.Equal(t, now, task.UpdatedAt)
	assert.ErrorIs(t, task.Assign("maria", now), ErrAlreadyClosed)
	assert.ErrorIs(t, task.AddNote("maria", "late", now), ErrAlreadyClosed)
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus(" in_progress ")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	_, err = ParseStatus("DONE")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCloneIsDeep(t *testing.T) {
	task, _ := NewTask("t1", "s", "", now)
	require.NoError(t, task.AddNote("a", "first", now))
	clone := task.Clone()
	clone.Notes[0].Body = "changed"
	assert.Equal(t, "first", task.Notes[0].Body)
}
