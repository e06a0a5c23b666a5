package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chittaranjan27/Task-Board-Application/domain"
)

func sampleBoard() domain.Board {
	return domain.Board{
		ID:   "b1",
		Name: "Sprint 1",
		Columns: []domain.Column{
			{ID: "c1", BoardID: "b1", Tasks: []domain.Task{{ID: "t1", ColumnID: "c1"}, {ID: "t2", ColumnID: "c1"}}},
			{ID: "c2", BoardID: "b1", Tasks: []domain.Task{{ID: "t3", ColumnID: "c2"}}},
		},
	}
}

func TestParsePriority(t *testing.T) {
	p, ok := domain.ParsePriority(" High ")
	require.True(t, ok)
	assert.Equal(t, domain.PriorityHigh, p)

	_, ok = domain.ParsePriority("urgent")
	assert.False(t, ok)
}

func TestBoardLookups(t *testing.T) {
	b := sampleBoard()

	require.NotNil(t, b.Column("c2"))
	assert.Nil(t, b.Column("nope"))

	col := b.ColumnOfTask("t3")
	require.NotNil(t, col)
	assert.Equal(t, "c2", col.ID)
	assert.Nil(t, b.ColumnOfTask("nope"))

	task := b.FindTask("t2")
	require.NotNil(t, task)
	assert.Equal(t, "t2", task.ID)
	assert.Nil(t, b.FindTask("nope"))
}

func TestCloneIsDeep(t *testing.T) {
	b := sampleBoard()
	c := b.Clone()

	c.Columns[0].Tasks[0].Title = "tampered"
	c.Columns[1].Title = "tampered"

	assert.Empty(t, b.Columns[0].Tasks[0].Title)
	assert.Empty(t, b.Columns[1].Title)
}

func TestCloneBoards(t *testing.T) {
	boards := []domain.Board{sampleBoard()}
	copied := domain.CloneBoards(boards)

	copied[0].Columns[0].Tasks = nil
	assert.Len(t, boards[0].Columns[0].Tasks, 2)
}
