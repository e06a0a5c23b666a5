package domain

import (
	"strings"
	"time"
)

// Priority classifies how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority maps free-form user input onto a known priority.
func ParsePriority(s string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	}
	return "", false
}

// Task is a single card on the board, owned by exactly one column.
// Order is its zero-based position within that column.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CreatedBy   string     `json:"created_by,omitempty"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ColumnID    string     `json:"column_id"`
	Order       int        `json:"order"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Column is an ordered lane of tasks, owned by exactly one board.
type Column struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	BoardID string `json:"board_id"`
	Order   int    `json:"order"`
	Tasks   []Task `json:"tasks"`
}

// Board is the root entity. Deleting a board destroys its columns and tasks.
type Board struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Columns   []Column   `json:"columns"`
}

// Column returns the column with the given id, or nil.
func (b *Board) Column(id string) *Column {
	if b == nil {
		return nil
	}
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i]
		}
	}
	return nil
}

// ColumnOfTask returns the column whose task sequence contains taskID, or nil.
func (b *Board) ColumnOfTask(taskID string) *Column {
	if b == nil {
		return nil
	}
	for i := range b.Columns {
		for j := range b.Columns[i].Tasks {
			if b.Columns[i].Tasks[j].ID == taskID {
				return &b.Columns[i]
			}
		}
	}
	return nil
}

// FindTask returns the task with the given id, or nil.
func (b *Board) FindTask(taskID string) *Task {
	col := b.ColumnOfTask(taskID)
	if col == nil {
		return nil
	}
	for i := range col.Tasks {
		if col.Tasks[i].ID == taskID {
			return &col.Tasks[i]
		}
	}
	return nil
}

// Clone returns a copy whose task slice shares nothing with the receiver.
func (c Column) Clone() Column {
	c.Tasks = append([]Task(nil), c.Tasks...)
	return c
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	cols := make([]Column, len(b.Columns))
	for i, c := range b.Columns {
		cols[i] = c.Clone()
	}
	b.Columns = cols
	return b
}

// CloneBoards deep-copies a whole board collection.
func CloneBoards(boards []Board) []Board {
	out := make([]Board, len(boards))
	for i, b := range boards {
		out[i] = b.Clone()
	}
	return out
}
