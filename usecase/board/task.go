package board

import (
	"context"
	"fmt"
	"time"

	"github.com/chittaranjan27/Task-Board-Application/domain"
)

// TaskDraft carries the caller-supplied fields of a new task. Identity,
// column membership, order and creation time are assigned by the engine.
type TaskDraft struct {
	Title       string
	Description string
	CreatedBy   string
	Priority    domain.Priority
	DueDate     *time.Time
}

// TaskUpdate is a partial update; nil fields are left untouched. Column
// membership is structural and cannot be changed here; use MoveTask.
// A non-nil zero DueDate clears the due date.
type TaskUpdate struct {
	Title       *string
	Description *string
	CreatedBy   *string
	Priority    *domain.Priority
	DueDate     *time.Time
}

// CreateTask appends a task to the column, ordered after its siblings.
func (uc *UseCase) CreateTask(ctx context.Context, columnID string, draft TaskDraft) (domain.Task, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b, col := uc.findColumn(columnID)
	if col == nil {
		return domain.Task{}, domain.ErrColumnNotFound
	}
	if draft.Priority == "" {
		draft.Priority = domain.PriorityMedium
	}
	t := domain.Task{
		ID:          uc.NewID(),
		Title:       draft.Title,
		Description: draft.Description,
		CreatedBy:   draft.CreatedBy,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		ColumnID:    columnID,
		Order:       len(col.Tasks),
		CreatedAt:   uc.Now().UTC(),
	}
	col.Tasks = append(col.Tasks, t)
	uc.touch(b)
	uc.persist(ctx)
	return t, nil
}

// UpdateTask merges the provided fields into the task wherever it lives.
func (uc *UseCase) UpdateTask(ctx context.Context, taskID string, upd TaskUpdate) (domain.Task, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b, _, t := uc.findTask(taskID)
	if t == nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if upd.Title != nil {
		t.Title = *upd.Title
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	if upd.CreatedBy != nil {
		t.CreatedBy = *upd.CreatedBy
	}
	if upd.Priority != nil {
		t.Priority = *upd.Priority
	}
	if upd.DueDate != nil {
		if upd.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			due := *upd.DueDate
			t.DueDate = &due
		}
	}
	uc.touch(b)
	uc.persist(ctx)
	return *t, nil
}

// DeleteTask removes the task from its column and renumbers the
// remaining siblings so order stays dense.
func (uc *UseCase) DeleteTask(ctx context.Context, taskID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b, col, t := uc.findTask(taskID)
	if t == nil {
		return domain.ErrTaskNotFound
	}
	removeTask(col, taskID)
	renumberTasks(col)
	uc.touch(b)
	uc.persist(ctx)
	return nil
}

// MoveTask removes the task from wherever it lives, rebinds it to the
// target column and inserts it at targetIndex (clamped to the valid
// range). Both source and target columns end up densely numbered.
func (uc *UseCase) MoveTask(ctx context.Context, taskID, targetColumnID string, targetIndex int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	srcBoard, srcCol, t := uc.findTask(taskID)
	if t == nil {
		return domain.ErrTaskNotFound
	}
	dstBoard, dstCol := uc.findColumn(targetColumnID)
	if dstCol == nil {
		return domain.ErrColumnNotFound
	}

	moved := *t
	moved.ColumnID = targetColumnID
	removeTask(srcCol, taskID)
	renumberTasks(srcCol)

	// srcCol may alias dstCol when moving within one column; insert after
	// removal so the index is computed against the shrunk sequence.
	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(dstCol.Tasks) {
		targetIndex = len(dstCol.Tasks)
	}
	dstCol.Tasks = append(dstCol.Tasks, domain.Task{})
	copy(dstCol.Tasks[targetIndex+1:], dstCol.Tasks[targetIndex:])
	dstCol.Tasks[targetIndex] = moved
	renumberTasks(dstCol)

	uc.touch(dstBoard)
	if srcBoard.ID != dstBoard.ID {
		uc.touch(srcBoard)
	}
	uc.persist(ctx)
	return nil
}

// ReorderTasks reassigns order from the position of each id in the
// provided list, which must be a permutation of the column's task ids.
func (uc *UseCase) ReorderTasks(ctx context.Context, columnID string, orderedIDs []string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b, col := uc.findColumn(columnID)
	if col == nil {
		return domain.ErrColumnNotFound
	}
	if len(orderedIDs) != len(col.Tasks) {
		return domain.NewError(domain.ErrCodeInvalid, "reorder list must include every task in the column exactly once")
	}
	reordered := make([]domain.Task, 0, len(orderedIDs))
	seen := make(map[string]bool, len(orderedIDs))
	for i, id := range orderedIDs {
		if seen[id] {
			return fmt.Errorf("task %s listed twice: %w", id, domain.ErrTaskNotInColumn)
		}
		seen[id] = true
		t := taskIn(col, id)
		if t == nil {
			return fmt.Errorf("task %s: %w", id, domain.ErrTaskNotInColumn)
		}
		next := *t
		next.Order = i
		reordered = append(reordered, next)
	}
	col.Tasks = reordered
	uc.touch(b)
	uc.persist(ctx)
	return nil
}

// findTask returns pointers into the canonical collection. Callers hold
// the lock.
func (uc *UseCase) findTask(taskID string) (*domain.Board, *domain.Column, *domain.Task) {
	for i := range uc.boards {
		b := &uc.boards[i]
		if col := b.ColumnOfTask(taskID); col != nil {
			return b, col, taskIn(col, taskID)
		}
	}
	return nil, nil, nil
}

func taskIn(col *domain.Column, taskID string) *domain.Task {
	for i := range col.Tasks {
		if col.Tasks[i].ID == taskID {
			return &col.Tasks[i]
		}
	}
	return nil
}

func removeTask(col *domain.Column, taskID string) {
	for i := range col.Tasks {
		if col.Tasks[i].ID == taskID {
			col.Tasks = append(col.Tasks[:i], col.Tasks[i+1:]...)
			return
		}
	}
}
