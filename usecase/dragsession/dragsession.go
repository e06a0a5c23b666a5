// Package dragsession turns the gesture library's drag-lifecycle events
// into engine calls. Cross-column movement is applied eagerly while the
// pointer hovers, same-column reordering only when the drag finishes;
// the split matches the two kinds of visual feedback a drag needs.
package dragsession

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chittaranjan27/Task-Board-Application/domain"
	"github.com/chittaranjan27/Task-Board-Application/usecase/projection"
)

// BoardMutator is the slice of the board engine the controller drives.
type BoardMutator interface {
	CurrentBoard() (domain.Board, bool)
	MoveTask(ctx context.Context, taskID, targetColumnID string, targetIndex int) error
	ReorderTasks(ctx context.Context, columnID string, orderedIDs []string) error
}

// Controller is a small state machine: idle, or dragging one task.
type Controller struct {
	engine BoardMutator
	logger *zap.Logger

	// Now feeds the projection used to compute drop indices against the
	// currently displayed (filtered) sequences.
	Now func() time.Time

	filter projection.Filter
	active string
}

func New(engine BoardMutator, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		engine: engine,
		logger: logger,
		Now:    time.Now,
	}
}

// SetFilter records the filter the view currently applies, so hover
// indices line up with what the user actually sees.
func (c *Controller) SetFilter(f projection.Filter) {
	c.filter = f
}

// Active reports the task being dragged, if any.
func (c *Controller) Active() (string, bool) {
	return c.active, c.active != ""
}

// OnDragStart begins a drag session for the given task.
func (c *Controller) OnDragStart(taskID string) {
	c.active = taskID
}

// OnDragOver handles the pointer hovering over a drop target. When the
// target belongs to a different column the task is moved immediately.
// This is committed state, not a preview, and is not rolled back if the
// drag is later cancelled.
func (c *Controller) OnDragOver(ctx context.Context, overID string) {
	if c.active == "" || overID == "" {
		return
	}
	b, ok := c.engine.CurrentBoard()
	if !ok {
		return
	}
	activeCol := b.ColumnOfTask(c.active)
	if activeCol == nil {
		return
	}
	// the target is either a column itself or a task inside one
	overCol := b.Column(overID)
	if overCol == nil {
		overCol = b.ColumnOfTask(overID)
	}
	if overCol == nil || overCol.ID == activeCol.ID {
		return
	}

	shown := projection.Tasks(&b, c.filter, c.Now())[overCol.ID]
	index := len(shown)
	for i, t := range shown {
		if t.ID == overID {
			index = i
			break
		}
	}
	if err := c.engine.MoveTask(ctx, c.active, overCol.ID, index); err != nil {
		c.logger.Error("cross-column move failed",
			zap.String("task_id", c.active),
			zap.String("column_id", overCol.ID),
			zap.Error(err))
	}
}

// OnDragEnd finishes the session. If the task is dropped on another task
// in its own column it is reordered there; in every case the controller
// returns to idle, including cancelled drags (empty overID).
func (c *Controller) OnDragEnd(ctx context.Context, overID string) {
	active := c.active
	c.active = ""
	if active == "" || overID == "" {
		return
	}
	b, ok := c.engine.CurrentBoard()
	if !ok {
		return
	}
	col := b.ColumnOfTask(active)
	if col == nil {
		return
	}
	activeIndex, overIndex := -1, -1
	for i, t := range col.Tasks {
		switch t.ID {
		case active:
			activeIndex = i
		case overID:
			overIndex = i
		}
	}
	if overIndex < 0 || overIndex == activeIndex {
		return
	}

	ids := make([]string, 0, len(col.Tasks))
	for _, t := range col.Tasks {
		if t.ID != active {
			ids = append(ids, t.ID)
		}
	}
	ids = append(ids, "")
	copy(ids[overIndex+1:], ids[overIndex:])
	ids[overIndex] = active

	if err := c.engine.ReorderTasks(ctx, col.ID, ids); err != nil {
		c.logger.Error("same-column reorder failed",
			zap.String("task_id", active),
			zap.String("column_id", col.ID),
			zap.Error(err))
	}
}
