// Package board owns the canonical board/column/task graph and every
// structural mutation on it. Each successful mutation replaces the
// persisted collection through the injected repository; a failed write
// is logged and never undoes the in-memory change.
package board

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chittaranjan27/Task-Board-Application/domain"
	"github.com/chittaranjan27/Task-Board-Application/pkg/identifier"
	"github.com/chittaranjan27/Task-Board-Application/repository"
)

type UseCase struct {
	mu     sync.Mutex
	repo   repository.BoardRepository
	logger *zap.Logger

	// Now and NewID are replaceable for deterministic tests.
	Now   func() time.Time
	NewID func() string

	boards []domain.Board
	// current is the id of the board open in the detail view, "" when none.
	// Resolved against boards on every read, never cached as a copy.
	current string
}

func New(repo repository.BoardRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		repo:   repo,
		logger: logger,
		Now:    time.Now,
		NewID:  identifier.New,
	}
}

// Load hydrates the collection from the repository. Meant to run once at
// startup, before any mutation.
func (uc *UseCase) Load(ctx context.Context) error {
	boards, err := uc.repo.Load(ctx)
	if err != nil {
		return err
	}
	uc.mu.Lock()
	uc.boards = boards
	uc.mu.Unlock()
	return nil
}

// Boards returns a copy of the full collection in stable listing order.
func (uc *UseCase) Boards() []domain.Board {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return domain.CloneBoards(uc.boards)
}

// Board returns a copy of one board by id.
func (uc *UseCase) Board(id string) (domain.Board, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b := uc.findBoard(id)
	if b == nil {
		return domain.Board{}, domain.ErrBoardNotFound
	}
	return b.Clone(), nil
}

// SetCurrentBoard marks a board as open in the detail view.
func (uc *UseCase) SetCurrentBoard(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.findBoard(id) == nil {
		return domain.ErrBoardNotFound
	}
	uc.current = id
	return nil
}

// ClearCurrentBoard returns the detail view to "none".
func (uc *UseCase) ClearCurrentBoard() {
	uc.mu.Lock()
	uc.current = ""
	uc.mu.Unlock()
}

// CurrentBoard resolves the open board against the canonical collection,
// so it always reflects the latest mutations.
func (uc *UseCase) CurrentBoard() (domain.Board, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current == "" {
		return domain.Board{}, false
	}
	b := uc.findBoard(uc.current)
	if b == nil {
		return domain.Board{}, false
	}
	return b.Clone(), true
}

func (uc *UseCase) CreateBoard(ctx context.Context, name string) (domain.Board, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b := domain.Board{
		ID:        uc.NewID(),
		Name:      name,
		CreatedAt: uc.Now().UTC(),
		Columns:   []domain.Column{},
	}
	uc.boards = append(uc.boards, b)
	uc.persist(ctx)
	return b.Clone(), nil
}

// UpdateBoard replaces one board's content wholesale, matched by id.
func (uc *UseCase) UpdateBoard(ctx context.Context, b domain.Board) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.boards {
		if uc.boards[i].ID == b.ID {
			replacement := b.Clone()
			uc.touch(&replacement)
			uc.boards[i] = replacement
			uc.persist(ctx)
			return nil
		}
	}
	return domain.ErrBoardNotFound
}

// DeleteBoard removes the board and everything it owns. If the board is
// open in the detail view, the view falls back to "none".
func (uc *UseCase) DeleteBoard(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.boards {
		if uc.boards[i].ID == id {
			uc.boards = append(uc.boards[:i], uc.boards[i+1:]...)
			if uc.current == id {
				uc.current = ""
			}
			uc.persist(ctx)
			return nil
		}
	}
	return domain.ErrBoardNotFound
}

// CreateColumn appends a column to the board, ordered after its siblings.
func (uc *UseCase) CreateColumn(ctx context.Context, boardID, title string) (domain.Column, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b := uc.findBoard(boardID)
	if b == nil {
		return domain.Column{}, domain.ErrBoardNotFound
	}
	col := domain.Column{
		ID:      uc.NewID(),
		Title:   title,
		BoardID: boardID,
		Order:   len(b.Columns),
		Tasks:   []domain.Task{},
	}
	b.Columns = append(b.Columns, col)
	uc.touch(b)
	uc.persist(ctx)
	return col.Clone(), nil
}

// UpdateColumn renames a column. Ids are globally unique, so at most one
// column matches across the whole collection.
func (uc *UseCase) UpdateColumn(ctx context.Context, columnID, title string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b, col := uc.findColumn(columnID)
	if col == nil {
		return domain.ErrColumnNotFound
	}
	col.Title = title
	uc.touch(b)
	uc.persist(ctx)
	return nil
}

// DeleteColumn removes the column and cascades deletion of its tasks.
// Remaining sibling columns are renumbered so order stays dense.
func (uc *UseCase) DeleteColumn(ctx context.Context, columnID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	b, col := uc.findColumn(columnID)
	if col == nil {
		return domain.ErrColumnNotFound
	}
	for i := range b.Columns {
		if b.Columns[i].ID == columnID {
			b.Columns = append(b.Columns[:i], b.Columns[i+1:]...)
			break
		}
	}
	renumberColumns(b)
	uc.touch(b)
	uc.persist(ctx)
	return nil
}

// findBoard returns a pointer into the canonical collection. Callers hold
// the lock.
func (uc *UseCase) findBoard(id string) *domain.Board {
	for i := range uc.boards {
		if uc.boards[i].ID == id {
			return &uc.boards[i]
		}
	}
	return nil
}

func (uc *UseCase) findColumn(columnID string) (*domain.Board, *domain.Column) {
	for i := range uc.boards {
		if col := uc.boards[i].Column(columnID); col != nil {
			return &uc.boards[i], col
		}
	}
	return nil, nil
}

func (uc *UseCase) touch(b *domain.Board) {
	now := uc.Now().UTC()
	b.UpdatedAt = &now
}

// persist writes the whole collection. A storage failure must not break
// the mutation that already happened in memory, so it is only logged.
func (uc *UseCase) persist(ctx context.Context) {
	if err := uc.repo.Save(ctx, uc.boards); err != nil {
		uc.logger.Error("failed to persist board collection", zap.Error(err))
	}
}

func renumberColumns(b *domain.Board) {
	for i := range b.Columns {
		b.Columns[i].Order = i
	}
}

func renumberTasks(col *domain.Column) {
	for i := range col.Tasks {
		col.Tasks[i].Order = i
	}
}
