package board_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chittaranjan27/Task-Board-Application/domain"
	"github.com/chittaranjan27/Task-Board-Application/repository/memory"
	"github.com/chittaranjan27/Task-Board-Application/usecase/board"
)

var testClock = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) *board.UseCase {
	t.Helper()
	uc := board.New(memory.New(), zap.NewNop())
	uc.Now = func() time.Time { return testClock }
	n := 0
	uc.NewID = func() string { n++; return fmt.Sprintf("id-%02d", n) }
	return uc
}

// requireInvariants checks order density and column membership across the
// whole collection.
func requireInvariants(t *testing.T, uc *board.UseCase) {
	t.Helper()
	for _, b := range uc.Boards() {
		for i, col := range b.Columns {
			require.Equal(t, i, col.Order, "column order must be dense in board %s", b.ID)
			require.Equal(t, b.ID, col.BoardID)
			for j, task := range col.Tasks {
				require.Equal(t, j, task.Order, "task order must be dense in column %s", col.ID)
				require.Equal(t, col.ID, task.ColumnID)
			}
		}
	}
}

func TestCreateBoardAppendsToCollection(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	first, err := uc.CreateBoard(ctx, "Sprint 1")
	require.NoError(t, err)
	second, err := uc.CreateBoard(ctx, "Sprint 2")
	require.NoError(t, err)

	boards := uc.Boards()
	require.Len(t, boards, 2)
	require.Equal(t, first.ID, boards[0].ID)
	require.Equal(t, second.ID, boards[1].ID)
	require.Equal(t, testClock, boards[0].CreatedAt)
	require.Empty(t, boards[0].Columns)
	require.Nil(t, boards[0].UpdatedAt)
}

func TestDeleteBoardClearsCurrent(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	b, err := uc.CreateBoard(ctx, "Doomed")
	require.NoError(t, err)
	require.NoError(t, uc.SetCurrentBoard(b.ID))

	require.NoError(t, uc.DeleteBoard(ctx, b.ID))

	_, ok := uc.CurrentBoard()
	require.False(t, ok, "deleting the open board must clear the detail view")
	require.Empty(t, uc.Boards())
}

func TestDeleteBoardNotFound(t *testing.T) {
	uc := newTestEngine(t)

	err := uc.DeleteBoard(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrBoardNotFound)
	require.True(t, domain.IsDomainError(err, domain.ErrCodeNotFound))
}

func TestUpdateBoardSyncsCurrent(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	b, err := uc.CreateBoard(ctx, "Before")
	require.NoError(t, err)
	require.NoError(t, uc.SetCurrentBoard(b.ID))

	b.Name = "After"
	require.NoError(t, uc.UpdateBoard(ctx, b))

	current, ok := uc.CurrentBoard()
	require.True(t, ok)
	require.Equal(t, "After", current.Name)
	require.NotNil(t, current.UpdatedAt)
	require.Equal(t, testClock, *current.UpdatedAt)
}

func TestCreateColumnOrdersSequentially(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	b, err := uc.CreateBoard(ctx, "Sprint 1")
	require.NoError(t, err)

	todo, err := uc.CreateColumn(ctx, b.ID, "To Do")
	require.NoError(t, err)
	doing, err := uc.CreateColumn(ctx, b.ID, "Doing")
	require.NoError(t, err)

	require.Equal(t, 0, todo.Order)
	require.Equal(t, 1, doing.Order)
	require.Equal(t, b.ID, todo.BoardID)

	got, err := uc.Board(b.ID)
	require.NoError(t, err)
	require.Len(t, got.Columns, 2)
	requireInvariants(t, uc)
}

func TestCreateColumnUnknownBoard(t *testing.T) {
	uc := newTestEngine(t)

	_, err := uc.CreateColumn(context.Background(), "missing", "To Do")
	require.ErrorIs(t, err, domain.ErrBoardNotFound)
}

func TestUpdateColumnRenames(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	b, _ := uc.CreateBoard(ctx, "Sprint 1")
	col, _ := uc.CreateColumn(ctx, b.ID, "To Do")

	require.NoError(t, uc.UpdateColumn(ctx, col.ID, "Backlog"))

	got, err := uc.Board(b.ID)
	require.NoError(t, err)
	require.Equal(t, "Backlog", got.Columns[0].Title)

	require.ErrorIs(t, uc.UpdateColumn(ctx, "missing", "X"), domain.ErrColumnNotFound)
}

func TestDeleteColumnCascadesAndRenumbers(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	b, _ := uc.CreateBoard(ctx, "Sprint 1")
	todo, _ := uc.CreateColumn(ctx, b.ID, "To Do")
	doing, _ := uc.CreateColumn(ctx, b.ID, "Doing")
	done, _ := uc.CreateColumn(ctx, b.ID, "Done")
	for _, title := range []string{"a", "b", "c"} {
		_, err := uc.CreateTask(ctx, doing.ID, board.TaskDraft{Title: title})
		require.NoError(t, err)
	}

	require.NoError(t, uc.DeleteColumn(ctx, doing.ID))

	got, err := uc.Board(b.ID)
	require.NoError(t, err)
	require.Len(t, got.Columns, 2)
	require.Equal(t, todo.ID, got.Columns[0].ID)
	require.Equal(t, done.ID, got.Columns[1].ID)
	for _, col := range got.Columns {
		require.Empty(t, col.Tasks, "no task of the deleted column may remain reachable")
	}
	requireInvariants(t, uc)
}

func TestCurrentBoardReflectsEveryMutation(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	b, _ := uc.CreateBoard(ctx, "Sprint 1")
	require.NoError(t, uc.SetCurrentBoard(b.ID))

	col, _ := uc.CreateColumn(ctx, b.ID, "To Do")
	task, _ := uc.CreateTask(ctx, col.ID, board.TaskDraft{Title: "ship it"})

	current, ok := uc.CurrentBoard()
	require.True(t, ok)
	require.Len(t, current.Columns, 1)
	require.Len(t, current.Columns[0].Tasks, 1)
	require.Equal(t, task.ID, current.Columns[0].Tasks[0].ID)

	require.NoError(t, uc.DeleteTask(ctx, task.ID))
	current, ok = uc.CurrentBoard()
	require.True(t, ok)
	require.Empty(t, current.Columns[0].Tasks)
}

func TestSetCurrentBoardUnknownID(t *testing.T) {
	uc := newTestEngine(t)
	require.ErrorIs(t, uc.SetCurrentBoard("missing"), domain.ErrBoardNotFound)
}

func TestLoadHydratesFromRepository(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	seed := []domain.Board{{ID: "b1", Name: "Persisted", Columns: []domain.Column{}}}
	require.NoError(t, repo.Save(ctx, seed))

	uc := board.New(repo, zap.NewNop())
	require.NoError(t, uc.Load(ctx))

	boards := uc.Boards()
	require.Len(t, boards, 1)
	require.Equal(t, "Persisted", boards[0].Name)
}

func TestMutationsPersistThroughRepository(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()

	uc := board.New(repo, zap.NewNop())
	require.NoError(t, uc.Load(ctx))
	b, err := uc.CreateBoard(ctx, "Sprint 1")
	require.NoError(t, err)
	_, err = uc.CreateColumn(ctx, b.ID, "To Do")
	require.NoError(t, err)

	// a fresh engine over the same repository sees the mutation
	fresh := board.New(repo, zap.NewNop())
	require.NoError(t, fresh.Load(ctx))
	boards := fresh.Boards()
	require.Len(t, boards, 1)
	require.Len(t, boards[0].Columns, 1)
}

type failingRepo struct{}

func (failingRepo) Load(ctx context.Context) ([]domain.Board, error) { return nil, nil }
func (failingRepo) Save(ctx context.Context, boards []domain.Board) error {
	return errors.New("store unavailable")
}

func TestPersistenceFailureKeepsInMemoryState(t *testing.T) {
	uc := board.New(failingRepo{}, zap.NewNop())
	ctx := context.Background()

	b, err := uc.CreateBoard(ctx, "Unsynced")
	require.NoError(t, err, "a failed write must not surface to the caller")
	got, err := uc.Board(b.ID)
	require.NoError(t, err)
	require.Equal(t, "Unsynced", got.Name)
}

func TestReturnedBoardsAreDetachedCopies(t *testing.T) {
	uc := newTestEngine(t)
	ctx := context.Background()

	b, _ := uc.CreateBoard(ctx, "Sprint 1")
	col, _ := uc.CreateColumn(ctx, b.ID, "To Do")
	_, err := uc.CreateTask(ctx, col.ID, board.TaskDraft{Title: "a"})
	require.NoError(t, err)

	got, err := uc.Board(b.ID)
	require.NoError(t, err)
	got.Columns[0].Tasks[0].Title = "tampered"

	again, err := uc.Board(b.ID)
	require.NoError(t, err)
	require.Equal(t, "a", again.Columns[0].Tasks[0].Title)
}
