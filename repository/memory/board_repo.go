package memory

import (
	"context"
	"sync"

	"github.com/chittaranjan27/Task-Board-Application/domain"
)

// BoardRepository keeps the collection in process memory. It backs tests
// and ephemeral runs where nothing should touch disk.
type BoardRepository struct {
	mu     sync.Mutex
	boards []domain.Board
}

func New() *BoardRepository {
	return &BoardRepository{}
}

func (r *BoardRepository) Load(ctx context.Context) ([]domain.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.CloneBoards(r.boards), nil
}

func (r *BoardRepository) Save(ctx context.Context, boards []domain.Board) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.boards = domain.CloneBoards(boards)
	return nil
}
