package repository

import (
	"context"

	"github.com/chittaranjan27/Task-Board-Application/domain"
)

// BoardRepository persists the full board collection as a single unit.
// Save replaces the stored collection wholesale; Load returns an empty
// collection when nothing usable is stored.
type BoardRepository interface {
	Load(ctx context.Context) ([]domain.Board, error)
	Save(ctx context.Context, boards []domain.Board) error
}
